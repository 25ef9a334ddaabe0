package services_test

import (
	"bytes"
	"context"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/parcelreg/parcel/internal/models"
	"github.com/parcelreg/parcel/internal/services"
	"github.com/parcelreg/parcel/pkg/registry"
	"github.com/parcelreg/parcel/pkg/registrytest"
)

var _ = Describe("Search Flow", func() {
	var (
		server *registrytest.Server
		out    *bytes.Buffer
		search *services.Search
		ctx    context.Context
	)

	BeforeEach(func() {
		server = registrytest.New()
		out = &bytes.Buffer{}
		search = services.NewSearchService(registry.NewClient(server.URL), out)
		ctx = context.Background()
	})

	AfterEach(func() {
		server.Close()
	})

	It("should print a distinct message for zero results", func() {
		err := search.Run(ctx, "nothing")
		Expect(err).NotTo(HaveOccurred())
		Expect(out.String()).To(ContainSubstring(`no packages found matching "nothing"`))
		Expect(out.String()).NotTo(ContainSubstring("NAME"))
	})

	It("should render one row per result in server order", func() {
		server.SearchResults = []models.SearchResult{
			{PackageName: "zebra", Version: "2.0.0", Description: "stripes", Author: "alice"},
			{PackageName: "alpha", Version: "1.0.0", Description: "first", Author: "bob"},
			{PackageName: "mango", Version: "0.3.1", Description: "fruit", Author: "carol"},
		}

		err := search.Run(ctx, "pad")
		Expect(err).NotTo(HaveOccurred())

		rendered := out.String()
		Expect(rendered).To(ContainSubstring("NAME"))
		for _, name := range []string{"zebra", "alpha", "mango"} {
			Expect(rendered).To(ContainSubstring(name))
		}

		// Server order preserved, no local sorting.
		Expect(strings.Index(rendered, "zebra")).To(BeNumerically("<", strings.Index(rendered, "alpha")))
		Expect(strings.Index(rendered, "alpha")).To(BeNumerically("<", strings.Index(rendered, "mango")))

		lines := strings.Split(strings.TrimRight(rendered, "\n"), "\n")
		Expect(lines).To(HaveLen(4)) // header + 3 rows
	})
})
