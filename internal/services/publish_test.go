package services_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/parcelreg/parcel/internal/services"
	"github.com/parcelreg/parcel/pkg/credentials"
	srvErrors "github.com/parcelreg/parcel/pkg/errors"
	"github.com/parcelreg/parcel/pkg/manifest"
	"github.com/parcelreg/parcel/pkg/registry"
	"github.com/parcelreg/parcel/pkg/registrytest"
)

var _ = Describe("Publish Flow", func() {
	var (
		server      *registrytest.Server
		store       *credentials.DiskStore
		workDir     string
		publish     *services.Publish
		archivePath string
		ctx         context.Context
	)

	BeforeEach(func() {
		server = registrytest.New()

		var err error
		workDir, err = os.MkdirTemp("", "publish-test-*")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, workDir)

		store = credentials.NewDiskStore(filepath.Join(workDir, "config"))
		publish = services.NewPublishService(
			registry.NewClient(server.URL),
			store,
			manifest.NewReader(workDir),
		)

		archivePath = filepath.Join(workDir, "leftpad-1.2.0.zip")
		Expect(os.WriteFile(archivePath, []byte("archive bytes"), 0644)).To(Succeed())

		ctx = context.Background()
	})

	AfterEach(func() {
		server.Close()
	})

	writeManifest := func(content string) {
		err := os.WriteFile(filepath.Join(workDir, manifest.FileName), []byte(content), 0644)
		Expect(err).NotTo(HaveOccurred())
	}

	It("should refuse without a credential and make no network call", func() {
		writeManifest(`{"name": "leftpad", "version": "1.2.0"}`)

		_, err := publish.Run(ctx, archivePath)
		Expect(err).To(HaveOccurred())
		Expect(srvErrors.IsNotAuthenticatedError(err)).To(BeTrue())
		Expect(server.RequestCount()).To(BeZero())
	})

	It("should refuse without a manifest and make no network call", func() {
		Expect(store.Save(server.APIKey)).To(Succeed())

		_, err := publish.Run(ctx, archivePath)
		Expect(err).To(HaveOccurred())
		Expect(srvErrors.IsManifestError(err)).To(BeTrue())
		Expect(server.RequestCount()).To(BeZero())
	})

	It("should check the credential before the manifest", func() {
		// Neither precondition holds; the not-authenticated message wins.
		_, err := publish.Run(ctx, archivePath)
		Expect(err).To(HaveOccurred())
		Expect(srvErrors.IsNotAuthenticatedError(err)).To(BeTrue())
	})

	It("should upload the archive with manifest metadata", func() {
		Expect(store.Save(server.APIKey)).To(Succeed())
		writeManifest(`{"name": "leftpad", "version": "1.2.0", "description": "pads strings"}`)

		message, err := publish.Run(ctx, archivePath)
		Expect(err).NotTo(HaveOccurred())
		Expect(message).To(Equal(server.PublishMessage))

		published := server.PublishedPackages()
		Expect(published).To(HaveLen(1))
		Expect(published[0].PackageName).To(Equal("leftpad"))
		Expect(published[0].Description).To(Equal("pads strings"))
		Expect(published[0].Archive).To(Equal([]byte("archive bytes")))
	})

	It("should send the manifest's version field, not its name", func() {
		Expect(store.Save(server.APIKey)).To(Succeed())
		writeManifest(`{"name": "leftpad", "version": "3.4.5"}`)

		_, err := publish.Run(ctx, archivePath)
		Expect(err).NotTo(HaveOccurred())

		published := server.PublishedPackages()
		Expect(published).To(HaveLen(1))
		Expect(published[0].Version).To(Equal("3.4.5"))
		Expect(published[0].Version).NotTo(Equal(published[0].PackageName))
	})

	It("should surface the server error on a rejected upload", func() {
		Expect(store.Save("stale-key")).To(Succeed())
		writeManifest(`{"name": "leftpad", "version": "1.2.0"}`)

		_, err := publish.Run(ctx, archivePath)
		Expect(err).To(HaveOccurred())
		Expect(srvErrors.IsServerError(err)).To(BeTrue())
		Expect(err.Error()).To(Equal("invalid api key"))
	})
})
