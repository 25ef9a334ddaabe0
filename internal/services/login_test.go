package services_test

import (
	"context"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/parcelreg/parcel/internal/services"
	"github.com/parcelreg/parcel/pkg/credentials"
	srvErrors "github.com/parcelreg/parcel/pkg/errors"
	"github.com/parcelreg/parcel/pkg/registry"
	"github.com/parcelreg/parcel/pkg/registrytest"
)

var _ = Describe("Login Flow", func() {
	var (
		server *registrytest.Server
		store  *credentials.DiskStore
		login  *services.Login
		ctx    context.Context
	)

	BeforeEach(func() {
		server = registrytest.New()
		tmpDir, err := os.MkdirTemp("", "login-test-*")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, tmpDir)

		store = credentials.NewDiskStore(tmpDir)
		login = services.NewLoginService(registry.NewClient(server.URL), store)
		ctx = context.Background()
	})

	AfterEach(func() {
		server.Close()
	})

	It("should store the API key after the two-step exchange", func() {
		err := login.Run(ctx, server.Email, server.Password)
		Expect(err).NotTo(HaveOccurred())

		apiKey, err := store.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(apiKey).To(Equal(server.APIKey))
	})

	It("should surface the server error for wrong credentials", func() {
		err := login.Run(ctx, server.Email, "wrong")
		Expect(err).To(HaveOccurred())
		Expect(srvErrors.IsServerError(err)).To(BeTrue())
		Expect(err.Error()).To(Equal("invalid email or password"))
		Expect(store.Exists()).To(BeFalse())
	})

	It("should store nothing when the api-token exchange fails", func() {
		server.RejectAPIToken = true

		err := login.Run(ctx, server.Email, server.Password)
		Expect(err).To(HaveOccurred())
		Expect(store.Exists()).To(BeFalse())
	})

	It("should replace the credential wholesale on re-login", func() {
		err := login.Run(ctx, server.Email, server.Password)
		Expect(err).NotTo(HaveOccurred())

		server.APIKey = "api-key-2"
		err = login.Run(ctx, server.Email, server.Password)
		Expect(err).NotTo(HaveOccurred())

		apiKey, err := store.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(apiKey).To(Equal("api-key-2"))
	})
})

var _ = Describe("Logout Flow", func() {
	var store *credentials.DiskStore

	BeforeEach(func() {
		tmpDir, err := os.MkdirTemp("", "logout-test-*")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, tmpDir)
		store = credentials.NewDiskStore(tmpDir)
	})

	It("should remove a stored credential", func() {
		Expect(store.Save("api-key")).To(Succeed())

		loggedIn, err := services.NewLogoutService(store).Run()
		Expect(err).NotTo(HaveOccurred())
		Expect(loggedIn).To(BeTrue())
		Expect(store.Exists()).To(BeFalse())
	})

	It("should report when there was nothing to remove", func() {
		loggedIn, err := services.NewLogoutService(store).Run()
		Expect(err).NotTo(HaveOccurred())
		Expect(loggedIn).To(BeFalse())
	})
})
