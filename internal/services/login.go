package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/parcelreg/parcel/pkg/credentials"
)

// Login performs the two-step credential exchange and persists the
// resulting API key. Nothing is stored unless both steps succeed.
type Login struct {
	client RegistryClient
	store  credentials.Store
	log    *zap.SugaredLogger
}

func NewLoginService(client RegistryClient, store credentials.Store) *Login {
	return &Login{
		client: client,
		store:  store,
		log:    zap.S().Named("login_service"),
	}
}

func (s *Login) Run(ctx context.Context, email, password string) error {
	sessionToken, err := s.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	s.log.Debugw("session token obtained", "email", email)

	apiKey, err := s.client.CreateAPIToken(ctx, sessionToken)
	if err != nil {
		return err
	}

	if err := s.store.Save(apiKey); err != nil {
		return err
	}
	s.log.Debugw("api key stored")
	return nil
}

// Logout discards the stored API key.
type Logout struct {
	store credentials.Store
	log   *zap.SugaredLogger
}

func NewLogoutService(store credentials.Store) *Logout {
	return &Logout{
		store: store,
		log:   zap.S().Named("logout_service"),
	}
}

// Run removes the credential file. LoggedIn reports whether there was
// one to remove, so the CLI can phrase its message accordingly.
func (s *Logout) Run() (loggedIn bool, err error) {
	loggedIn = s.store.Exists()
	if err := s.store.Delete(); err != nil {
		return loggedIn, err
	}
	return loggedIn, nil
}
