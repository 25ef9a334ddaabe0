package models

// Credential is the single long-lived API key persisted by the
// credential store. Re-login replaces it wholesale; no expiry is
// tracked locally.
type Credential struct {
	APIKey string `json:"apiKey"`
}
