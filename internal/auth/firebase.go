package auth

import (
	"context"
	"encoding/json"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"

	"github.com/if-project/agenda-backend/config"
)

var firebaseScopes = []string{
	"https://www.googleapis.com/auth/cloud-platform",
	"https://www.googleapis.com/auth/firebase.database",
	"https://www.googleapis.com/auth/identitytoolkit",
	"https://www.googleapis.com/auth/devstorage.full_control",
	"https://www.googleapis.com/auth/userinfo.email",
}

type serviceAccount struct {
	Type                    string `json:"type"`
	ProjectID               string `json:"project_id"`
	PrivateKeyID            string `json:"private_key_id"`
	PrivateKey              string `json:"private_key"`
	ClientEmail             string `json:"client_email"`
	ClientID                string `json:"client_id"`
	AuthURI                 string `json:"auth_uri"`
	TokenURI                string `json:"token_uri"`
	AuthProviderX509CertURL string `json:"auth_provider_x509_cert_url"`
	ClientX509CertURL       string `json:"client_x509_cert_url"`
	UniverseDomain          string `json:"universe_domain"`
}

// ServiceAccountJSON renders the discrete credential fields as the JSON key
// file Google client libraries expect.
func ServiceAccountJSON(cfg *config.FirebaseConfig) ([]byte, error) {
	return json.Marshal(serviceAccount{
		Type:                    cfg.Type,
		ProjectID:               cfg.ProjectID,
		PrivateKeyID:            cfg.PrivateKeyID,
		PrivateKey:              cfg.PrivateKey,
		ClientEmail:             cfg.ClientEmail,
		ClientID:                cfg.ClientID,
		AuthURI:                 cfg.AuthURI,
		TokenURI:                cfg.TokenURI,
		AuthProviderX509CertURL: cfg.AuthProviderX509CertURL,
		ClientX509CertURL:       cfg.ClientX509CertURL,
		UniverseDomain:          cfg.UniverseDomain,
	})
}

// InitializeFirebase initializes the Firebase Admin SDK with the database and
// storage endpoints configured.
func InitializeFirebase(ctx context.Context, cfg *config.FirebaseConfig) (*firebase.App, error) {
	keyJSON, err := ServiceAccountJSON(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode service account: %w", err)
	}

	creds, err := google.CredentialsFromJSON(ctx, keyJSON, firebaseScopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account: %w", err)
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     cfg.ProjectID,
		DatabaseURL:   cfg.DatabaseURL,
		StorageBucket: cfg.StorageBucket,
	}, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	return app, nil
}
