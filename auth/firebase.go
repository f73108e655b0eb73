package auth

import (
	"context"
	"errors"
	"fmt"
	"os"

	firebase "firebase.google.com/go"
	fbauth "firebase.google.com/go/auth"
	"google.golang.org/api/option"
)

// TokenVerifier validates a third-party identity token and yields the phone
// number it attests to. It is an interface so handlers can be exercised in
// tests without Firebase credentials.
type TokenVerifier interface {
	VerifyPhoneToken(ctx context.Context, idToken string) (string, error)
}

// FirebaseVerifier verifies Firebase phone-auth ID tokens.
type FirebaseVerifier struct {
	client    *fbauth.Client
	projectID string
}

// NewFirebaseVerifier initializes the Firebase app from the credentials JSON
// in the environment (no credential file on disk).
func NewFirebaseVerifier(ctx context.Context) (*FirebaseVerifier, error) {
	credsJSON := os.Getenv("FIREBASE_CREDENTIALS_JSON")
	if credsJSON == "" {
		return nil, errors.New("FIREBASE_CREDENTIALS_JSON must be set")
	}
	projectID := os.Getenv("FIREBASE_PROJECT_ID")
	if projectID == "" {
		return nil, errors.New("FIREBASE_PROJECT_ID must be set")
	}

	opt := option.WithCredentialsJSON([]byte(credsJSON))
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opt)
	if err != nil {
		return nil, fmt.Errorf("initializing firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting firebase auth client: %w", err)
	}
	return &FirebaseVerifier{client: client, projectID: projectID}, nil
}

func (v *FirebaseVerifier) VerifyPhoneToken(ctx context.Context, idToken string) (string, error) {
	token, err := v.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("verifying ID token: %w", err)
	}
	if token.Audience != v.projectID {
		return "", errors.New("invalid token audience")
	}
	phone, _ := token.Claims["phone_number"].(string)
	if phone == "" {
		return "", errors.New("phone number missing in token")
	}
	return phone, nil
}
