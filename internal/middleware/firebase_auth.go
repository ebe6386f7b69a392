package middleware

import (
	"context"
	"encoding/base64"
	"encoding/json"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// InitFirebase initializes Firebase Admin SDK with environment variables
func InitFirebase(projectID, privateKeyB64, clientEmail string) (*firebase.App, error) {
	// Decode base64 private key
	privateKey, err := base64.StdEncoding.DecodeString(privateKeyB64)
	if err != nil {
		return nil, err
	}

	// Create credentials JSON
	credentialsJSON := map[string]interface{}{
		"type":         "service_account",
		"project_id":   projectID,
		"private_key":  string(privateKey),
		"client_email": clientEmail,
	}

	// Initialize Firebase app
	app, err := firebase.NewApp(context.Background(), nil, option.WithCredentialsJSON(mustMarshalJSON(credentialsJSON)))
	if err != nil {
		return nil, err
	}

	return app, nil
}

// mustMarshalJSON is a helper to marshal JSON or panic
func mustMarshalJSON(v interface{}) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
