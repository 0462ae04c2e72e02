// internal/infra/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("GCP_PROJECT_ID", "")
	t.Setenv("FIRESTORE_PROJECT_ID", "")
	t.Setenv("MAIL_FROM", "")
	t.Setenv("LOCAL_CART_DB", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "", cfg.FirestoreProjectID)
	assert.Equal(t, "rawg-api-key", cfg.RawgKeySecretName)
	assert.Equal(t, "sendgrid-api-key", cfg.SendGridSecretName)
	assert.Equal(t, "orders@gamestore.example", cfg.MailFrom)
	assert.Equal(t, "local-carts.db", cfg.LocalCartDBPath)
}

func TestProjectIDFallsBackToGCPProject(t *testing.T) {
	t.Setenv("GCP_PROJECT_ID", "my-project")
	t.Setenv("FIRESTORE_PROJECT_ID", "")
	t.Setenv("FIREBASE_PROJECT_ID", "")

	cfg := Load()

	assert.Equal(t, "my-project", cfg.FirestoreProjectID)
	assert.Equal(t, "my-project", cfg.FirebaseProjectID)
}

func TestExplicitValuesWin(t *testing.T) {
	t.Setenv("GCP_PROJECT_ID", "my-project")
	t.Setenv("FIRESTORE_PROJECT_ID", "fs-project")
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg := Load()

	assert.Equal(t, "fs-project", cfg.FirestoreProjectID)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}
