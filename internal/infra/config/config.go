// internal/infra/config/config.go
package config

import "os"

// Config holds the process-wide environment configuration.
type Config struct {
	Port string

	// GCP / Firebase
	FirestoreProjectID       string
	FirebaseProjectID        string
	FirestoreCredentialsFile string
	GCPCreds                 string

	// Catalog API
	RawgBaseURL       string
	RawgAPIKey        string
	RawgKeySecretName string

	// Mail
	SendGridAPIKey     string
	SendGridSecretName string
	MailFrom           string

	// Redis catalog cache (empty addr disables the cache)
	RedisAddr     string
	RedisPassword string

	// Local fallback store for anonymous carts
	LocalCartDBPath string

	// CORS
	AllowedOrigin string
}

// Load reads the environment into a Config.
func Load() *Config {
	defaultProject := getenvDefault("GCP_PROJECT_ID", "")

	return &Config{
		Port: getenvDefault("PORT", "8080"),

		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirebaseProjectID:        getenvDefault("FIREBASE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		GCPCreds:                 os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),

		RawgBaseURL:       os.Getenv("RAWG_BASE_URL"),
		RawgAPIKey:        os.Getenv("RAWG_API_KEY"),
		RawgKeySecretName: getenvDefault("RAWG_KEY_SECRET_NAME", "rawg-api-key"),

		SendGridAPIKey:     os.Getenv("SENDGRID_API_KEY"),
		SendGridSecretName: getenvDefault("SENDGRID_SECRET_NAME", "sendgrid-api-key"),
		MailFrom:           getenvDefault("MAIL_FROM", "orders@gamestore.example"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		LocalCartDBPath: getenvDefault("LOCAL_CART_DB", "local-carts.db"),

		AllowedOrigin: os.Getenv("ALLOWED_ORIGIN"),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
