// internal/platform/di/infra.go
package di

import (
	"context"
	"errors"
	"log"
	"strings"

	"cloud.google.com/go/firestore"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"

	appcfg "gamestore/internal/infra/config"
)

// Infra is shared runtime infrastructure:
// - owns external clients (Firestore / Firebase Auth / Secret Manager / Redis)
// - owns env/config-resolved runtime settings
//
// Firestore is strict (boot fails without it); Firebase Auth, Secret
// Manager and Redis are best-effort (warn + continue degraded).
type Infra struct {
	Config    *appcfg.Config
	ProjectID string

	Firestore     *firestore.Client
	FirebaseApp   *firebase.App
	FirebaseAuth  *firebaseauth.Client
	SecretManager *secretmanager.Client
	Redis         *redis.Client
}

// NewInfra initializes shared infra.
func NewInfra(ctx context.Context) (*Infra, error) {
	cfg := appcfg.Load()
	if cfg == nil {
		return nil, errors.New("di.infra: config is nil")
	}

	projectID := strings.TrimSpace(cfg.FirestoreProjectID)
	if projectID == "" {
		return nil, errors.New("di.infra: projectID is empty (set FIRESTORE_PROJECT_ID or GCP_PROJECT_ID)")
	}

	inf := &Infra{
		Config:    cfg,
		ProjectID: projectID,
	}

	// Credentials file (optional; mainly for local dev)
	credFile := strings.TrimSpace(cfg.FirestoreCredentialsFile)
	if credFile == "" {
		credFile = strings.TrimSpace(cfg.GCPCreds)
	}
	var opts []option.ClientOption
	if credFile != "" {
		opts = append(opts, option.WithCredentialsFile(credFile))
	}

	// Firestore (strict)
	fsClient, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, errors.New("di.infra: firestore init failed: " + err.Error())
	}
	inf.Firestore = fsClient

	// Firebase Auth (best-effort)
	fbProject := strings.TrimSpace(cfg.FirebaseProjectID)
	if fbProject == "" {
		fbProject = projectID
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: fbProject}, opts...)
	if err != nil {
		log.Printf("[di.infra] WARN: firebase app init failed: %v (auth disabled)", err)
	} else {
		inf.FirebaseApp = app
		authClient, err := app.Auth(ctx)
		if err != nil {
			log.Printf("[di.infra] WARN: firebase auth init failed: %v (auth disabled)", err)
		} else {
			inf.FirebaseAuth = authClient
		}
	}

	// Secret Manager (best-effort)
	sm, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		log.Printf("[di.infra] WARN: secretmanager init failed: %v (env-only secrets)", err)
	} else {
		inf.SecretManager = sm
	}

	// Redis catalog cache (best-effort, disabled when no addr)
	if addr := strings.TrimSpace(cfg.RedisAddr); addr != "" {
		inf.Redis = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: cfg.RedisPassword,
		})
		if err := inf.Redis.Ping(ctx).Err(); err != nil {
			log.Printf("[di.infra] WARN: redis ping failed addr=%s err=%v (cache disabled)", addr, err)
			_ = inf.Redis.Close()
			inf.Redis = nil
		}
	}

	log.Printf("[di.infra] ready project=%s auth=%t sm=%t redis=%t",
		projectID, inf.FirebaseAuth != nil, inf.SecretManager != nil, inf.Redis != nil)
	return inf, nil
}

// Close releases owned clients.
func (inf *Infra) Close() {
	if inf == nil {
		return
	}
	if inf.Firestore != nil {
		_ = inf.Firestore.Close()
	}
	if inf.SecretManager != nil {
		_ = inf.SecretManager.Close()
	}
	if inf.Redis != nil {
		_ = inf.Redis.Close()
	}
}
