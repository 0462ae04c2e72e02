// internal/platform/di/container.go
package di

import (
	"context"
	"log"
	"net/http"

	httpin "gamestore/internal/adapters/in/http"
	"gamestore/internal/adapters/out/cache"
	fsrepo "gamestore/internal/adapters/out/firestore"
	"gamestore/internal/adapters/out/localstore"
	"gamestore/internal/adapters/out/mail"
	"gamestore/internal/adapters/out/rawg"
	"gamestore/internal/application/syncer"
	"gamestore/internal/application/usecase"
	"gamestore/internal/domain/catalog"
)

// Container wires adapters, syncers and usecases into the router.
type Container struct {
	Router http.Handler

	registry   *syncer.Registry
	localCarts *localstore.CartStoreSQLite
}

// BuildContainer assembles the application on top of Infra.
func BuildContainer(ctx context.Context, inf *Infra) (*Container, error) {
	cfg := inf.Config

	// outbound: remote profile store
	profiles := fsrepo.NewProfileRepositoryFS(inf.Firestore)

	// outbound: anonymous-device fallback carts
	localCarts, err := localstore.Open(cfg.LocalCartDBPath)
	if err != nil {
		return nil, err
	}

	// outbound: catalog source (+ optional Redis read-through cache)
	rawgKey := inf.resolveSecret(ctx, cfg.RawgAPIKey, cfg.RawgKeySecretName)
	if rawgKey == "" {
		log.Printf("[di.container] WARN: no RAWG api key resolved; catalog requests will be rejected upstream")
	}
	var source catalog.Source = rawg.NewClient(cfg.RawgBaseURL, rawgKey)
	if inf.Redis != nil {
		source = cache.NewCatalogCacheRedis(source, inf.Redis, cache.DefaultTTL)
	}

	// outbound: checkout mailer (best-effort when no key)
	var mailer usecase.Mailer
	if sgKey := inf.resolveSecret(ctx, cfg.SendGridAPIKey, cfg.SendGridSecretName); sgKey != "" {
		mailer = mail.NewSendGridClient(sgKey, cfg.MailFrom)
	} else {
		log.Printf("[di.container] WARN: no sendgrid key resolved; confirmation mail disabled")
	}

	registry := syncer.NewRegistry(profiles, localCarts)

	router := httpin.NewRouter(httpin.RouterDeps{
		CatalogUC:     usecase.NewCatalogUsecase(source),
		CheckoutUC:    usecase.NewCheckoutUsecase(mailer),
		Registry:      registry,
		Profiles:      profiles,
		FirebaseAuth:  inf.FirebaseAuth,
		AllowedOrigin: cfg.AllowedOrigin,
	})

	return &Container{
		Router:     router,
		registry:   registry,
		localCarts: localCarts,
	}, nil
}

// Close stops syncers and closes the local store.
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.registry != nil {
		c.registry.Close()
	}
	if c.localCarts != nil {
		_ = c.localCarts.Close()
	}
}
