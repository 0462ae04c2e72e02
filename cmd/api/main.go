// cmd/api/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"gamestore/internal/platform/di"
)

// atomicHandler allows swapping the underlying handler at runtime safely.
type atomicHandler struct {
	v atomic.Value // stores http.Handler
}

func newAtomicHandler(initial http.Handler) *atomicHandler {
	ah := &atomicHandler{}
	if initial == nil {
		initial = http.NotFoundHandler()
	}
	ah.v.Store(initial)
	return ah
}

func (h *atomicHandler) Store(next http.Handler) {
	if next == nil {
		return
	}
	h.v.Store(next)
}

func (h *atomicHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cur := h.v.Load()
	if cur == nil {
		http.NotFound(w, r)
		return
	}
	cur.(http.Handler).ServeHTTP(w, r)
}

func main() {
	ctx := context.Background()

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	// Start listening ASAP with a healthz-only mux; swap in the real
	// router once DI finishes. Keeps platform health checks green
	// through slow cold starts.
	healthMux := http.NewServeMux()
	healthMux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	switcher := newAtomicHandler(healthMux)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      switcher,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var infraHolder atomic.Value // stores *di.Infra (or nil)
	infraHolder.Store((*di.Infra)(nil))
	var containerHolder atomic.Value // stores *di.Container (or nil)
	containerHolder.Store((*di.Container)(nil))

	// Graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		sig := <-c
		log.Printf("[main] signal received: %v, shutting down", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[main] shutdown error: %v", err)
		}

		if cont, _ := containerHolder.Load().(*di.Container); cont != nil {
			cont.Close()
		}
		if inf, _ := infraHolder.Load().(*di.Infra); inf != nil {
			inf.Close()
		}
		close(idleConnsClosed)
	}()

	// Initialize infra + container in the background.
	go func() {
		inf, err := di.NewInfra(ctx)
		if err != nil {
			log.Printf("[main] FATAL: infra init failed: %v (serving healthz only)", err)
			return
		}
		infraHolder.Store(inf)

		cont, err := di.BuildContainer(ctx, inf)
		if err != nil {
			log.Printf("[main] FATAL: container build failed: %v (serving healthz only)", err)
			return
		}
		containerHolder.Store(cont)

		switcher.Store(cont.Router)
		log.Printf("[main] router ready on :%s", port)
	}()

	log.Printf("[main] listening on :%s", port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("[main] ListenAndServe: %v", err)
	}
	<-idleConnsClosed
}
