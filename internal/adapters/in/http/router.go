// internal/adapters/in/http/router.go
package httpin

import (
	"net/http"

	"gamestore/internal/adapters/in/http/handlers"
	"gamestore/internal/adapters/in/http/middleware"
	"gamestore/internal/application/syncer"
	"gamestore/internal/application/usecase"
	"gamestore/internal/domain/profile"
)

// RouterDeps collects the dependencies injected from the DI container.
type RouterDeps struct {
	CatalogUC  *usecase.CatalogUsecase
	CheckoutUC *usecase.CheckoutUsecase
	Registry   *syncer.Registry
	Profiles   profile.Store

	FirebaseAuth  *middleware.FirebaseAuthClient
	AllowedOrigin string
}

// NewRouter builds the full handler chain:
// CORS -> Recover -> Session -> mux.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	catalogH := handlers.NewCatalogHandler(deps.CatalogUC)
	mux.HandleFunc("GET /games", catalogH.Browse)
	mux.HandleFunc("GET /games/{slug}", catalogH.Details)
	mux.HandleFunc("GET /games/{slug}/screenshots", catalogH.Screenshots)

	cartH := handlers.NewCartHandler(deps.Registry)
	mux.HandleFunc("GET /cart", cartH.Get)
	mux.HandleFunc("DELETE /cart", cartH.Clear)
	mux.HandleFunc("POST /cart/items", cartH.AddItem)
	mux.HandleFunc("PUT /cart/items/{id}", cartH.SetQuantity)
	mux.HandleFunc("DELETE /cart/items/{id}", cartH.RemoveItem)

	favH := handlers.NewFavoritesHandler(deps.Registry)
	mux.HandleFunc("GET /favorites", favH.List)
	mux.HandleFunc("GET /favorites/{id}", favH.Contains)
	mux.HandleFunc("PUT /favorites", favH.Add)
	mux.HandleFunc("DELETE /favorites", favH.Remove)

	checkoutH := handlers.NewCheckoutHandler(deps.CheckoutUC, deps.Registry)
	mux.HandleFunc("POST /checkout", checkoutH.Checkout)

	meH := handlers.NewMeHandler(deps.Profiles)
	mux.HandleFunc("GET /me", meH.Get)

	sessionMW := &middleware.SessionMiddleware{FirebaseAuth: deps.FirebaseAuth}

	var h http.Handler = mux
	h = sessionMW.Handler(h)
	h = middleware.Recover(h)
	h = middleware.CORS(deps.AllowedOrigin)(h)
	return h
}
