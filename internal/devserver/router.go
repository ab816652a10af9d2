package devserver

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/giftshop/internal/client/validation"
	"github.com/dmitrijs2005/giftshop/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterDeps collects what NewRouter needs.
type RouterDeps struct {
	Catalog       *Catalog
	Accounts      *Accounts
	Orders        *OrderBook
	Metrics       *Metrics
	LoginLimiter  *RateLimiter
	Logger        logging.Logger
	SecretKey     []byte
	TokenValidity time.Duration
}

// NewRouter wires the gift API endpoints.
//
// Middleware order: Recoverer → access log. The login route adds the rate
// limiter, the order route the bearer token check.
func NewRouter(d *RouterDeps) http.Handler {
	h := &handler{
		catalog:       d.Catalog,
		accounts:      d.Accounts,
		orders:        d.Orders,
		metrics:       d.Metrics,
		validate:      validation.New(),
		logger:        d.Logger,
		secret:        d.SecretKey,
		tokenValidity: d.TokenValidity,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(accessLog(d.Logger, d.Metrics))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, msgRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllow)
	})

	r.Route("/api", func(r chi.Router) {
		r.With(d.LoginLimiter.Middleware(d.Metrics.RecordRateLimited)).Post("/login", h.login)
		r.With(requireBearer(d.SecretKey)).Post("/order", h.createOrder)

		r.Route("/products", func(r chi.Router) {
			r.Get("/ranking", h.ranking)
			r.Get("/{productId}/summary", h.productSummary)
		})

		r.Route("/themes", func(r chi.Router) {
			r.Get("/", h.themes)
			r.Get("/{themeId}/info", h.themeInfo)
			r.Get("/{themeId}/products", h.themeProducts)
		})
	})

	r.Handle("/metrics", d.Metrics.Handler())
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
