package http

import (
	"embed"
	"net/http"

	"finbook/internal/auth"
	"finbook/internal/config"
	"finbook/internal/http/handler"
	mw "finbook/internal/http/middleware"
	"finbook/internal/ledger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

//go:embed static
var staticFS embed.FS

func NewRouter(cfg config.Config, users auth.Store, ledgerSvc *ledger.Service, sessions *auth.Sessions) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Handle("/static/*", http.FileServer(http.FS(staticFS)))

	pages := &handler.PageHandler{Users: users, Sessions: sessions}
	r.Get("/login", pages.LoginForm)
	r.Post("/login", pages.Login)
	r.Get("/register", pages.RegisterForm)
	r.Post("/register", pages.Register)

	api := &handler.APIHandler{Ledger: ledgerSvc}

	r.Group(func(r chi.Router) {
		r.Use(mw.RequireUser(sessions, users))

		r.Get("/", pages.Dashboard)
		r.Get("/logout", pages.Logout)

		r.Post("/add_transaction", api.AddTransaction)
		r.Get("/api/transactions/chart_data", api.ChartData)
		r.Get("/api/balance", api.Balance)
	})

	return r
}
