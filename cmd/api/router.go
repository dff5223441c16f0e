package main

import (
	"database/sql"
	"net/http"

	"github.com/crucial707/itadmin/internal/config"
	"github.com/crucial707/itadmin/internal/handlers"
	"github.com/crucial707/itadmin/internal/middleware"
	"github.com/crucial707/itadmin/internal/repo"
	"github.com/crucial707/itadmin/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newRouter wires middleware, repositories and handlers onto one chi router.
func newRouter(conn *sql.DB, cfg config.Config) http.Handler {
	assets := repo.NewAssetRepo(conn)
	users := repo.NewUserRepo(conn)

	assetHandler := &handlers.AssetHandler{Repo: assets, Service: service.NewAssetService(conn)}
	txnHandler := &handlers.TransactionHandler{Repo: repo.NewTransactionRepo(conn)}
	userHandler := &handlers.UserHandler{Repo: users}
	ticketHandler := &handlers.TicketHandler{Repo: repo.NewTicketRepo(conn), Users: users}
	settingHandler := &handlers.SettingHandler{Repo: repo.NewSettingRepo(conn)}
	analyticsHandler := &handlers.AnalyticsHandler{Repo: repo.NewAnalyticsRepo(conn)}

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RequestLog,
		middleware.Recoverer,
		middleware.Prometheus,
		middleware.SecurityHeaders(cfg.TLSCertFile != ""),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.MaxBytes(int64(cfg.MaxBodyBytes)),
		middleware.PerMinute(cfg.WriteRatePerMinute).Writes,
		middleware.Actor([]byte(cfg.JWTSecret)),
	)

	r.Get("/health", handlers.Health)
	r.Get("/ready", handlers.Ready(conn))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/assets", func(r chi.Router) {
		r.Get("/", assetHandler.ListAssets)
		r.Post("/", assetHandler.CreateAsset)
		r.Get("/export", assetHandler.ExportAssets)
		r.Get("/transactions", txnHandler.ListTransactions)
		r.Post("/transactions", txnHandler.CreateTransaction)
		r.Get("/{id}", assetHandler.GetAsset)
		r.Put("/{id}", assetHandler.UpdateAsset)
		r.Delete("/{id}", assetHandler.DeleteAsset)
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/", userHandler.ListUsers)
		r.Post("/", userHandler.CreateUser)
		r.Get("/export", userHandler.ExportUsers)
	})

	r.Route("/tickets", func(r chi.Router) {
		r.Get("/", ticketHandler.ListTickets)
		r.Post("/", ticketHandler.CreateTicket)
	})

	r.Route("/settings", func(r chi.Router) {
		r.Get("/", settingHandler.ListSettings)
		r.Post("/", settingHandler.UpsertSetting)
		r.Get("/{key}", settingHandler.GetSetting)
		r.Put("/{key}", settingHandler.UpdateSetting)
		r.Delete("/{key}", settingHandler.DeleteSetting)
	})

	r.Route("/analytics", func(r chi.Router) {
		r.Get("/", analyticsHandler.ListEvents)
		r.Post("/", analyticsHandler.CreateEvent)
	})

	return r
}
