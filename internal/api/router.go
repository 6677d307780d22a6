package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dividenddash/backend/internal/api/handlers"
	custommiddleware "github.com/dividenddash/backend/internal/api/middleware"
	"github.com/dividenddash/backend/internal/config"
	"github.com/dividenddash/backend/internal/service"
)

// Services bundles the service dependencies the router wires into handlers.
type Services struct {
	System    *service.SystemService
	Fund      *service.FundService
	Holdings  *service.HoldingsService
	Valuation *service.ValuationService
	Dividend  *service.DividendService
	Refresh   *service.RefreshService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svcs Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svcs.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/fund", func(r chi.Router) {
			fundHandler := handlers.NewFundHandler(svcs.Fund)
			r.Get("/", fundHandler.GetFunds)
			r.Get("/{symbol}", fundHandler.GetFund)
		})

		holdingsHandler := handlers.NewHoldingsHandler(svcs.Holdings)
		r.Route("/holding", func(r chi.Router) {
			r.Get("/", holdingsHandler.GetPositions)
			r.Post("/", holdingsHandler.AddPurchase)
			r.Delete("/", holdingsHandler.ClearPositions)
			r.Delete("/{symbol}", holdingsHandler.RemovePosition)
		})
		r.Get("/transaction", holdingsHandler.GetTransactions)

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(svcs.Valuation)
			r.Get("/summary", portfolioHandler.Summary)
		})

		r.Route("/dividend", func(r chi.Router) {
			dividendHandler := handlers.NewDividendHandler(svcs.Dividend)
			r.Get("/upcoming", dividendHandler.Upcoming)
			r.Get("/summary", dividendHandler.Summary)
			r.Get("/calendar", dividendHandler.Calendar)
		})

		refreshHandler := handlers.NewRefreshHandler(svcs.Refresh)
		r.Route("/refresh", func(r chi.Router) {
			r.Post("/", refreshHandler.Refresh)
			r.Get("/status", refreshHandler.Status)
		})
		r.Put("/settings/apikey", refreshHandler.SetAPIKey)
	})

	return r
}
