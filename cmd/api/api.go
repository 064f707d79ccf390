package main

import (
	"net/http"
	"strings"
	"time"

	"budgetd/internal/assistant"
	"budgetd/internal/budget"
	"budgetd/internal/logger"
	"budgetd/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

type application struct {
	config    config
	store     *store.Storage
	mutator   *budget.Mutator
	assistant *assistant.Assistant
	logger    *logger.Logger
}

type config struct {
	addr        string
	db          dbConfig
	corsOrigins string
	anthropic   anthropicConfig
}

type dbConfig struct {
	addr         string
	maxOpenConns int
	maxIdleConns int
	maxIdleTime  string
}

type anthropicConfig struct {
	apiKey string
	model  string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.New(cors.Options{
		AllowedOrigins: strings.Split(app.config.corsOrigins, ","),
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusNotFound, "resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)

		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", app.handleListAccounts)
			r.Post("/", app.handleCreateAccount)
			r.Put("/{id}", app.handleUpdateAccount)
			r.Delete("/{id}", app.handleDeleteAccount)
		})

		r.Route("/category-groups", func(r chi.Router) {
			r.Get("/", app.handleListCategoryGroups)
			r.Post("/", app.handleCreateCategoryGroup)
			r.Put("/{id}", app.handleUpdateCategoryGroup)
			r.Delete("/{id}", app.handleDeleteCategoryGroup)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", app.handleListCategories)
			r.Post("/", app.handleCreateCategory)
			r.Put("/{id}", app.handleUpdateCategory)
			r.Delete("/{id}", app.handleDeleteCategory)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", app.handleListTransactions)
			r.Post("/", app.handleCreateTransaction)
			r.Get("/{id}", app.handleGetTransaction)
			r.Put("/{id}", app.handleUpdateTransaction)
			r.Delete("/{id}", app.handleDeleteTransaction)
		})

		r.Get("/payees", app.handleListPayees)

		r.Route("/budget/{year}/{month}", func(r chi.Router) {
			r.Get("/", app.handleGetBudgetMonth)
			r.Put("/allocate", app.handleAllocate)
			r.Post("/cover-overspending", app.handleCoverOverspending)
			r.Post("/fund-targets", app.handleFundTargets)
			r.Post("/copy-previous", app.handleCopyPrevious)
		})

		r.Get("/insights/spending", app.handleSpendingInsights)

		r.Post("/assistant/chat", app.handleAssistantChat)
	})

	return r
}

func (app *application) run(mux http.Handler) error {

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 120,
		ReadTimeout:  time.Second * 40,
		IdleTimeout:  time.Minute,
	}

	app.logger.Info("main", "server started on %s", app.config.addr)
	return srv.ListenAndServe()
}
