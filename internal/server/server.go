package server

import (
	"context"
	"html/template"
	"net/http"
	"time"

	"github.com/and161185/payform/internal/config"
	"github.com/and161185/payform/internal/deps"
	"github.com/and161185/payform/internal/gateway"
	"github.com/and161185/payform/internal/middleware"
	"github.com/and161185/payform/internal/model"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
)

//go:generate mockgen -destination=../mocks/mock_server.go -package=mocks github.com/and161185/payform/internal/server Storage,InvoiceSubmitter,Publisher

type Storage interface {
	CreateOrder(ctx context.Context, order model.Order) (model.Order, error)
	ListOrders(ctx context.Context) ([]model.Order, error)
}

type InvoiceSubmitter interface {
	SubmitInvoice(ctx context.Context, invoice gateway.InvoiceRequest) (gateway.InvoiceData, error)
}

type Publisher interface {
	PublishOrderCreated(ctx context.Context, order model.Order) error
}

type Server struct {
	storage   Storage
	invoices  InvoiceSubmitter
	publisher Publisher
	config    *config.Config
	deps      *deps.Deps

	merchant  gateway.Merchant
	redirect  *gateway.RedirectBuilder
	templates map[string]*template.Template
	now       func() time.Time
}

// NewServer panics if the embedded templates do not parse. publisher may be
// nil.
func NewServer(storage Storage, invoices InvoiceSubmitter, publisher Publisher, config *config.Config, deps *deps.Deps) *Server {
	templates, err := parseTemplates()
	if err != nil {
		panic(err)
	}

	merchant := gateway.Merchant{ShopID: config.ShopID, Secret: config.Secret}

	return &Server{
		storage:   storage,
		invoices:  invoices,
		publisher: publisher,
		config:    config,
		deps:      deps,
		merchant:  merchant,
		redirect: gateway.NewRedirectBuilder(merchant, gateway.RedirectConfig{
			Action:     config.RedirectURL,
			SuccessURL: config.SuccessURL,
			FailedURL:  config.FailedURL,
			Policy:     config.DescriptionPolicy,
		}),
		templates: templates,
		now:       time.Now,
	}
}

func (srv *Server) buildRouter() http.Handler {
	logger := srv.deps.Logger

	router := chi.NewRouter()
	router.Use(chiMiddleware.StripSlashes)
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.LogMiddleware(logger))
	router.Use(middleware.CompressMiddleware(logger))
	router.Use(middleware.RecoverMiddleware(logger, srv.ErrorHandler))

	router.NotFound(srv.NotFoundHandler)

	router.Get("/", srv.IndexHandler)
	router.Post("/", srv.SubmitHandler)
	router.Get("/orders", srv.OrdersHandler)

	return router
}

func (srv *Server) Run(ctx context.Context) error {
	router := srv.buildRouter()

	server := &http.Server{
		Addr:              srv.config.RunAddress,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      srv.config.GatewayTimeout + 10*time.Second,
	}

	go func() {
		srv.deps.Logger.Infof("listening on %s", srv.config.RunAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			srv.deps.Logger.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
