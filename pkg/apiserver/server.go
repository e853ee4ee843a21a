package apiserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/pwaforge/pwaforge/pkg/backend"
	"github.com/pwaforge/pwaforge/pkg/token"
	"github.com/sirupsen/logrus"
)

type apiServer struct {
	ctx           context.Context
	log           *logrus.Entry
	port          int
	metricsPort   int
	allowedOrigin string
}

func NewAPIServer(ctx context.Context, log *logrus.Entry, port, metricsPort int, allowedOrigin string) *apiServer {
	return &apiServer{
		ctx:           ctx,
		log:           log,
		port:          port,
		metricsPort:   metricsPort,
		allowedOrigin: allowedOrigin,
	}
}

// NewRouter builds the full routing table. Kept separate from Start so
// handler tests can drive it without a listener.
func NewRouter(log *logrus.Entry, back backend.Backend, verifier token.Verifier) *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(loggingMiddleware(log))
	router.Use(metricsMiddleware())
	h := newHandler(back)

	api := router.PathPrefix("/api").Subrouter()
	api.Path("/healthz").Methods("GET").HandlerFunc(h.healthz)

	// The management surface. Everything under /api/apps requires a bearer
	// token resolving to an owner id.
	apps := api.PathPrefix("/apps").Subrouter()
	apps.Use(tokenAuthMiddleware(verifier))
	apps.Path("").Methods("GET").HandlerFunc(h.listApps)
	apps.Path("").Methods("POST").HandlerFunc(h.createApp)
	apps.Path("/{id}").Methods("PUT").HandlerFunc(h.updateApp)
	apps.Path("/{id}").Methods("DELETE").HandlerFunc(h.deleteApp)
	apps.Path("/{id}/icon").Methods("POST").HandlerFunc(h.uploadIcon)

	// Any /api path that didn't match above gets a JSON 404 instead of
	// falling through to tenant resolution.
	api.PathPrefix("/").HandlerFunc(h.apiNotFound)

	// Everything else is public tenant traffic, routed by Host header.
	// It **HAS** to be registered after all other paths.
	router.PathPrefix("/").HandlerFunc(h.public)

	return router
}

func (a *apiServer) Start(back backend.Backend, verifier token.Verifier) error {
	registerMetrics(a.log)

	router := NewRouter(a.log, back, verifier)

	corsOpts := []handlers.CORSOption{
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
	}
	if a.allowedOrigin != "" {
		corsOpts = append(corsOpts, handlers.AllowedOrigins([]string{a.allowedOrigin}))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.port),
		Handler:           handlers.CORS(corsOpts...)(router),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	go func() {
		a.log.WithField("port", a.port).Info("starting api server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Fatalf("listen: %s\n", err)
		}
	}()

	metricsSrv := a.startMetricsServer()

	<-a.ctx.Done()

	a.log.Info("shutting down the api server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer func() {
		cancel()
	}()

	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		a.log.WithError(err).Error("unable to shutdown the api server gracefully")
		return err
	}

	return nil
}

// startMetricsServer exposes prometheus metrics and a liveness probe on a
// side listener so they never collide with tenant domains' public paths.
func (a *apiServer) startMetricsServer() *http.Server {
	if a.metricsPort <= 0 {
		return nil
	}

	m := http.NewServeMux()
	m.Handle("/metrics", promhttp.Handler())
	m.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", a.metricsPort),
		Handler: m,
	}

	go func() {
		a.log.WithField("port", a.metricsPort).Info("starting metrics server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.WithError(err).Error("metrics listener failed")
		}
	}()

	return srv
}
