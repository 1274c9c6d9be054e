// Package api fieldsheet REST API
//
// @title           fieldsheet API
// @version         1.0.0
// @description     Reads and replaces the form field table stored in a spreadsheet.
// @host            localhost:8080
// @BasePath        /
//
// @securityDefinitions.apikey ApiKeyAuth
// @in              header
// @name            X-API-Key
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/swaggo/swag"
)

const shutdownTimeout = 10 * time.Second

const swaggerUI = `<!DOCTYPE html>
<html>
<head>
	 <title>fieldsheet API Documentation</title>
	 <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui.css" />
</head>
<body>
	 <div id="swagger-ui"></div>
	 <script src="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui-bundle.js"></script>
	 <script>
	   window.onload = function() {
	     SwaggerUIBundle({
	       url: '/swagger/swagger.json',
	       dom_id: '#swagger-ui',
	       presets: [
	         SwaggerUIBundle.presets.apis,
	         SwaggerUIBundle.presets.standalone
	       ]
	     });
	   };
	 </script>
</body>
</html>`

// Routes builds the router with all routes configured
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(requestID)
	r.Use(requestLogger(s.sugar))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", s.metrics.Handler())

	r.Get("/health", s.metrics.InstrumentHandler("GET", "/health", s.handleHealth))

	r.Group(func(r chi.Router) {
		if s.config.APIKey != "" {
			r.Use(s.metrics.InstrumentAuthMiddleware(apiKeyMiddleware(s.config.APIKey)))
		}

		r.Get("/form-fields", s.metrics.InstrumentHandler("GET", "/form-fields", s.handleGetFormFields))
		r.Post("/form-fields", s.metrics.InstrumentHandler("POST", "/form-fields", s.handlePostFormFields))
	})

	// Swagger documentation (unprotected)
	r.Get("/swagger/*", s.handleSwagger)

	return r
}

func (s *Server) handleSwagger(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/swagger/", "/swagger/index.html":
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerUI))
	case "/swagger/swagger.json":
		doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
		if err != nil {
			s.sugar.Errorw("failed to generate swagger doc", "error", err)
			http.Error(w, "Failed to generate Swagger documentation", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(doc))
	default:
		http.NotFound(w, r)
	}
}

// Run serves HTTP on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.sugar.Infow("starting fieldsheet API server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.sugar.Infow("shutting down fieldsheet API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
