package web

import (
	"net/http"

	"github.com/bkerly/Mask-Fit/internal/web/handlers"
	"github.com/go-chi/chi/v5"
)

func (s *Server) setupRoutes() {
	// Create handlers
	profilesHandler := handlers.NewProfilesHandler(s.profiles)
	catalogHandler := handlers.NewCatalogHandler(s.catalog)
	classifyHandler := handlers.NewClassifyHandler(s.profiles, s.catalog)
	scanHandler := handlers.NewScanHandler(s.config, s.profiles, s.catalog)
	protocolHandler := handlers.NewProtocolHandler(s.sealCheck)
	fitMapHandler := handlers.NewFitMapHandler(s.profiles)

	// Health check
	s.router.Get("/api/v1/health", handlers.HealthCheck)

	// API routes
	s.router.Route("/api/v1", func(r chi.Router) {
		// Reference data
		r.Get("/profiles", profilesHandler.List)
		r.Get("/profiles/{category}", profilesHandler.Get)
		r.Get("/catalog", catalogHandler.List)
		r.Get("/catalog/{category}", catalogHandler.Get)

		// Fitting
		r.Post("/classify", classifyHandler.Classify)
		r.Post("/scan", scanHandler.Scan)

		// Seal check protocol
		r.Get("/protocol", protocolHandler.Get)
		r.Post("/protocol/evaluate", protocolHandler.Evaluate)

		// Fit map visualization
		r.Get("/fitmap", fitMapHandler.Render)
	})

	s.router.Get("/", s.serveLanding)
}

// serveLanding serves a minimal landing page pointing at the API.
func (s *Server) serveLanding(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`<!DOCTYPE html>
<html>
<head>
    <title>Mask Fit</title>
    <style>
        body { font-family: system-ui, sans-serif; display: flex; justify-content: center; align-items: center; height: 100vh; margin: 0; background: #1a1a2e; color: #eee; }
        .container { text-align: center; }
        h1 { color: #00d9ff; }
        p { color: #aaa; }
        a { color: #00d9ff; }
        code { background: #2a2a3e; padding: 2px 8px; border-radius: 4px; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Mask Fit API</h1>
        <p>Respirator sizing from facial measurements.</p>
        <p>Health: <a href="/api/v1/health">/api/v1/health</a></p>
        <p>Category fit map: <a href="/api/v1/fitmap">/api/v1/fitmap</a></p>
        <p>Classify: <code>POST /api/v1/classify</code> &middot; Scan: <code>POST /api/v1/scan</code></p>
    </div>
</body>
</html>`))
}
