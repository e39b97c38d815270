package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/inverness4444/stresssense4-sub001/internal/service"
	"github.com/inverness4444/stresssense4-sub001/internal/transport/rest/handler"
)

// Container holds all dependencies for the router
type Container struct {
	MetricsService   *service.MetricsService
	RecomputeService *service.RecomputeService
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	metricsHandler := handler.NewMetricsHandler(c.MetricsService)
	recomputeHandler := handler.NewRecomputeHandler(c.RecomputeService)

	r.Use(corsMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/teams/{teamId}/metrics", metricsHandler.GetMetrics).Methods("GET", "OPTIONS")
	v1.HandleFunc("/teams/{teamId}/trends", metricsHandler.GetTrends).Methods("GET", "OPTIONS")
	v1.HandleFunc("/recompute", recomputeHandler.Run).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
