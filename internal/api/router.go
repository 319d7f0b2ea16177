package api

import (
	"eld-trip-service/internal/api/handlers"
	"eld-trip-service/internal/ports"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(provider ports.RouteProvider) http.Handler {
	mux := http.NewServeMux()

	tripHandler := &handlers.TripHandler{Provider: provider}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/trips/calculate", tripHandler.Calculate)

	return requestIDMiddleware(loggingMiddleware(mux))
}
