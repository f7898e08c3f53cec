package ical

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(version string) http.Handler {
	r := chi.NewRouter()
	h := NewHandler(version)
	r.Get("/", h.ServeHTTP)
	r.Get("/{platform}", h.ServeHTTP)
	return r
}
