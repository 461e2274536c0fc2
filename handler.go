package ccfield

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"
)

// ObservationsPath serves the recorded observations for this origin.
const ObservationsPath = "/.well-known/ccfield/observations"

// Handler returns the proxy with request logging and the observations
// endpoint mounted in front of it.
func (p *Proxy) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(hlog.NewHandler(p.log))
	r.Use(hlog.RequestIDHandler("reqId", "Request-Id"))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Trace().
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("Served request")
	}))
	r.Get(ObservationsPath, p.serveObservations)
	r.Handle("/*", p)
	return r
}

// serveObservations lists the observations of this origin as JSON.
// The prefix query parameter narrows the list down to keys below
// origin:prefix, e.g. "GET:/blog/".
func (p *Proxy) serveObservations(w http.ResponseWriter, r *http.Request) {
	if p.recorder == nil {
		http.Error(w, "No recorder configured", http.StatusNotFound)
		return
	}
	prefix := p.keyer.OriginPrefix + r.URL.Query().Get("prefix")
	observations, err := p.recorder.All(r.Context(), prefix)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Could not list observations")
		http.Error(w, "Could not list observations", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(observations); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Could not write observations")
	}
}
