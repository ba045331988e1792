package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Routes builds the HTTP surface of the simulator: a thin JSON adapter over
// the in-process engine, shaped like the REST wrappers the dashboard
// consumes.
func Routes(h *Handlers, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("healthy"))
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/quotes", h.GenerateQuotesHandler)
		r.Get("/quotes/{quoteID}/fees", h.ComputeFeesHandler)
		r.Post("/quotes/{quoteID}/confirm", h.ConfirmQuoteHandler)
		r.Post("/proxy/resolve", h.ResolveProxyHandler)
		r.Post("/payments", h.SubmitPaymentHandler)
		r.Get("/payments/{uetr}", h.GetStatusHandler)
		r.Get("/payments/{uetr}/messages", h.GetMessagesHandler)
		r.Get("/payments/{uetr}/events", h.GetEventsHandler)
		r.Get("/scenarios", h.ListScenariosHandler)
	})

	return r
}
