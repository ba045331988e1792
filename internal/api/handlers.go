package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/crossgate/schemesim"
)

// Handlers bridges the HTTP layer and the simulator client.
type Handlers struct {
	client *schemesim.Client
}

// NewHandlers creates the handler set over a simulator client.
func NewHandlers(client *schemesim.Client) *Handlers {
	return &Handlers{client: client}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("level=error component=api msg=\"response encode failed\" err=%v", err)
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}

// mapEngineError translates the simulator's recoverable errors onto HTTP
// statuses the dashboard branches on.
func (h *Handlers) mapEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, schemesim.ErrQuoteNotFound):
		h.writeError(w, http.StatusNotFound, "quote not found; request fresh quotes")
	case errors.Is(err, schemesim.ErrQuoteExpired):
		h.writeError(w, http.StatusGone, "quote expired; request fresh quotes")
	case errors.Is(err, schemesim.ErrQuoteAlreadyLocked):
		h.writeError(w, http.StatusConflict, "quote already locked by another confirmation")
	case errors.Is(err, schemesim.ErrDuplicateUETR):
		h.writeError(w, http.StatusConflict, "a payment with this uetr already exists")
	case errors.Is(err, schemesim.ErrPaymentNotFound):
		h.writeError(w, http.StatusNotFound, "payment not found")
	default:
		log.Printf("level=error component=api msg=\"unexpected engine error\" err=%v", err)
		h.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// GenerateQuotesHandler handles POST /v1/quotes.
func (h *Handlers) GenerateQuotesHandler(w http.ResponseWriter, r *http.Request) {
	var req schemesim.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	quotes, err := h.client.GenerateQuotes(req)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	// An empty corridor is "no offers", not an error.
	if quotes == nil {
		quotes = []schemesim.Quote{}
	}
	h.writeJSON(w, http.StatusOK, quotes)
}

// ComputeFeesHandler handles GET /v1/quotes/{quoteID}/fees?feeType=INVOICED.
func (h *Handlers) ComputeFeesHandler(w http.ResponseWriter, r *http.Request) {
	quoteID := chi.URLParam(r, "quoteID")
	feeType := r.URL.Query().Get("feeType")
	if feeType == "" {
		feeType = schemesim.FeeTypeInvoiced
	}
	breakdown, err := h.client.ComputeFees(quoteID, feeType)
	if err != nil {
		if strings.Contains(err.Error(), "unknown source fee type") {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.mapEngineError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, breakdown)
}

// ConfirmQuoteHandler handles POST /v1/quotes/{quoteID}/confirm.
func (h *Handlers) ConfirmQuoteHandler(w http.ResponseWriter, r *http.Request) {
	quoteID := chi.URLParam(r, "quoteID")
	confirmation, err := h.client.ConfirmQuote(quoteID)
	if err != nil {
		h.mapEngineError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, confirmation)
}

type resolveProxyRequest struct {
	DestinationCountry string `json:"destinationCountry"`
	ProxyType          string `json:"proxyType"`
	ProxyValue         string `json:"proxyValue"`
	ScenarioCode       string `json:"scenarioCode,omitempty"`
}

// ResolveProxyHandler handles POST /v1/proxy/resolve. Resolution failures
// are 200s carrying verified=false: they are protocol outcomes, not faults.
func (h *Handlers) ResolveProxyHandler(w http.ResponseWriter, r *http.Request) {
	var req resolveProxyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result := h.client.ResolveProxy(req.DestinationCountry, req.ProxyType, req.ProxyValue, req.ScenarioCode)
	h.writeJSON(w, http.StatusOK, result)
}

// SubmitPaymentHandler handles POST /v1/payments. Rejected payments are 201s
// with status=RJCT; only infrastructure conditions map to error statuses.
func (h *Handlers) SubmitPaymentHandler(w http.ResponseWriter, r *http.Request) {
	var params schemesim.SubmitParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	payment, err := h.client.SubmitPayment(params)
	if err != nil {
		h.mapEngineError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, payment)
}

// GetStatusHandler handles GET /v1/payments/{uetr}. Unknown UETRs are 200s
// with status=NOT_FOUND, matching how the dashboard treats searches.
func (h *Handlers) GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	uetr := chi.URLParam(r, "uetr")
	h.writeJSON(w, http.StatusOK, h.client.GetStatus(uetr))
}

// GetMessagesHandler handles GET /v1/payments/{uetr}/messages.
func (h *Handlers) GetMessagesHandler(w http.ResponseWriter, r *http.Request) {
	uetr := chi.URLParam(r, "uetr")
	trail, err := h.client.GetMessages(uetr)
	if err != nil {
		h.mapEngineError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, trail)
}

// GetEventsHandler handles GET /v1/payments/{uetr}/events.
func (h *Handlers) GetEventsHandler(w http.ResponseWriter, r *http.Request) {
	uetr := chi.URLParam(r, "uetr")
	events, err := h.client.GetEvents(uetr)
	if err != nil {
		h.mapEngineError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, events)
}

// ListScenariosHandler handles GET /v1/scenarios.
func (h *Handlers) ListScenariosHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.client.Scenarios())
}
