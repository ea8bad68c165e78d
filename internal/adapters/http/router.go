package httpadapter

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/seanebones-lang/Parts-Dept/internal/core/domain"
	"github.com/seanebones-lang/Parts-Dept/internal/core/ports"
)

// Router exposes the decision pipeline and inventory operations.
type Router struct {
	processor ports.EmailProcessor
	repo      ports.EmailRepository
	inventory ports.InventoryStore
	queue     ports.MessageQueue
}

func NewRouter(
	processor ports.EmailProcessor,
	repo ports.EmailRepository,
	inventory ports.InventoryStore,
	queue ports.MessageQueue,
) *Router {
	return &Router{
		processor: processor,
		repo:      repo,
		inventory: inventory,
		queue:     queue,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/emails", rt.emails)
	mux.HandleFunc("/v1/emails/process", rt.processEmail)
	mux.HandleFunc("/v1/emails/", rt.getEmailByID)
	mux.HandleFunc("/v1/inventory/search", rt.searchParts)
	mux.HandleFunc("/v1/inventory/low-stock", rt.lowStock)
	mux.HandleFunc("/v1/inventory/transfer", rt.transferInventory)
	mux.HandleFunc("/v1/inventory/", rt.checkInventory)
	return requestIDMiddleware(accessLogMiddleware(mux))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type emailRequest struct {
	ID      string `json:"id"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (req *emailRequest) toDomain() domain.InboundEmail {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = uuid.NewString()
	}
	return domain.InboundEmail{
		ID:      id,
		From:    req.From,
		Subject: req.Subject,
		Body:    req.Body,
	}
}

func decodeEmailRequest(w http.ResponseWriter, r *http.Request) (domain.InboundEmail, bool) {
	var req emailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return domain.InboundEmail{}, false
	}
	if strings.TrimSpace(req.Body) == "" && strings.TrimSpace(req.Subject) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "subject or body is required"})
		return domain.InboundEmail{}, false
	}
	return req.toDomain(), true
}

func (rt *Router) emails(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		rt.submitEmail(w, r)
	case http.MethodGet:
		rt.listEmails(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

// submitEmail stores the email and enqueues it for asynchronous
// processing by the worker pool.
func (rt *Router) submitEmail(w http.ResponseWriter, r *http.Request) {
	email, ok := decodeEmailRequest(w, r)
	if !ok {
		return
	}

	if err := rt.repo.Create(r.Context(), newReceivedRecord(email)); err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	if err := rt.queue.PublishEmailReceived(r.Context(), email.ID); err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"email_id": email.ID, "status": domain.EmailStatusReceived})
}

func (rt *Router) listEmails(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	records, err := rt.repo.ListRecent(r.Context(), limit)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"emails": records})
}

// processEmail runs the pipeline synchronously and persists the outcome.
func (rt *Router) processEmail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	email, ok := decodeEmailRequest(w, r)
	if !ok {
		return
	}

	result, err := rt.processor.Process(r.Context(), email)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	if rt.repo != nil {
		if err := rt.repo.Create(r.Context(), newReceivedRecord(email)); err == nil {
			_ = rt.repo.SaveOutcome(r.Context(), email.ID, result)
		}
	}
	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) getEmailByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/emails/")
	if id == "" || strings.Contains(id, "/") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email id is required"})
		return
	}

	record, err := rt.repo.GetByEmailID(r.Context(), id)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (rt *Router) checkInventory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	sku := strings.TrimPrefix(r.URL.Path, "/v1/inventory/")
	if sku == "" || strings.Contains(sku, "/") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "sku is required"})
		return
	}

	stock, err := rt.inventory.Check(r.Context(), sku, r.URL.Query().Get("location"))
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sku": sku, "stock": stock})
}

func (rt *Router) searchParts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query parameter 'q' is required"})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	parts, err := rt.inventory.FindParts(r.Context(), query, limit)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"parts": parts})
}

func (rt *Router) lowStock(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	items, err := rt.inventory.LowStock(r.Context(), r.URL.Query().Get("location"))
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (rt *Router) transferInventory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		FromLocationID string `json:"from_location_id"`
		ToLocationID   string `json:"to_location_id"`
		SKU            string `json:"sku"`
		Quantity       int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.FromLocationID == "" || req.ToLocationID == "" || req.SKU == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "from_location_id, to_location_id and sku are required"})
		return
	}

	if err := rt.inventory.Transfer(r.Context(), req.FromLocationID, req.ToLocationID, req.SKU, req.Quantity); err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "transferred"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
