package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/coelhor/feira/internal/session"
	ws "github.com/coelhor/feira/internal/websocket"
)

type ProductHandler struct {
	sessions *session.Manager
	hub      *ws.Hub
	logger   *slog.Logger
}

func NewProductHandler(sessions *session.Manager, hub *ws.Hub, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{sessions: sessions, hub: hub, logger: logger}
}

// Search returns the product bank grouped by category, filtered by ?q= and
// optionally excluding names already on the list named by ?exclude_list=.
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	st, err := dataStore(h.sessions, r)
	if err != nil {
		writeCoreError(w, h.logger, err)
		return
	}

	q := r.URL.Query()
	groups := st.SearchProducts(q.Get("q"), q.Get("exclude_list"))
	writeJSON(w, http.StatusOK, groups)
}

// Create adds a template to the product bank.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	st, err := dataStore(h.sessions, r)
	if err != nil {
		writeCoreError(w, h.logger, err)
		return
	}

	product, err := st.AddProduct(r.Context(), req.Name, categoryName(st, req.Category), req.Unit)
	if err != nil {
		writeCoreError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ws.NewMessage("product", "created", product.ID, nil))
	writeJSON(w, http.StatusCreated, product)
}

// Update replaces a bank entry, keyed by the id in the path.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.ID = r.PathValue("id")

	st, err := dataStore(h.sessions, r)
	if err != nil {
		writeCoreError(w, h.logger, err)
		return
	}

	product, err := st.UpdateProduct(r.Context(), req.item(categoryName(st, req.Category)))
	if err != nil {
		writeCoreError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ws.NewMessage("product", "updated", product.ID, nil))
	writeJSON(w, http.StatusOK, product)
}

// Delete removes a bank entry.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("id")

	st, err := dataStore(h.sessions, r)
	if err != nil {
		writeCoreError(w, h.logger, err)
		return
	}

	if err := st.DeleteProduct(r.Context(), productID); err != nil {
		writeCoreError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ws.NewMessage("product", "deleted", productID, nil))
	w.WriteHeader(http.StatusNoContent)
}
