package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/coelhor/feira/internal/model"
	"github.com/coelhor/feira/internal/session"
	"github.com/coelhor/feira/internal/suggest"
	ws "github.com/coelhor/feira/internal/websocket"
)

type ItemHandler struct {
	sessions *session.Manager
	hub      *ws.Hub
	logger   *slog.Logger
}

func NewItemHandler(sessions *session.Manager, hub *ws.Hub, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{sessions: sessions, hub: hub, logger: logger}
}

// itemRequest accepts the category either as a bare name or as an
// {id, name} object.
type itemRequest struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Quantity  int               `json:"quantity"`
	Unit      string            `json:"unit"`
	Category  model.CategoryRef `json:"category"`
	Notes     string            `json:"notes"`
	Purchased bool              `json:"purchased"`
}

func (req itemRequest) item(cat string) model.Item {
	return model.Item{
		ID:        req.ID,
		Name:      req.Name,
		Quantity:  req.Quantity,
		Unit:      req.Unit,
		Category:  cat,
		Notes:     req.Notes,
		Purchased: req.Purchased,
	}
}

// Create adds an item to a list. When the request carries no category, one
// is suggested from the item name and the product bank.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	listID := r.PathValue("id")

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

	cat := categoryName(st, req.Category)
	if cat == "" {
		cat = suggest.Category(req.Name, st.Products())
	}

	item, err := st.AddItem(r.Context(), listID, req.item(cat))
	if err != nil {
		writeCoreError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ws.NewMessage("item", "created", item.ID, map[string]any{"list_id": listID}))
	writeJSON(w, http.StatusCreated, item)
}

// Update replaces an item in place, keyed by the id in the path.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	listID := r.PathValue("id")
	itemID := r.PathValue("itemID")

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.ID = itemID

	st, err := dataStore(h.sessions, r)
	if err != nil {
		writeCoreError(w, h.logger, err)
		return
	}

	item, err := st.AddItem(r.Context(), listID, req.item(categoryName(st, req.Category)))
	if err != nil {
		writeCoreError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ws.NewMessage("item", "updated", item.ID, map[string]any{"list_id": listID}))
	writeJSON(w, http.StatusOK, item)
}

// Toggle flips an item's purchased flag.
func (h *ItemHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	listID := r.PathValue("id")
	itemID := r.PathValue("itemID")

	st, err := dataStore(h.sessions, r)
	if err != nil {
		writeCoreError(w, h.logger, err)
		return
	}

	item, err := st.TogglePurchased(r.Context(), listID, itemID)
	if err != nil {
		writeCoreError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ws.NewMessage("item", "updated", item.ID, map[string]any{"list_id": listID}))
	writeJSON(w, http.StatusOK, item)
}

// Delete removes an item; the removal lands in the undo buffer.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	listID := r.PathValue("id")
	itemID := r.PathValue("itemID")

	st, err := dataStore(h.sessions, r)
	if err != nil {
		writeCoreError(w, h.logger, err)
		return
	}

	if err := st.RemoveItem(r.Context(), listID, itemID); err != nil {
		writeCoreError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ws.NewMessage("item", "deleted", itemID, map[string]any{"list_id": listID}))
	w.WriteHeader(http.StatusNoContent)
}

// Undo restores the last removed item back onto its list.
func (h *ItemHandler) Undo(w http.ResponseWriter, r *http.Request) {
	listID := r.PathValue("id")

	st, err := dataStore(h.sessions, r)
	if err != nil {
		writeCoreError(w, h.logger, err)
		return
	}

	item, err := st.UndoLastRemoval(r.Context(), listID)
	if err != nil {
		writeCoreError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ws.NewMessage("item", "created", item.ID, map[string]any{"list_id": listID}))
	writeJSON(w, http.StatusOK, item)
}

// FromBank instantiates a product-bank template onto a list.
func (h *ItemHandler) FromBank(w http.ResponseWriter, r *http.Request) {
	listID := r.PathValue("id")

	var req struct {
		ProductID string `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	st, err := dataStore(h.sessions, r)
	if err != nil {
		writeCoreError(w, h.logger, err)
		return
	}

	item, err := st.AddFromBank(r.Context(), listID, req.ProductID)
	if err != nil {
		writeCoreError(w, h.logger, err)
		return
	}

	h.hub.Broadcast(ws.NewMessage("item", "created", item.ID, map[string]any{"list_id": listID}))
	writeJSON(w, http.StatusCreated, item)
}
