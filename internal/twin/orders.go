package twin

import (
	"net/http"
	"strconv"

	"github.com/Adda-Baaj/petstore-client/pkg/petstore"
	"github.com/go-chi/chi/v5"
)

var orderStatuses = map[string]bool{
	petstore.OrderStatusPlaced:    true,
	petstore.OrderStatusApproved:  true,
	petstore.OrderStatusDelivered: true,
}

// validateOrder checks o and defaults an empty status to placed.
func validateOrder(o *petstore.Order) string {
	if o.Status == "" {
		o.Status = petstore.OrderStatusPlaced
	}
	switch {
	case o.PetID <= 0:
		return "Invalid pet ID supplied"
	case o.Quantity <= 0:
		return "Invalid quantity"
	case !orderStatuses[o.Status]:
		return "Invalid order status"
	case o.ShipDate != "":
		if _, err := o.ShipTime(); err != nil {
			return "Invalid ship date"
		}
	}
	return ""
}

// PlaceOrder handles POST /store/order.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var o petstore.Order
	if err := decodeJSON(r, &o); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid Order")
		return
	}
	if msg := validateOrder(&o); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	stored, ok := h.store.AddOrder(o)
	if !ok {
		writeError(w, http.StatusConflict, "Order already exists")
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

// GetOrder handles GET /store/order/{orderId}.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "orderId"))
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid ID supplied")
		return
	}
	o, found := h.store.Order(id)
	if !found {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// DeleteOrder handles DELETE /store/order/{orderId}.
func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "orderId"))
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid ID supplied")
		return
	}
	if !h.store.DeleteOrder(id) {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}
	writeMessage(w, strconv.FormatInt(id, 10))
}

// Inventory handles GET /store/inventory.
func (h *Handler) Inventory(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Inventory())
}
