package petstore

import (
	"context"
	"net/http"
	"strconv"
)

const storePath = "/store"

// StoreAPI wraps the /store endpoints.
type StoreAPI struct {
	transport *Transport
}

// NewStoreAPI builds the store wrapper on a shared transport.
func NewStoreAPI(t *Transport) *StoreAPI {
	if t == nil {
		panic("petstore: nil transport")
	}
	return &StoreAPI{transport: t}
}

// PlaceOrder places an order for a pet.
func (a *StoreAPI) PlaceOrder(ctx context.Context, order Order) Result {
	return a.transport.Execute(ctx, Request{
		Method:  http.MethodPost,
		Path:    storePath + "/order",
		Headers: jsonHeaders(),
		Body:    mustJSON(order),
	})
}

// GetOrderByID fetches a purchase order.
func (a *StoreAPI) GetOrderByID(ctx context.Context, id int64) Result {
	return a.transport.Execute(ctx, Request{
		Method: http.MethodGet,
		Path:   orderIDPath(id),
	})
}

// DeleteOrder deletes a purchase order.
func (a *StoreAPI) DeleteOrder(ctx context.Context, id int64) Result {
	return a.transport.Execute(ctx, Request{
		Method: http.MethodDelete,
		Path:   orderIDPath(id),
	})
}

// GetInventory returns pet counts keyed by status.
func (a *StoreAPI) GetInventory(ctx context.Context) Result {
	return a.transport.Execute(ctx, Request{
		Method: http.MethodGet,
		Path:   storePath + "/inventory",
	})
}

func orderIDPath(id int64) string {
	return storePath + "/order/" + strconv.FormatInt(id, 10)
}
