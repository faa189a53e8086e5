// Package http exposes the order workflow over HTTP.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/FlavP/order-service/internal/domain/order"
)

// OrderService is the workflow surface the handlers need.
type OrderService interface {
	SubmitOrder(ctx context.Context, req order.Request) (order.Order, error)
	ListOrders(ctx context.Context) ([]order.Order, error)
}

type orderRequest struct {
	ISBN     string `json:"isbn"`
	Quantity int    `json:"quantity"`
}

type orderResponse struct {
	ID               int64     `json:"id"`
	BookISBN         string    `json:"bookIsbn"`
	BookName         *string   `json:"bookName,omitempty"`
	BookPrice        *float64  `json:"bookPrice,omitempty"`
	Quantity         int       `json:"quantity"`
	Status           string    `json:"status"`
	CreatedDate      time.Time `json:"createdDate"`
	LastModifiedDate time.Time `json:"lastModifiedDate"`
}

func toOrderResponse(o order.Order) orderResponse {
	var price *float64
	if o.BookPrice != nil {
		p := o.BookPrice.InexactFloat64()
		price = &p
	}
	return orderResponse{
		ID:               o.ID,
		BookISBN:         o.BookISBN,
		BookName:         o.BookName,
		BookPrice:        price,
		Quantity:         o.Quantity,
		Status:           string(o.Status),
		CreatedDate:      o.CreatedDate,
		LastModifiedDate: o.LastModifiedDate,
	}
}

// HandleSubmitOrder returns the handler for POST /orders. A rejected order is
// a successfully processed result, not an HTTP error; both terminal states
// respond 200 with the full order record.
func HandleSubmitOrder(svc OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req orderRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		o, err := svc.SubmitOrder(r.Context(), order.Request{
			ISBN:     req.ISBN,
			Quantity: req.Quantity,
		})
		if err != nil {
			writeSubmitOrderError(r.Context(), w, err)
			return
		}

		writeJSON(w, http.StatusOK, toOrderResponse(o))
	}
}

// HandleListOrders returns the handler for GET /orders.
func HandleListOrders(svc OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := svc.ListOrders(r.Context())
		if err != nil {
			zctx.From(r.Context()).Error("list orders", zap.Error(err))
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		resp := make([]orderResponse, 0, len(orders))
		for _, o := range orders {
			resp = append(resp, toOrderResponse(o))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// NewMux routes the order endpoints.
func NewMux(svc OrderService) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /orders", HandleSubmitOrder(svc))
	mux.HandleFunc("GET /orders", HandleListOrders(svc))
	return mux
}

// writeSubmitOrderError maps workflow errors to HTTP responses: validation to
// 400, catalog transport faults to 502, persistence faults to 500.
func writeSubmitOrderError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, order.ErrEmptyISBN):
		writeError(w, http.StatusBadRequest, codeISBNRequired, err.Error())
	case errors.Is(err, order.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, codeInvalidQuantity, err.Error())
	default:
		var lookupErr *order.LookupError
		if errors.As(err, &lookupErr) {
			zctx.From(ctx).Error("catalog lookup failed",
				zap.String("isbn", lookupErr.ISBN),
				zap.Error(err),
			)
			writeError(w, http.StatusBadGateway, codeCatalogUnavailable, "book catalog unavailable")
			return
		}
		zctx.From(ctx).Error("submit order failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
