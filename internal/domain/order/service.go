package order

import (
	"context"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/FlavP/order-service/internal/domain/book"
)

// Service orchestrates order submission: catalog lookup, accept/reject
// decision, persistence, and the accepted-order notification.
type Service struct {
	books     book.Client
	orders    Repository
	publisher Publisher
	lg        *zap.Logger
}

// NewService creates an order Service with the required collaborators.
func NewService(
	books book.Client,
	orders Repository,
	publisher Publisher,
	lg *zap.Logger,
) *Service {
	return &Service{
		books:     books,
		orders:    orders,
		publisher: publisher,
		lg:        lg,
	}
}

// SubmitOrder validates the request, looks the book up in the catalog,
// decides the terminal status, persists the order, and publishes a
// notification for accepted orders. Lookup strictly precedes persistence and
// persistence strictly precedes publish; identical requests produce distinct
// orders.
func (s *Service) SubmitOrder(ctx context.Context, req Request) (Order, error) {
	if err := req.Validate(); err != nil {
		return Order{}, err
	}

	b, err := s.books.FindByISBN(ctx, req.ISBN)
	if err != nil {
		return Order{}, &LookupError{ISBN: req.ISBN, Err: err}
	}

	saved, err := s.orders.Insert(ctx, Decide(req, b))
	if err != nil {
		return Order{}, errors.Wrap(err, "insert order")
	}

	if saved.Status == StatusAccepted {
		// The persisted row is the source of truth. A failed hand-off loses
		// the notification, never the order; hardening this with an outbox is
		// out of scope.
		if err := s.publisher.Publish(ctx, AcceptedMessage{OrderID: saved.ID}); err != nil {
			s.lg.Error("publish accepted order",
				zap.Int64("order_id", saved.ID),
				zap.Error(err),
			)
		}
	}

	return saved, nil
}

// ListOrders returns every persisted order in insertion order.
func (s *Service) ListOrders(ctx context.Context) ([]Order, error) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	return orders, nil
}
