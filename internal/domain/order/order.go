package order

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FlavP/order-service/internal/domain/book"
)

// Status is a terminal order state, decided exactly once at creation time.
// No order ever transitions between or beyond these states.
type Status string

const (
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
)

// Sentinel errors for request validation.
var (
	ErrEmptyISBN       = fmt.Errorf("isbn required")
	ErrInvalidQuantity = fmt.Errorf("quantity must be greater than 0")
)

// LookupError indicates the catalog call failed for a reason other than
// not-found, such as a timeout or connection fault.
type LookupError struct {
	ISBN string
	Err  error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("looking up book %s: %v", e.ISBN, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// Request holds the input for submitting an order.
type Request struct {
	ISBN     string
	Quantity int
}

// Validate checks the request invariants. It runs before any external call,
// so a malformed request never triggers a catalog lookup.
func (r Request) Validate() error {
	if r.ISBN == "" {
		return ErrEmptyISBN
	}
	if r.Quantity < 1 {
		return ErrInvalidQuantity
	}
	return nil
}

// Order is a customer order in one of two terminal states. BookName and
// BookPrice are populated only for accepted orders. ID and the timestamps are
// assigned by the store on insert; nothing mutates an order afterwards.
type Order struct {
	ID               int64
	BookISBN         string
	BookName         *string
	BookPrice        *decimal.Decimal
	Quantity         int
	Status           Status
	CreatedDate      time.Time
	LastModifiedDate time.Time
}

// AcceptedMessage is the notification emitted once per accepted order.
type AcceptedMessage struct {
	OrderID int64 `json:"orderId"`
}

// Repository defines persistence operations for orders.
type Repository interface {
	// Insert atomically assigns an id and timestamps and returns the stored
	// order. The store is the sole arbiter of id uniqueness.
	Insert(ctx context.Context, o Order) (Order, error)
	FindAll(ctx context.Context) ([]Order, error)
}

// Publisher hands accepted-order notifications to a channel that guarantees
// durable delivery once the send is accepted.
type Publisher interface {
	Publish(ctx context.Context, msg AcceptedMessage) error
}

// Decide resolves a validated request and an optional catalog result into an
// unsaved order in exactly one terminal status. A nil book rejects the order;
// otherwise the order is accepted with the book's name and price snapshot.
func Decide(req Request, b *book.Book) Order {
	o := Order{
		BookISBN: req.ISBN,
		Quantity: req.Quantity,
		Status:   StatusRejected,
	}
	if b == nil {
		return o
	}

	name := b.Title + " - " + b.Author
	price := b.Price
	o.Status = StatusAccepted
	o.BookName = &name
	o.BookPrice = &price
	return o
}
