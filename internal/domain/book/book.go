// Package book defines the catalog book value type and the lookup contract
// the order workflow depends on.
package book

import (
	"context"

	"github.com/shopspring/decimal"
)

// Book is an immutable snapshot of catalog state at lookup time. It is never
// persisted by this service.
type Book struct {
	ISBN   string
	Title  string
	Author string
	Price  decimal.Decimal
}

// Client queries the external book catalog by ISBN.
//
// FindByISBN returns (nil, nil) when the catalog has no matching book;
// emptiness is the not-found signal. Only transport-level faults (timeout,
// connection failure, malformed payload) are reported as errors.
type Client interface {
	FindByISBN(ctx context.Context, isbn string) (*Book, error)
}
