// Package catalog implements the book lookup contract against the catalog
// service's HTTP API.
package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/FlavP/order-service/internal/domain/book"
)

var _ book.Client = (*Client)(nil)

// Client fetches book metadata from the catalog service.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client for the catalog at baseURL. All requests share one
// http.Client with the given timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// bookPayload mirrors the catalog's book representation. Fields the order
// workflow does not need (publisher, edition) are ignored on decode.
type bookPayload struct {
	ISBN   string          `json:"isbn"`
	Title  string          `json:"title"`
	Author string          `json:"author"`
	Price  decimal.Decimal `json:"price"`
}

// FindByISBN fetches the book with the given ISBN. A catalog 404 is the valid
// empty result (nil, nil); any other non-200 answer is a transport fault.
func (c *Client) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/books/"+url.PathEscape(isbn), nil)
	if err != nil {
		return nil, errors.Wrap(err, "build catalog request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "call catalog")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var payload bookPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrap(err, "decode catalog response")
	}

	return &book.Book{
		ISBN:   payload.ISBN,
		Title:  payload.Title,
		Author: payload.Author,
		Price:  payload.Price,
	}, nil
}
