package order

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FlavP/order-service/internal/domain/book"
)

// --- Mock implementations ---

type mockBookClient struct {
	book  *book.Book
	err   error
	calls int
}

func (m *mockBookClient) FindByISBN(_ context.Context, _ string) (*book.Book, error) {
	m.calls++
	return m.book, m.err
}

type mockOrderRepo struct {
	inserted []Order
	all      []Order
	nextID   int64
	err      error
	findErr  error
}

func (m *mockOrderRepo) Insert(_ context.Context, o Order) (Order, error) {
	if m.err != nil {
		return Order{}, m.err
	}
	m.nextID++
	o.ID = m.nextID
	m.inserted = append(m.inserted, o)
	return o, nil
}

func (m *mockOrderRepo) FindAll(_ context.Context) ([]Order, error) {
	return m.all, m.findErr
}

type mockPublisher struct {
	messages []AcceptedMessage
	err      error
}

func (m *mockPublisher) Publish(_ context.Context, msg AcceptedMessage) error {
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, msg)
	return nil
}

// --- Helpers ---

func newTestBook() *book.Book {
	return &book.Book{
		ISBN:   "1234567890",
		Title:  "Title",
		Author: "Author",
		Price:  decimal.RequireFromString("9.90"),
	}
}

func newService(books *mockBookClient, repo *mockOrderRepo, pub *mockPublisher) *Service {
	return NewService(books, repo, pub, zap.NewNop())
}

// --- Tests ---

func TestSubmitOrder_BookExistsAccepted(t *testing.T) {
	repo := &mockOrderRepo{}
	pub := &mockPublisher{}
	svc := newService(&mockBookClient{book: newTestBook()}, repo, pub)

	o, err := svc.SubmitOrder(context.Background(), Request{ISBN: "1234567890", Quantity: 1})

	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, o.Status)
	assert.Equal(t, "1234567890", o.BookISBN)
	assert.Equal(t, 1, o.Quantity)
	require.NotNil(t, o.BookName)
	assert.Equal(t, "Title - Author", *o.BookName)
	require.NotNil(t, o.BookPrice)
	assert.True(t, decimal.RequireFromString("9.90").Equal(*o.BookPrice))
	assert.NotZero(t, o.ID)

	require.Len(t, pub.messages, 1)
	assert.Equal(t, AcceptedMessage{OrderID: o.ID}, pub.messages[0])
}

func TestSubmitOrder_BookMissingRejected(t *testing.T) {
	repo := &mockOrderRepo{}
	pub := &mockPublisher{}
	svc := newService(&mockBookClient{}, repo, pub)

	o, err := svc.SubmitOrder(context.Background(), Request{ISBN: "1234567894", Quantity: 3})

	require.NoError(t, err)
	assert.Equal(t, StatusRejected, o.Status)
	assert.Equal(t, "1234567894", o.BookISBN)
	assert.Equal(t, 3, o.Quantity)
	assert.Nil(t, o.BookName)
	assert.Nil(t, o.BookPrice)
	assert.NotZero(t, o.ID)

	assert.Empty(t, pub.messages, "rejected orders must not publish")
}

func TestSubmitOrder_InvalidRequestSkipsLookup(t *testing.T) {
	books := &mockBookClient{book: newTestBook()}
	repo := &mockOrderRepo{}
	svc := newService(books, repo, &mockPublisher{})

	_, err := svc.SubmitOrder(context.Background(), Request{ISBN: "", Quantity: 1})
	require.ErrorIs(t, err, ErrEmptyISBN)

	_, err = svc.SubmitOrder(context.Background(), Request{ISBN: "1234567890", Quantity: 0})
	require.ErrorIs(t, err, ErrInvalidQuantity)

	assert.Zero(t, books.calls, "validation failures must not reach the catalog")
	assert.Empty(t, repo.inserted)
}

func TestSubmitOrder_LookupTransportError(t *testing.T) {
	repo := &mockOrderRepo{}
	pub := &mockPublisher{}
	svc := newService(&mockBookClient{err: errors.New("connection refused")}, repo, pub)

	_, err := svc.SubmitOrder(context.Background(), Request{ISBN: "1234567890", Quantity: 1})

	var lookupErr *LookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, "1234567890", lookupErr.ISBN)
	assert.Empty(t, repo.inserted, "lookup faults must not persist anything")
	assert.Empty(t, pub.messages)
}

func TestSubmitOrder_InsertErrorNoPublish(t *testing.T) {
	pub := &mockPublisher{}
	svc := newService(
		&mockBookClient{book: newTestBook()},
		&mockOrderRepo{err: errors.New("db write failed")},
		pub,
	)

	_, err := svc.SubmitOrder(context.Background(), Request{ISBN: "1234567890", Quantity: 1})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert order")
	assert.Empty(t, pub.messages, "no event may be published for an order that failed to persist")
}

func TestSubmitOrder_PublishErrorDoesNotFailCaller(t *testing.T) {
	repo := &mockOrderRepo{}
	svc := newService(
		&mockBookClient{book: newTestBook()},
		repo,
		&mockPublisher{err: errors.New("broker gone")},
	)

	o, err := svc.SubmitOrder(context.Background(), Request{ISBN: "1234567890", Quantity: 1})

	require.NoError(t, err, "the persisted order is the source of truth")
	assert.Equal(t, StatusAccepted, o.Status)
	require.Len(t, repo.inserted, 1)
}

func TestSubmitOrder_NoDeduplication(t *testing.T) {
	repo := &mockOrderRepo{}
	svc := newService(&mockBookClient{book: newTestBook()}, repo, &mockPublisher{})

	first, err := svc.SubmitOrder(context.Background(), Request{ISBN: "1234567890", Quantity: 1})
	require.NoError(t, err)
	second, err := svc.SubmitOrder(context.Background(), Request{ISBN: "1234567890", Quantity: 1})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID, "identical requests produce distinct orders")
	assert.Len(t, repo.inserted, 2)
}

func TestListOrders(t *testing.T) {
	name := "Title - Author"
	repo := &mockOrderRepo{all: []Order{
		{ID: 1, BookISBN: "1234567890", BookName: &name, Status: StatusAccepted, Quantity: 1},
		{ID: 2, BookISBN: "1234567894", Status: StatusRejected, Quantity: 3},
	}}
	svc := newService(&mockBookClient{}, repo, &mockPublisher{})

	orders, err := svc.ListOrders(context.Background())

	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "1234567890", orders[0].BookISBN)
	assert.Equal(t, "1234567894", orders[1].BookISBN)
}

func TestListOrders_Error(t *testing.T) {
	repo := &mockOrderRepo{findErr: errors.New("db down")}
	svc := newService(&mockBookClient{}, repo, &mockPublisher{})

	_, err := svc.ListOrders(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "list orders")
}
