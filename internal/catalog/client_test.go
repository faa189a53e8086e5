package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindByISBN_BookExists(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"isbn": "1234567890",
			"title": "Title",
			"author": "Author",
			"price": 9.90,
			"publisher": "Acme Books"
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	b, err := c.FindByISBN(context.Background(), "1234567890")

	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, "/books/1234567890", gotPath)
	assert.Equal(t, "1234567890", b.ISBN)
	assert.Equal(t, "Title", b.Title)
	assert.Equal(t, "Author", b.Author)
	assert.True(t, decimal.RequireFromString("9.90").Equal(b.Price))
}

func TestFindByISBN_NotFoundIsEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	b, err := c.FindByISBN(context.Background(), "1234567894")

	require.NoError(t, err, "not-found must not be an error")
	assert.Nil(t, b)
}

func TestFindByISBN_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.FindByISBN(context.Background(), "1234567890")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestFindByISBN_MalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"isbn": `))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.FindByISBN(context.Background(), "1234567890")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode catalog response")
}

func TestFindByISBN_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.FindByISBN(context.Background(), "1234567890")

	require.Error(t, err)
}

func TestFindByISBN_EscapesISBN(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.FindByISBN(context.Background(), "a/b c")

	require.NoError(t, err)
	assert.Equal(t, "/books/a%2Fb%20c", gotPath)
}
