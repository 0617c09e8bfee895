package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFeedServer(t *testing.T, contentType, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", contentType)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFeedLoader_BareList(t *testing.T) {
	server := newFeedServer(t, "application/json",
		`[{"id": 1, "nombre": "Anillo", "precio": "100"}, {"id": 2, "name": "Collar", "price": 200}]`)

	loader := NewFeedLoader(server.URL, nil)
	products, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "Anillo", products[0].Name)
	assert.Equal(t, 100.0, products[0].Price)
	assert.Equal(t, "Collar", products[1].Name)
	assert.Equal(t, 200.0, products[1].Price)
}

func TestFeedLoader_PaginatedEnvelope(t *testing.T) {
	server := newFeedServer(t, "application/json",
		`{"count": 1, "next": null, "results": [{"id": 9, "name": "Taza"}]}`)

	loader := NewFeedLoader(server.URL, nil)
	products, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Taza", products[0].Name)
	assert.Equal(t, "9", products[0].ID)
}

func TestFeedLoader_HTMLResponse(t *testing.T) {
	server := newFeedServer(t, "text/html",
		"\n  <!DOCTYPE html><html><body>Inicia sesión</body></html>")

	loader := NewFeedLoader(server.URL, nil)
	_, err := loader.Load(context.Background())
	assert.ErrorIs(t, err, ErrHTMLResponse)
}

func TestFeedLoader_EmptyList(t *testing.T) {
	server := newFeedServer(t, "application/json", `[]`)

	loader := NewFeedLoader(server.URL, nil)
	_, err := loader.Load(context.Background())
	assert.ErrorIs(t, err, ErrEmptyFeed)
}

func TestFeedLoader_EmptyEnvelope(t *testing.T) {
	server := newFeedServer(t, "application/json", `{"results": []}`)

	loader := NewFeedLoader(server.URL, nil)
	_, err := loader.Load(context.Background())
	assert.ErrorIs(t, err, ErrEmptyFeed)
}

func TestFeedLoader_UnexpectedShapeIsEmpty(t *testing.T) {
	// A JSON object without a results list is treated as zero records,
	// not as a parse failure.
	server := newFeedServer(t, "application/json", `{"detail": "ok"}`)

	loader := NewFeedLoader(server.URL, nil)
	_, err := loader.Load(context.Background())
	assert.ErrorIs(t, err, ErrEmptyFeed)
}

func TestFeedLoader_MalformedJSON(t *testing.T) {
	server := newFeedServer(t, "application/json", `[{"id": 1,`)

	loader := NewFeedLoader(server.URL, nil)
	_, err := loader.Load(context.Background())
	assert.ErrorIs(t, err, ErrFeedUnavailable)
	assert.NotErrorIs(t, err, ErrHTMLResponse)
}

func TestFeedLoader_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	endpoint := server.URL
	server.Close()

	loader := NewFeedLoader(endpoint, nil)
	_, err := loader.Load(context.Background())
	assert.ErrorIs(t, err, ErrFeedUnavailable)
}

func TestFeedLoader_NonObjectRecordsNormalizeToDefaults(t *testing.T) {
	server := newFeedServer(t, "application/json", `[42, {"name": "Taza"}]`)

	loader := NewFeedLoader(server.URL, nil)
	products, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Producto", products[0].Name)
	assert.Equal(t, "Taza", products[1].Name)
}
