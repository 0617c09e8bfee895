package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"github.com/tiendamx/tienda-engine/internal/app/model"
	"github.com/tiendamx/tienda-engine/pkg/logger"
)

var (
	// ErrHTMLResponse means the upstream answered with an HTML page
	// instead of JSON, most likely a redirect to a login form.
	ErrHTMLResponse = errors.New("feed returned an HTML document")

	// ErrEmptyFeed means the request succeeded but carried zero
	// records. Distinct from a transport or parse failure.
	ErrEmptyFeed = errors.New("feed returned no records")

	// ErrFeedUnavailable covers transport failures and malformed JSON
	// not caught by the HTML check.
	ErrFeedUnavailable = errors.New("feed unavailable")
)

// FeedLoader fetches the upstream product feed and maps every record
// through Normalize. Every failure mode is classified into one of the
// sentinel errors above; Load never panics past the loader.
type FeedLoader struct {
	endpoint string
	client   *http.Client
}

// NewFeedLoader creates a loader for the given endpoint. A nil client
// gets a default with a cookie jar and no timeout: the fetch resolves
// or fails per the underlying network stack only.
func NewFeedLoader(endpoint string, client *http.Client) *FeedLoader {
	if client == nil {
		jar, _ := cookiejar.New(nil)
		client = &http.Client{Jar: jar}
	}
	return &FeedLoader{
		endpoint: endpoint,
		client:   client,
	}
}

// Load fetches and normalizes the feed.
//
// The body is read as text before parsing so an HTML error page can be
// told apart from malformed JSON; both would otherwise surface as the
// same generic decode error.
func (l *FeedLoader) Load(ctx context.Context) ([]model.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		logger.Error("Feed request failed", err, map[string]interface{}{
			"endpoint": l.endpoint,
		})
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("Failed to read feed response", err, map[string]interface{}{
			"endpoint": l.endpoint,
		})
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}

	logger.Debug("Feed response received", map[string]interface{}{
		"endpoint": l.endpoint,
		"status":   resp.StatusCode,
		"bytes":    len(body),
	})

	text := strings.TrimSpace(string(body))
	if strings.HasPrefix(text, "<") {
		logger.Warn("Feed returned HTML instead of JSON", map[string]interface{}{
			"endpoint": l.endpoint,
			"status":   resp.StatusCode,
		})
		return nil, ErrHTMLResponse
	}

	rows, err := decodeRecords(text)
	if err != nil {
		logger.Error("Failed to parse feed response", err, map[string]interface{}{
			"endpoint": l.endpoint,
		})
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFeed
	}

	products := make([]model.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, Normalize(row))
	}

	logger.Info("Feed loaded", map[string]interface{}{
		"endpoint": l.endpoint,
		"count":    len(products),
	})
	return products, nil
}

// decodeRecords accepts either a bare JSON list or a paginated
// {"results": [...]} envelope; any other shape decodes to an empty
// list. Elements that are not objects normalize to all-default
// products rather than aborting the load.
func decodeRecords(text string) ([]RawRecord, error) {
	var payload interface{}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, err
	}

	var items []interface{}
	switch data := payload.(type) {
	case []interface{}:
		items = data
	case map[string]interface{}:
		if results, ok := data["results"].([]interface{}); ok {
			items = results
		}
	}

	rows := make([]RawRecord, 0, len(items))
	for _, item := range items {
		record, _ := item.(map[string]interface{})
		rows = append(rows, RawRecord(record))
	}
	return rows, nil
}
