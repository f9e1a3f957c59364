// Package brandconfig fetches a widget's configuration overlay from the
// configuration service and resolves it against the defaults.
package brandconfig

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"echo-widget/internal/model"
)

const maxBodyBytes = 1 << 20

var (
	// ErrFetch covers network failures, unexpected statuses and non-JSON
	// content types.
	ErrFetch = errors.New("brandconfig: fetch failed")
	// ErrParse covers a JSON response body that does not decode.
	ErrParse = errors.New("brandconfig: malformed response")
)

// Fetcher retrieves configuration overlays over HTTP.
type Fetcher struct {
	client  *http.Client
	baseURL string
}

// NewFetcher creates a Fetcher for the service rooted at baseURL. Overlays
// are requested from <baseURL>/<recordID>.
func NewFetcher(client *http.Client, baseURL string) *Fetcher {
	if client == nil {
		client = &http.Client{}
	}
	return &Fetcher{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// notFoundBody is what the service answers with when it has no entry for a
// record id: a default payload to use instead.
type notFoundBody struct {
	Default model.Options `json:"default"`
}

// Fetch returns the overlay for recordID. A 404 carrying {"default": {...}}
// yields that default payload. Every other failure returns an error wrapping
// ErrFetch or ErrParse. There are no retries.
func (f *Fetcher) Fetch(ctx context.Context, recordID string) (model.Options, error) {
	endpoint := f.baseURL + "/" + url.PathEscape(recordID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: could not create request: %v", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return nil, fmt.Errorf("%w: status %d", ErrFetch, resp.StatusCode)
	}
	if !isJSON(resp.Header.Get("Content-Type")) {
		return nil, fmt.Errorf("%w: status %d with content type %q", ErrFetch, resp.StatusCode, resp.Header.Get("Content-Type"))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: could not read body: %v", ErrFetch, err)
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("%w: response body exceeds %d bytes", ErrFetch, maxBodyBytes)
	}

	if resp.StatusCode == http.StatusNotFound {
		var nf notFoundBody
		if err := json.Unmarshal(body, &nf); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		if nf.Default == nil {
			return nil, fmt.Errorf("%w: status 404 without a default payload", ErrFetch)
		}
		return nf.Default, nil
	}

	var overlay model.Options
	if err := json.Unmarshal(body, &overlay); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return overlay, nil
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
