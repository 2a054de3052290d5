// Package catalog implements §4.D and the egress half of §6: resolving
// station/direction names to canonical ids via the external backend
// catalog, and submitting confirmed sightings to it. Grounded on the
// teacher's internal/rpc.Client (typed request/response structs over a
// context-aware *http.Client, errors wrapped with %w) generalized from a
// single-network JSON-RPC client to a small REST client with the handful
// of verbs §6 actually names.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/freifahren/sichtungskern/internal/errs"
)

// Report is the body of POST /basics/inspectors (§6 egress).
type Report struct {
	Timestamp   time.Time `json:"timestamp"`
	Line        *string   `json:"line"`
	StationID   *string   `json:"stationId"`
	DirectionID *string   `json:"directionId"`
	Author      int64     `json:"author"`
	Message     *string   `json:"message"`
}

// Client is the catalog boundary used by the risk pipeline.
type Client interface {
	// ResolveName looks up the canonical station id for a free-text name
	// via GET /v0/stations/search?name=<name>.
	ResolveName(ctx context.Context, name string) errs.ResolveResult
	// SubmitReport delivers a confirmed sighting via POST /basics/inspectors.
	SubmitReport(ctx context.Context, report Report) error
}

// HTTPClient is the default Client, talking to the backend catalog over
// plain JSON/HTTP exactly as §6 describes it.
type HTTPClient struct {
	baseURL    string
	password   string
	httpClient *http.Client
}

// NewHTTPClient builds a client bound to a backend base URL and the
// X-Password egress credential (§6, §7 "Auth failure").
func NewHTTPClient(baseURL, password string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:  baseURL,
		password: password,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type stationSearchResult struct {
	Name        string   `json:"name"`
	Coordinates struct{} `json:"coordinates"`
	Lines       []string `json:"lines"`
}

func (c *HTTPClient) ResolveName(ctx context.Context, name string) errs.ResolveResult {
	endpoint := fmt.Sprintf("%s/v0/stations/search?name=%s", c.baseURL, url.QueryEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errs.FailedTransport(fmt.Errorf("catalog: building search request: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.FailedTransport(fmt.Errorf("catalog: search request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errs.NoneFound()
	}
	if resp.StatusCode != http.StatusOK {
		return errs.FailedTransport(fmt.Errorf("catalog: search returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errs.FailedTransport(fmt.Errorf("catalog: reading search response: %w", err))
	}

	var byID map[string]stationSearchResult
	if err := json.Unmarshal(body, &byID); err != nil {
		return errs.FailedTransport(fmt.Errorf("catalog: parsing search response: %w", err))
	}

	for id := range byID {
		return errs.ResolvedID(id)
	}
	return errs.NoneFound()
}

func (c *HTTPClient) SubmitReport(ctx context.Context, report Report) error {
	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("catalog: marshaling report: %w", err)
	}

	endpoint := c.baseURL + "/basics/inspectors"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("catalog: building submit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Password", c.password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("catalog: submit request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog: submit returned status %d", resp.StatusCode)
	}
	return nil
}
