// Package pubmed queries the NCBI E-utilities for an author's publications
// and extracts best-effort affiliation-country signals. The lookup never
// fails past its boundary: transport and schema problems degrade to an
// empty evidence result carrying the error text.
package pubmed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"geomed/internal/prediction/models"
	"geomed/pkg/platform/circuit"
)

// maxArticles caps how many matches are fetched, bounding latency and
// payload size per lookup.
const maxArticles = 5

// probeInterval is how many lookups are skipped between recovery probes
// while the circuit is open.
const probeInterval = 10

// Client talks to the E-utilities esearch/efetch endpoints.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
	breaker *circuit.Breaker
	skipped atomic.Uint64
}

func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
		breaker: circuit.New("pubmed"),
	}
}

// Lookup searches for works authored by name constrained by topic. Zero
// matches is a normal outcome, not an error; any failure is reported inside
// the result rather than raised. Repeated failures open a circuit breaker;
// while open, most lookups skip the network round trip and only periodic
// probes go through to detect recovery.
func (c *Client) Lookup(ctx context.Context, name, topic string) models.EvidenceResult {
	if c.breaker.IsOpen() && c.skipped.Add(1)%probeInterval != 0 {
		c.logger.WarnContext(ctx, "pubmed lookup skipped, circuit open", "author", name)
		return models.EvidenceResult{Err: "pubmed temporarily unavailable"}
	}

	ids, err := c.search(ctx, name, topic)
	if err != nil {
		c.recordFailure(ctx)
		c.logger.WarnContext(ctx, "pubmed search failed", "author", name, "error", err)
		return models.EvidenceResult{Err: err.Error()}
	}
	if len(ids) == 0 {
		c.recordSuccess(ctx)
		return models.EvidenceResult{}
	}

	body, err := c.fetch(ctx, ids)
	if err != nil {
		c.recordFailure(ctx)
		c.logger.WarnContext(ctx, "pubmed fetch failed", "author", name, "error", err)
		return models.EvidenceResult{Err: err.Error()}
	}

	c.recordSuccess(ctx)
	return models.EvidenceResult{
		Found:              true,
		PublicationCount:   len(ids),
		AffiliationSignals: extractCountrySignals(body),
	}
}

func (c *Client) recordFailure(ctx context.Context) {
	if _, change := c.breaker.RecordFailure(); change.Opened {
		c.logger.WarnContext(ctx, "pubmed circuit opened")
	}
}

func (c *Client) recordSuccess(ctx context.Context) {
	if _, change := c.breaker.RecordSuccess(); change.Closed {
		c.logger.InfoContext(ctx, "pubmed circuit closed")
	}
}

type esearchResponse struct {
	ESearchResult struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

func (c *Client) search(ctx context.Context, name, topic string) ([]string, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("term", fmt.Sprintf("%s[Author] AND %s", name, topic))
	params.Set("retmode", "json")
	params.Set("retmax", fmt.Sprint(maxArticles))

	body, err := c.get(ctx, "/esearch.fcgi", params)
	if err != nil {
		return nil, err
	}

	var resp esearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal esearch response: %w", err)
	}

	ids := resp.ESearchResult.IDList
	if len(ids) > maxArticles {
		ids = ids[:maxArticles]
	}
	return ids, nil
}

func (c *Client) fetch(ctx context.Context, ids []string) (string, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("id", strings.Join(ids, ","))
	params.Set("retmode", "xml")

	body, err := c.get(ctx, "/efetch.fcgi", params)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("eutils error (status %d): %s", res.StatusCode, string(body))
	}
	return body, nil
}
