// Package mevlogapi is the HTTP client for the mevlog backend REST endpoints.
package mevlogapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/pawurb/mevlog-viewer/internal/domain"
	"github.com/pawurb/mevlog-viewer/internal/domain/config"
	"github.com/pawurb/mevlog-viewer/internal/domain/models"
	"github.com/pawurb/mevlog-viewer/internal/usecase"
)

const (
	chainsPath    = "/api/chains"
	chainInfoPath = "/api/chain-info"
	explorePath   = "/api/explore"

	// maxBodySize caps responses; a full block is well below this
	maxBodySize = 32 << 20
)

// Client talks to the mevlog backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a client for cfg.BaseURL
func NewClient(cfg *config.RuntimeConfig, log *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With("component", "mevlogapi"),
	}
}

// ListChains queries the chain registry. The endpoint takes a single
// chain_id, so a multi id query is one request per id.
func (c *Client) ListChains(ctx context.Context, q models.ChainQuery) ([]models.ChainEntry, error) {
	if len(q.ChainIDs) > 1 {
		var all []models.ChainEntry
		for _, id := range q.ChainIDs {
			chains, err := c.ListChains(ctx, models.ChainQuery{ChainIDs: []uint64{id}})
			if err != nil {
				return nil, err
			}
			all = append(all, chains...)
		}
		return lo.UniqBy(all, func(e models.ChainEntry) uint64 { return e.ChainID }), nil
	}

	query := url.Values{}
	if filter := strings.TrimSpace(q.Filter); filter != "" {
		query.Set("filter", filter)
	}
	if len(q.ChainIDs) == 1 {
		query.Set("chain_id", strconv.FormatUint(q.ChainIDs[0], 10))
	}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}

	status, body, err := c.get(ctx, chainsPath, query)
	if err != nil {
		return nil, err
	}
	if !success(status) {
		return nil, apiError(status, body)
	}

	var chains []models.ChainEntry
	if err := json.Unmarshal(body, &chains); err != nil {
		return nil, fmt.Errorf("failed to decode chains: %w", err)
	}
	return chains, nil
}

// ChainInfo loads chain metadata. The endpoint reports failures as a bare
// JSON string.
func (c *Client) ChainInfo(ctx context.Context, target models.ChainTarget) (*models.ChainInfo, error) {
	status, body, err := c.get(ctx, chainInfoPath, targetQuery(target))
	if err != nil {
		return nil, err
	}
	if !success(status) {
		return nil, apiError(status, body)
	}

	var info models.ChainInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to decode chain info: %w", err)
	}
	return &info, nil
}

// ExploreBlock loads every transaction of one block. Backend error payloads
// are returned as error batches; only transport failures return an error.
func (c *Client) ExploreBlock(ctx context.Context, target models.ChainTarget, block *uint64) (models.Batch, error) {
	query := targetQuery(target)
	if block != nil {
		query.Set("block_number", strconv.FormatUint(*block, 10))
	}

	status, body, err := c.get(ctx, explorePath, query)
	if err != nil {
		return models.Batch{}, err
	}

	batch, err := models.ParseBatch(body)
	if !success(status) {
		if err == nil && batch.IsError() {
			return batch, nil
		}
		return models.ErrorBatch("HTTP %d: %s", status, http.StatusText(status)), nil
	}
	if err != nil {
		return models.Batch{}, fmt.Errorf("failed to decode explore response: %w", err)
	}
	return batch, nil
}

// success reports a 2xx status
func success(status int) bool {
	return status/100 == 2
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (int, []byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.log.Debug("GET", "url", endpoint)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	c.log.Debug("response", "url", endpoint, "status", resp.StatusCode, "bytes", len(body), "took", time.Since(start))
	return resp.StatusCode, body, nil
}

// targetQuery addresses a chain by RPC URL when one is set, by id otherwise
func targetQuery(target models.ChainTarget) url.Values {
	query := url.Values{}
	if target.RPCURL != "" {
		query.Set("rpc_url", target.RPCURL)
		return query
	}
	chainID := target.ChainID
	if chainID == 0 {
		chainID = models.DefaultChainID
	}
	query.Set("chain_id", strconv.FormatUint(chainID, 10))
	return query
}

// apiError extracts the backend message from either a bare JSON string or an
// {"error": "..."} object
func apiError(status int, body []byte) *domain.APIError {
	apiErr := &domain.APIError{Status: status}

	var message string
	if err := json.Unmarshal(body, &message); err == nil {
		apiErr.Message = message
		return apiErr
	}

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Message = payload.Error
	}
	return apiErr
}

var (
	_ usecase.ChainRegistry    = (*Client)(nil)
	_ usecase.ChainInfoFetcher = (*Client)(nil)
	_ usecase.BlockExplorer    = (*Client)(nil)
)
