package netbox

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"

	"netboxbot/clients"
	"netboxbot/core"
	"netboxbot/core/log"
	"netboxbot/models"
)

const statusEndpoint = "status"

// NetBoxClient implements the clients.NetBoxClient interface
type NetBoxClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

var _ clients.NetBoxClient = (*NetBoxClient)(nil)

// NewNetBoxClient creates a client that only trusts the CA bundle at caCertPath.
// It fails when the bundle is missing or unreadable; there is no fallback to
// the system pool or to unverified TLS.
func NewNetBoxClient(baseURL, token, caCertPath string) (*NetBoxClient, error) {
	tlsConfig, err := loadTLSConfig(caCertPath)
	if err != nil {
		log.Error("❌ Failed to load NetBox CA certificate", "path", caCertPath, "error", err)
		return nil, err
	}

	httpClient := &http.Client{
		Transport: &http.Transport{
			Proxy:             http.ProxyFromEnvironment,
			TLSClientConfig:   tlsConfig,
			DisableKeepAlives: true,
		},
	}

	return &NetBoxClient{
		baseURL:    normalizeBaseURL(baseURL),
		token:      token,
		httpClient: httpClient,
	}, nil
}

func loadTLSConfig(caCertPath string) (*tls.Config, error) {
	pemData, err := os.ReadFile(caCertPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", core.ErrCACertNotFound, caCertPath)
		}
		return nil, fmt.Errorf("failed to read CA certificate %s: %w", caCertPath, err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pemData) {
		return nil, fmt.Errorf("%w: %s", core.ErrInvalidCACert, caCertPath)
	}

	return &tls.Config{
		RootCAs:    pool,
		MinVersion: tls.VersionTLS12,
	}, nil
}

func normalizeBaseURL(baseURL string) string {
	baseURL = strings.TrimSpace(baseURL)
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return baseURL
}

// Search queries endpoint with NetBox's free-text "q" filter and returns the
// records of the "results" list. An empty query lists the endpoint unfiltered.
// A 2xx response that is not an object with a "results" list is logged and
// returned as an empty result; transport and status failures are errors.
func (c *NetBoxClient) Search(ctx context.Context, endpoint, query string) ([]*models.Record, error) {
	body, err := c.fetch(ctx, endpoint, query)
	if err != nil {
		if lookupErr, ok := core.IsLookupError(err); ok && lookupErr.IsMalformedResponse() {
			return []*models.Record{}, nil
		}
		return nil, err
	}

	records, err := decodeResults(endpoint, body)
	if err != nil {
		log.Error("❌ Unexpected response from NetBox API, treating as empty", "endpoint", endpoint, "error", err)
		return []*models.Record{}, nil
	}

	log.Debug("📦 NetBox API returned records", "endpoint", endpoint, "count", len(records))
	return records, nil
}

// CheckConnection calls the lightweight status endpoint through the same
// request path as Search. Any JSON object in a 2xx response counts as success.
func (c *NetBoxClient) CheckConnection(ctx context.Context) error {
	if _, err := c.fetch(ctx, statusEndpoint, ""); err != nil {
		return err
	}
	log.Info("✅ Connected to NetBox API", "url", c.baseURL)
	return nil
}

func (c *NetBoxClient) buildURL(endpoint, query string) string {
	u := c.baseURL + strings.Trim(endpoint, "/") + "/"
	if query != "" {
		u += "?" + url.Values{"q": []string{query}}.Encode()
	}
	return u
}

// fetch performs the GET request and returns the top-level JSON object
func (c *NetBoxClient) fetch(ctx context.Context, endpoint, query string) (map[string]json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(endpoint, query), nil)
	if err != nil {
		return nil, c.fail(&core.LookupError{Kind: core.LookupErrorTransport, Endpoint: endpoint, Err: err})
	}

	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.fail(&core.LookupError{Kind: core.LookupErrorTransport, Endpoint: endpoint, Err: err})
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(&core.LookupError{Kind: core.LookupErrorTransport, Endpoint: endpoint, Err: err})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.fail(&core.LookupError{
			Kind:       core.LookupErrorStatus,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("response body: %s", truncate(string(body), 200)),
		})
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, c.fail(&core.LookupError{Kind: core.LookupErrorEmptyBody, Endpoint: endpoint})
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, c.fail(&core.LookupError{Kind: core.LookupErrorDecode, Endpoint: endpoint, Err: err})
	}
	if payload == nil {
		return nil, c.fail(&core.LookupError{
			Kind:     core.LookupErrorDecode,
			Endpoint: endpoint,
			Err:      fmt.Errorf("response is not a JSON object"),
		})
	}

	return payload, nil
}

func (c *NetBoxClient) fail(err *core.LookupError) error {
	log.Error("❌ NetBox API request failed", "endpoint", err.Endpoint, "kind", err.Kind, "error", err)
	return err
}

func decodeResults(endpoint string, payload map[string]json.RawMessage) ([]*models.Record, error) {
	raw, ok := payload["results"]
	if !ok {
		return nil, &core.LookupError{
			Kind:     core.LookupErrorShape,
			Endpoint: endpoint,
			Err:      fmt.Errorf("response has no \"results\" key"),
		}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &core.LookupError{
			Kind:     core.LookupErrorShape,
			Endpoint: endpoint,
			Err:      fmt.Errorf("\"results\" is not a list: %w", err),
		}
	}

	records := make([]*models.Record, 0, len(items))
	for i, item := range items {
		record, err := models.RecordFromJSON(item)
		if err != nil {
			return nil, &core.LookupError{
				Kind:     core.LookupErrorShape,
				Endpoint: endpoint,
				Err:      fmt.Errorf("result %d: %w", i, err),
			}
		}
		records = append(records, record)
	}
	return records, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
