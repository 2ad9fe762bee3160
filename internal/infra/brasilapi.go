package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// PlacaInfo is what the public vehicle registry returns for a plate.
type PlacaInfo struct {
	Marca  string `json:"marca"`
	Modelo string `json:"modelo"`
	Ano    string `json:"ano"`
	Cor    string `json:"cor"`
}

// PlacaClient queries the external vehicle registry (BrasilAPI-compatible) to
// prefill vehicle data on check-in. The registry is strictly best-effort: a
// miss or an outage never blocks an entry, the operator types the data in.
type PlacaClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewPlacaClient(baseURL string, timeout time.Duration) *PlacaClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PlacaClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Consultar fetches vehicle data for a normalized plate.
// A 404 means the plate is simply unknown: (nil, nil), not an error — only
// transport failures and 5xx count against the circuit breaker.
func (c *PlacaClient) Consultar(ctx context.Context, placa string) (*PlacaInfo, error) {
	url := fmt.Sprintf("%s/api/placas/v1/%s", c.baseURL, placa)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("placa: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("placa: registry unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("placa: registry returned %d", resp.StatusCode)
	}

	var info PlacaInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("placa: decode response: %w", err)
	}
	return &info, nil
}
