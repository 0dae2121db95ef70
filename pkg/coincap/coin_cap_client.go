package coincap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const defaultBaseUrl = "https://api.coincap.io/v2"

type Client struct {
	HttpClient *http.Client
	BaseUrl    string
}

// Asset is one listing row from coincap. Numeric fields arrive as strings
// and are passed through as-is - parsing is the aggregation layer's job.
type Asset struct {
	Id                string `json:"id"`
	Rank              string `json:"rank"`
	Symbol            string `json:"symbol"`
	Name              string `json:"name"`
	MarketCapUsd      string `json:"marketCapUsd"`
	VolumeUsd24Hr     string `json:"volumeUsd24Hr"`
	PriceUsd          string `json:"priceUsd"`
	ChangePercent24Hr string `json:"changePercent24Hr"`
}

type assetsResponse struct {
	Data      []Asset `json:"data"`
	Timestamp int64   `json:"timestamp"`
}

func (c Client) GetAssets(ctx context.Context, limit int) ([]Asset, error) {
	baseUrl := c.BaseUrl
	if baseUrl == "" {
		baseUrl = defaultBaseUrl
	}
	url := fmt.Sprintf("%s/assets?limit=%d", baseUrl, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	response, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
	}

	if response.StatusCode != 200 {
		return nil, fmt.Errorf("failed to list assets: status code %d: %s", response.StatusCode, string(responseBytes))
	}

	responseJson := assetsResponse{}
	if err := json.Unmarshal(responseBytes, &responseJson); err != nil {
		return nil, fmt.Errorf("failed to parse assets response: %w", err)
	}

	return responseJson.Data, nil
}
