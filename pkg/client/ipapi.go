package client

import (
	"context"
	"fmt"

	"idleview/internal/models"

	"go.uber.org/zap"
)

// IPAPIClient geolocates the installation from its public IP via ip-api.com.
type IPAPIClient struct {
	*BaseClient
	baseURL string
}

type ipAPIResponse struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	City    string  `json:"city"`
	Country string  `json:"country"`
}

func NewIPAPIClient(baseURL string, config ClientConfig, logger *zap.Logger) *IPAPIClient {
	return &IPAPIClient{
		BaseClient: NewBaseClient("ipapi", config, logger),
		baseURL:    baseURL,
	}
}

func (c *IPAPIClient) Locate(ctx context.Context) (*models.Location, error) {
	var response ipAPIResponse
	if err := c.GetJSON(ctx, c.baseURL+"/json/", nil, &response); err != nil {
		return nil, fmt.Errorf("fetching location: %w", err)
	}

	return &models.Location{
		Latitude:  response.Lat,
		Longitude: response.Lon,
		City:      response.City,
		Country:   response.Country,
	}, nil
}
