package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"idleview/internal/models"

	"go.uber.org/zap"
)

// UnsplashClient fetches random landscape photos matching a search query.
type UnsplashClient struct {
	*BaseClient
	baseURL   string
	accessKey string
}

type unsplashResponse struct {
	URLs struct {
		Regular string `json:"regular"`
	} `json:"urls"`
	User struct {
		Name  string `json:"name"`
		Links struct {
			HTML string `json:"html"`
		} `json:"links"`
	} `json:"user"`
	Links struct {
		DownloadLocation string `json:"download_location"`
	} `json:"links"`
}

func NewUnsplashClient(baseURL, accessKey string, config ClientConfig, logger *zap.Logger) *UnsplashClient {
	return &UnsplashClient{
		BaseClient: NewBaseClient("unsplash", config, logger),
		baseURL:    baseURL,
		accessKey:  accessKey,
	}
}

func (c *UnsplashClient) authHeader() map[string]string {
	return map[string]string{"Authorization": "Client-ID " + c.accessKey}
}

// RandomPhoto fetches a random photo for the query and rewrites its URL
// with the requested dimensions, the configured quality, and a
// cache-busting timestamp so the display never sees a stale CDN copy.
func (c *UnsplashClient) RandomPhoto(ctx context.Context, width, height int, query, quality string) (*models.UnsplashPhoto, error) {
	requestURL := fmt.Sprintf("%s/photos/random?orientation=landscape&query=%s&w=%d&h=%d",
		c.baseURL, url.QueryEscape(query), width, height)

	var response unsplashResponse
	if err := c.GetJSON(ctx, requestURL, c.authHeader(), &response); err != nil {
		return nil, fmt.Errorf("fetching photo: %w", err)
	}

	photoURL, err := rewritePhotoURL(response.URLs.Regular, width, height, resolveQuality(quality))
	if err != nil {
		return nil, fmt.Errorf("rewriting photo URL: %w", err)
	}

	return &models.UnsplashPhoto{
		URL:              photoURL,
		Author:           response.User.Name,
		AuthorURL:        response.User.Links.HTML,
		DownloadLocation: response.Links.DownloadLocation,
	}, nil
}

// TriggerDownload pings the photo's download endpoint, which the Unsplash
// API terms require when a photo is actually put on screen.
func (c *UnsplashClient) TriggerDownload(ctx context.Context, downloadURL string) error {
	if _, err := c.Get(ctx, downloadURL, c.authHeader()); err != nil {
		return fmt.Errorf("triggering download: %w", err)
	}
	return nil
}

// resolveQuality maps a photo_quality setting to a 0-100 compression value.
// Legacy labels are kept for documents written by older versions; anything
// unrecognized falls back to 80.
func resolveQuality(quality string) int {
	switch quality {
	case "low":
		return 65
	case "medium":
		return 80
	case "high", "maximum":
		return 100
	}
	if n, err := strconv.Atoi(quality); err == nil {
		return n
	}
	return 80
}

func rewritePhotoURL(raw string, width, height, quality int) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	params := u.Query()
	params.Set("w", strconv.Itoa(width))
	params.Set("h", strconv.Itoa(height))
	params.Set("fit", "crop")
	params.Set("q", strconv.Itoa(quality))
	params.Set("t", strconv.FormatInt(time.Now().UnixMilli(), 10))
	u.RawQuery = params.Encode()

	return u.String(), nil
}
