package wallhaven

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dixieflatline76/wallsearch/pkg/provider"
	"github.com/dixieflatline76/wallsearch/util/log"
)

// Client implements provider.Catalog for Wallhaven.
type Client struct {
	httpClient *http.Client
	endpoint   string
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the search endpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a new Wallhaven client. A nil httpClient uses http.DefaultClient.
func NewClient(httpClient *http.Client, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := &Client{
		httpClient: httpClient,
		endpoint:   WallhavenAPISearchURL,
		timeout:    DefaultSearchTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the catalog name.
func (c *Client) Name() string {
	return serviceName
}

// SearchURL builds the single-page, relevance sorted search URL for q.
func (c *Client) SearchURL(q provider.SearchQuery) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid API URL: %w", err)
	}

	params := u.Query()
	params.Set(paramQuery, q.Text)
	params.Set(paramSorting, sortingRelevance)
	params.Set(paramOrder, orderDesc)
	params.Set(paramPage, firstPage)
	if !q.MinResolution.IsZero() {
		params.Set(paramAtLeast, q.MinResolution.String())
	}
	u.RawQuery = params.Encode()
	return u.String(), nil
}

// Search issues one search request and returns at most q.Limit results in
// catalog order.
func (c *Client) Search(ctx context.Context, q provider.SearchQuery) ([]provider.Wallpaper, error) {
	apiURL, err := c.SearchURL(q)
	if err != nil {
		return nil, err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	log.Debugf("Wallhaven search: %s", apiURL)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &provider.NetworkError{URL: apiURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &provider.NetworkError{
			URL:        apiURL,
			StatusCode: resp.StatusCode,
			Err:        errors.New(http.StatusText(resp.StatusCode)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &provider.NetworkError{URL: apiURL, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	images, err := parseSearchResponse(body)
	if err != nil {
		return nil, err
	}

	if q.Limit > 0 && len(images) > q.Limit {
		images = images[:q.Limit]
	}
	return images, nil
}

// parseSearchResponse decodes a search response body into wallpapers.
func parseSearchResponse(body []byte) ([]provider.Wallpaper, error) {
	var response imgSrvcResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, &provider.ParseError{Err: fmt.Errorf("failed to parse JSON: %w", err)}
	}
	if response.Data == nil {
		return nil, &provider.ParseError{Err: errors.New("response has no data array")}
	}

	var items []ImgSrvcImage
	if err := json.Unmarshal(*response.Data, &items); err != nil {
		return nil, &provider.ParseError{Err: fmt.Errorf("data is not a wallpaper array: %w", err)}
	}

	images := make([]provider.Wallpaper, 0, len(items))
	for _, item := range items {
		images = append(images, item.toWallpaper())
	}
	return images, nil
}

// --- Wallhaven JSON Structs ---

// imgSrvcResponse is the response from the Wallhaven API
type imgSrvcResponse struct {
	Data *json.RawMessage `json:"data"`
	Meta struct {
		CurrentPage int `json:"current_page"`
		LastPage    int `json:"last_page"`
		Total       int `json:"total"`
	} `json:"meta"`
}

// ImgSrvcImage represents an image from the image service.
type ImgSrvcImage struct {
	ID         string   `json:"id"`
	Path       string   `json:"path"`
	ShortURL   string   `json:"short_url"`
	FileType   string   `json:"file_type"`
	Resolution string   `json:"resolution"`
	DimensionX int      `json:"dimension_x"`
	DimensionY int      `json:"dimension_y"`
	Colors     []string `json:"colors"`
	Thumbs     Thumbs   `json:"thumbs"`
}

// Thumbs represents the different sizes of the image.
type Thumbs struct {
	Large    string `json:"large"`
	Original string `json:"original"`
	Small    string `json:"small"`
}

func (img ImgSrvcImage) toWallpaper() provider.Wallpaper {
	res, err := provider.ParseResolution(img.Resolution)
	if err != nil {
		res = provider.Resolution{Width: img.DimensionX, Height: img.DimensionY}
	}
	return provider.Wallpaper{
		ID:         img.ID,
		Path:       img.Path,
		ThumbURL:   img.Thumbs.Original,
		Resolution: res,
		Colors:     img.Colors,
	}
}
