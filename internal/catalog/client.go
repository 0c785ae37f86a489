package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/tahmidrayat/clickbazaar-backend/pkg/errors"
	"github.com/tahmidrayat/clickbazaar-backend/pkg/logger"
)

// Cache is the read-through cache surface used for product lookups.
type Cache interface {
	Get(context.Context, string) (string, error)
	Set(context.Context, string, any, time.Duration) error
	CatalogKey(id string) string
}

// Loader is the narrow surface consumers depend on.
type Loader interface {
	GetProduct(ctx context.Context, id string) (*Product, error)
}

// Client fetches products from the external Product Catalog Service.
type Client struct {
	baseURL  string
	http     *http.Client
	cache    Cache
	cacheTTL time.Duration
	logg     *logger.Logger
}

// NewClient builds a catalog client. The cache is optional.
func NewClient(baseURL string, timeout time.Duration, cache Cache, cacheTTL time.Duration, logg *logger.Logger) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("catalog base url is required")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: timeout},
		cache:    cache,
		cacheTTL: cacheTTL,
		logg:     logg,
	}, nil
}

// GetProduct returns the product by id, consulting the cache first.
func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	if product := c.fromCache(ctx, id); product != nil {
		return product, nil
	}

	endpoint := fmt.Sprintf("%s/products/%s", c.baseURL, url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build catalog request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch product")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	case resp.StatusCode >= 400:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, pkgerrors.New(pkgerrors.CodeDependency,
			fmt.Sprintf("catalog responded %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var product Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode product")
	}

	c.toCache(ctx, id, &product)
	return &product, nil
}

func (c *Client) fromCache(ctx context.Context, id string) *Product {
	if c.cache == nil {
		return nil
	}
	raw, err := c.cache.Get(ctx, c.cache.CatalogKey(id))
	if err != nil || raw == "" {
		return nil
	}
	var product Product
	if err := json.Unmarshal([]byte(raw), &product); err != nil {
		if c.logg != nil {
			c.logg.Warn(c.logg.WithProductID(ctx, id), "catalog cache entry corrupt, refetching")
		}
		return nil
	}
	return &product
}

func (c *Client) toCache(ctx context.Context, id string, product *Product) {
	if c.cache == nil {
		return
	}
	raw, err := json.Marshal(product)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, c.cache.CatalogKey(id), string(raw), c.cacheTTL); err != nil && c.logg != nil {
		c.logg.Warn(c.logg.WithProductID(ctx, id), "failed to cache product")
	}
}
