package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"coffeecheckin/internal/geo"

	"github.com/andybalholm/brotli"
	"go.uber.org/zap"
)

const (
	DefaultURL       = "https://overpass-api.de/api/interpreter"
	DefaultUserAgent = "CoffeeCheckIn/1.0"
	UnknownShopName  = "Unknown Coffee Shop"

	requestTimeout = 30 * time.Second
)

type Config struct {
	URL       string
	UserAgent string
}

type Client struct {
	client *http.Client
	config Config
	logger *zap.SugaredLogger
}

func NewClient(cfg Config, logger *zap.SugaredLogger) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &Client{
		client: &http.Client{
			Transport: &HeaderTransport{
				UserAgent: cfg.UserAgent,
				Base:      http.DefaultTransport,
			},
			Timeout: requestTimeout,
		},
		config: cfg,
		logger: logger,
	}
}

// NearbyCoffeeShops returns cafes within radius metres of (lat, lng), nearest
// first. Lookup is best-effort: any failure talking to the interpreter yields
// an empty list, never an error.
func (c *Client) NearbyCoffeeShops(ctx context.Context, lat, lng float64, radius int) []Shop {
	elements, err := c.fetch(ctx, buildQuery(lat, lng, radius))
	if err != nil {
		c.logger.Warnw("overpass lookup failed, returning no shops",
			"lat", lat, "lng", lng, "radius", radius, "error", err)
		return []Shop{}
	}

	return normalize(elements, lat, lng)
}

func buildQuery(lat, lng float64, radius int) string {
	around := fmt.Sprintf("(around:%d,%g,%g)", radius, lat, lng)

	var b strings.Builder
	b.WriteString("[out:json][timeout:25];\n(\n")
	for _, filter := range []string{`["amenity"="cafe"]`, `["cuisine"="coffee"]`, `["shop"="coffee"]`} {
		fmt.Fprintf(&b, "  node%s%s;\n", filter, around)
		fmt.Fprintf(&b, "  way%s%s;\n", filter, around)
	}
	b.WriteString(");\nout center;\n")
	return b.String()
}

func (c *Client) fetch(ctx context.Context, query string) ([]element, error) {
	form := url.Values{}
	form.Set("data", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.URL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.Header.Get("Content-Encoding") == "br" {
		resp.Body = &readCloserWrapper{Reader: brotli.NewReader(resp.Body), Closer: resp.Body}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var result response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode overpass response: %w", err)
	}

	return result.Elements, nil
}

// normalize dedupes elements by id (first occurrence wins), resolves a
// coordinate and display fields, and sorts by distance from the query point.
func normalize(elements []element, lat, lng float64) []Shop {
	shops := make([]Shop, 0, len(elements))
	seen := make(map[int64]struct{}, len(elements))

	for _, el := range elements {
		if _, ok := seen[el.ID]; ok {
			continue
		}
		seen[el.ID] = struct{}{}

		shopLat, shopLng, ok := el.coordinate()
		if !ok {
			continue
		}

		name := el.Tags["name"]
		if name == "" {
			name = UnknownShopName
		}

		shops = append(shops, Shop{
			ExternalID: el.ID,
			Name:       name,
			Latitude:   shopLat,
			Longitude:  shopLng,
			Address:    buildAddress(el.Tags),
			Distance:   geo.Haversine(lat, lng, shopLat, shopLng),
		})
	}

	sort.SliceStable(shops, func(i, j int) bool {
		return shops[i].Distance < shops[j].Distance
	})

	return shops
}

// coordinate prefers the element's own point and falls back to the centre of
// an area. Both axes at zero means no coordinate.
func (el element) coordinate() (float64, float64, bool) {
	var lat, lng float64
	if el.Lat != nil {
		lat = *el.Lat
	} else if el.Center != nil {
		lat = el.Center.Lat
	}
	if el.Lon != nil {
		lng = *el.Lon
	} else if el.Center != nil {
		lng = el.Center.Lon
	}

	if lat == 0 && lng == 0 {
		return 0, 0, false
	}
	return lat, lng, true
}

func buildAddress(tags map[string]string) *string {
	if tags == nil {
		return nil
	}

	var parts []string
	for _, key := range []string{"addr:housenumber", "addr:street", "addr:city"} {
		if v := strings.TrimSpace(tags[key]); v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return nil
	}

	address := strings.Join(parts, ", ")
	return &address
}
