package usgs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/asteroid-impact-api/internal/observability"
)

// The EPQS service reports this elevation when it has no data for a point,
// typically over open ocean.
const noDataElevation = -1000000.0

// ErrNoData indicates the EPQS service has no elevation reading for the
// queried point.
var ErrNoData = errors.New("no elevation data for location")

// Client implements domain.ElevationProvider using the USGS Elevation Point
// Query Service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a USGS elevation client.
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		metrics: metrics,
		logger:  logger,
	}
}

// ElevationAt queries the EPQS for the elevation in meters at the given point.
func (c *Client) ElevationAt(ctx context.Context, lat, lon float64) (float64, error) {
	// EPQS uses x for longitude and y for latitude.
	params := url.Values{
		"x":      {strconv.FormatFloat(lon, 'f', -1, 64)},
		"y":      {strconv.FormatFloat(lat, 'f', -1, 64)},
		"units":  {"Meters"},
		"output": {"json"},
	}
	fullURL := c.baseURL + "/pqs.php?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ElevationAPIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.ElevationRequests.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("elevation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.metrics.ElevationRequests.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("usgs API error: status %d: %s", resp.StatusCode, body)
	}

	var usgsResp response
	if err := json.NewDecoder(resp.Body).Decode(&usgsResp); err != nil {
		c.metrics.ElevationRequests.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("decode response: %w", err)
	}

	elevation, err := parseElevation(usgsResp.Service.Query.Elevation)
	if err != nil {
		c.metrics.ElevationRequests.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("parse elevation: %w", err)
	}

	if elevation == noDataElevation {
		c.metrics.ElevationRequests.WithLabelValues("no_data").Inc()
		return 0, ErrNoData
	}

	c.metrics.ElevationRequests.WithLabelValues("success").Inc()
	c.logger.Debug("elevation lookup", "lat", lat, "lon", lon, "elevation_m", elevation)
	return elevation, nil
}

// parseElevation handles the EPQS elevation field, which arrives as a JSON
// number or as a quoted numeric string depending on service version.
func parseElevation(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 {
		return 0, errors.New("missing elevation field")
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("unexpected elevation value %s", raw)
	}
	return strconv.ParseFloat(s, 64)
}

// EPQS API response types.

type response struct {
	Service elevationService `json:"USGS_Elevation_Point_Query_Service"`
}

type elevationService struct {
	Query elevationQuery `json:"Elevation_Query"`
}

type elevationQuery struct {
	X         float64         `json:"x"`
	Y         float64         `json:"y"`
	Source    string          `json:"Data_Source"`
	Elevation json.RawMessage `json:"Elevation"`
	Units     string          `json:"Units"`
}
