package route

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"eld-trip-service/internal/domain"
)

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Label    string `json:"label"`
			Locality string `json:"locality"`
			County   string `json:"county"`
			RegionA  string `json:"region_a"`
		} `json:"properties"`
	} `json:"features"`
}

// geocodeSearch resolves one address via the ORS /geocode/search endpoint.
func (o *ORSRouteProvider) geocodeSearch(ctx context.Context, address string) (domain.Coordinates, error) {
	endpoint := o.baseURL + "/geocode/search"

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := o.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", address)
		q.Set("boundary.country", "US")
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, fmt.Errorf("no geocode results for %q: %w", address, domain.ErrAddressNotFound)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinates{}, fmt.Errorf("invalid coordinate format for %q", address)
	}

	return domain.Coordinates{Lon: coords[0], Lat: coords[1]}, nil
}

// reverseGeocode names a coordinate via /geocode/reverse, preferring a
// "Locality, ST" form and falling back to the full label.
func (o *ORSRouteProvider) reverseGeocode(ctx context.Context, c domain.Coordinates) (string, error) {
	endpoint := o.baseURL + "/geocode/reverse"

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := o.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("point.lon", fmt.Sprintf("%f", c.Lon))
		q.Set("point.lat", fmt.Sprintf("%f", c.Lat))
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode reverse geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return "", nil
	}

	props := decoded.Features[0].Properties
	area := props.Locality
	if area == "" {
		area = props.County
	}

	switch {
	case area != "" && props.RegionA != "":
		return area + ", " + props.RegionA, nil
	case area != "":
		return area, nil
	default:
		return props.Label, nil
	}
}
