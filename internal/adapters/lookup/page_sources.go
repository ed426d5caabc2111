package lookup

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	DefaultDistanceBaseURL = "https://www.airmilescalculator.com"
	DefaultStatusBaseURL   = "https://fr.trip.com"
	DefaultFlightBaseURL   = "https://www.flightradar24.com"
)

// DistancePageSource fetches the airmilescalculator.com route page.
// Keys are route keys of the form ORIGIN-DEST.
type DistancePageSource struct {
	client  pageClient
	baseURL string
}

func NewDistancePageSource(baseURL string, session *http.Client) *DistancePageSource {
	if baseURL == "" {
		baseURL = DefaultDistanceBaseURL
	}
	return &DistancePageSource{client: newPageClient(session), baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *DistancePageSource) Name() string { return "airmilescalculator" }

func (s *DistancePageSource) FetchText(ctx context.Context, routeKey string) (string, error) {
	origin, destination, ok := strings.Cut(routeKey, "-")
	if !ok || origin == "" || destination == "" {
		return "", fmt.Errorf("fetch distance page: malformed route key %q", routeKey)
	}

	endpoint := fmt.Sprintf("%s/distance/%s-to-%s/", s.baseURL, url.PathEscape(origin), url.PathEscape(destination))
	text, err := s.client.getText(ctx, endpoint)
	if err != nil {
		return "", fmt.Errorf("fetch distance page: %w", err)
	}
	return text, nil
}

// StatusPageSource fetches the trip.com flight status page, which labels the
// equipment as "<type> Aircraft Type".
type StatusPageSource struct {
	client  pageClient
	baseURL string
}

func NewStatusPageSource(baseURL string, session *http.Client) *StatusPageSource {
	if baseURL == "" {
		baseURL = DefaultStatusBaseURL
	}
	return &StatusPageSource{client: newPageClient(session), baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *StatusPageSource) Name() string { return "tripcom" }

func (s *StatusPageSource) FetchText(ctx context.Context, flightCode string) (string, error) {
	if flightCode == "" {
		return "", errors.New("fetch status page: flight code must be non-empty")
	}

	endpoint := fmt.Sprintf("%s/flights/status-%s/", s.baseURL, url.PathEscape(flightCode))
	text, err := s.client.getText(ctx, endpoint)
	if err != nil {
		return "", fmt.Errorf("fetch status page: %w", err)
	}
	return text, nil
}

// FlightPageSource fetches the flightradar24 flight history page.
// The site expects lowercase flight codes in its paths.
type FlightPageSource struct {
	client  pageClient
	baseURL string
}

func NewFlightPageSource(baseURL string, session *http.Client) *FlightPageSource {
	if baseURL == "" {
		baseURL = DefaultFlightBaseURL
	}
	return &FlightPageSource{client: newPageClient(session), baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *FlightPageSource) Name() string { return "flightradar24" }

func (s *FlightPageSource) FetchText(ctx context.Context, flightCode string) (string, error) {
	if flightCode == "" {
		return "", errors.New("fetch flight page: flight code must be non-empty")
	}

	endpoint := fmt.Sprintf("%s/data/flights/%s", s.baseURL, url.PathEscape(strings.ToLower(flightCode)))
	text, err := s.client.getText(ctx, endpoint)
	if err != nil {
		return "", fmt.Errorf("fetch flight page: %w", err)
	}
	return text, nil
}
