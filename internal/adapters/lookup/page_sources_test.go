package lookup

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPageServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDistancePageSourceBuildsRoutePath(t *testing.T) {
	srv := newPageServer(t, map[string]string{
		"/distance/CDG-to-NCE/": "<p>The distance is 686 km</p>",
	})

	src := NewDistancePageSource(srv.URL, srv.Client())
	text, err := src.FetchText(context.Background(), "CDG-NCE")
	require.NoError(t, err)
	assert.Contains(t, text, "686 km")
	assert.Equal(t, "airmilescalculator", src.Name())
}

func TestDistancePageSourceRejectsMalformedKey(t *testing.T) {
	src := NewDistancePageSource("http://127.0.0.1:0", nil)
	_, err := src.FetchText(context.Background(), "CDGNCE")
	require.Error(t, err)
}

func TestStatusPageSource(t *testing.T) {
	srv := newPageServer(t, map[string]string{
		"/flights/status-AF1234/": "<span>A320</span> Aircraft Type",
	})

	src := NewStatusPageSource(srv.URL, srv.Client())
	text, err := src.FetchText(context.Background(), "AF1234")
	require.NoError(t, err)
	assert.Contains(t, text, "Aircraft Type")
}

func TestFlightPageSourceLowercasesCode(t *testing.T) {
	srv := newPageServer(t, map[string]string{
		"/data/flights/af1234": "Aircraft B77W (B777)",
	})

	src := NewFlightPageSource(srv.URL, srv.Client())
	text, err := src.FetchText(context.Background(), "AF1234")
	require.NoError(t, err)
	assert.Contains(t, text, "B777")
}

func TestPageSourceStatusError(t *testing.T) {
	srv := newPageServer(t, map[string]string{})

	src := NewStatusPageSource(srv.URL, srv.Client())
	_, err := src.FetchText(context.Background(), "ZZ999")
	require.Error(t, err)

	var he *httpStatusError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestPageSourceHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	src := NewFlightPageSource(srv.URL, srv.Client())
	_, err := src.FetchText(ctx, "AF1234")
	require.Error(t, err)
}

func TestStaticTextSource(t *testing.T) {
	boom := errors.New("boom")
	src := NewStaticTextSource("canned", map[string]string{"CDG-NCE": "686 km"}).
		FailWith("CDG-XXX", boom)

	text, err := src.FetchText(context.Background(), "CDG-NCE")
	require.NoError(t, err)
	assert.Equal(t, "686 km", text)

	_, err = src.FetchText(context.Background(), "CDG-XXX")
	assert.ErrorIs(t, err, boom)

	_, err = src.FetchText(context.Background(), "missing")
	assert.Error(t, err)

	assert.Equal(t, 1, src.Calls("CDG-NCE"))
	assert.Equal(t, 3, src.TotalCalls())
}
