package youtube

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *int64) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	c := NewClient("test-key")
	c.baseURL = srv.URL
	return c, &calls
}

func TestSearch(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "live at budokan", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"items": [
				{"id": {"videoId": "abc123"}, "snippet": {"title": "Live at Budokan", "channelTitle": "Official", "thumbnails": {"medium": {"url": "https://i.example/m.jpg"}}}},
				{"id": {}, "snippet": {"title": "channel result, no videoId"}}
			]
		}`))
	})

	videos, err := c.Search(context.Background(), "live at budokan")
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "abc123", videos[0].ID)
	assert.Equal(t, "Live at Budokan", videos[0].Title)
	assert.Equal(t, "Official", videos[0].ChannelTitle)
	assert.Equal(t, "https://i.example/m.jpg", videos[0].ThumbnailURL)
}

func TestSearchShortQuerySkipsHTTPCall(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	videos, err := c.Search(context.Background(), "a")
	require.NoError(t, err)
	assert.Empty(t, videos)
	assert.Zero(t, *calls)
}

func TestVideoByID(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/videos", r.URL.Path)
		assert.Equal(t, "abc123", r.URL.Query().Get("id"))
		_, _ = w.Write([]byte(`{"items": [{"id": "abc123", "snippet": {"title": "Video", "channelTitle": "Chan", "thumbnails": {"default": {"url": "https://i.example/d.jpg"}}}}]}`))
	})

	v, err := c.VideoByID(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", v.ID)
	assert.Equal(t, "https://i.example/d.jpg", v.ThumbnailURL)
}

func TestVideoByIDNotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items": []}`))
	})

	_, err := c.VideoByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestAPIErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected error
	}{
		{
			name:     "Quota Exceeded",
			status:   http.StatusForbidden,
			body:     `{"error": {"code": 403, "message": "quota", "errors": [{"reason": "quotaExceeded"}]}}`,
			expected: ErrQuotaExceeded,
		},
		{
			name:     "Invalid Key",
			status:   http.StatusBadRequest,
			body:     `{"error": {"code": 400, "message": "API key not valid", "errors": [{"reason": "keyInvalid"}]}}`,
			expected: ErrInvalidAPIKey,
		},
		{
			name:     "Forbidden Without Reason",
			status:   http.StatusForbidden,
			body:     `{}`,
			expected: ErrQuotaExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.Search(context.Background(), "some query")
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestMissingAPIKey(t *testing.T) {
	c := NewClient("")
	_, err := c.Search(context.Background(), "some query")
	assert.True(t, errors.Is(err, ErrInvalidAPIKey))
}

func TestParseVideoID(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
		wantErr  bool
	}{
		{name: "Watch URL", raw: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", expected: "dQw4w9WgXcQ"},
		{name: "Short URL", raw: "https://youtu.be/dQw4w9WgXcQ", expected: "dQw4w9WgXcQ"},
		{name: "Watch URL Without Scheme", raw: "youtube.com/watch?v=dQw4w9WgXcQ", expected: "dQw4w9WgXcQ"},
		{name: "Mobile Host", raw: "https://m.youtube.com/watch?v=dQw4w9WgXcQ", expected: "dQw4w9WgXcQ"},
		{name: "Bare ID", raw: "dQw4w9WgXcQ", expected: "dQw4w9WgXcQ"},
		{name: "Watch URL With Extra Params", raw: "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", expected: "dQw4w9WgXcQ"},
		{name: "Shorts URL", raw: "https://www.youtube.com/shorts/dQw4w9WgXcQ", expected: "dQw4w9WgXcQ"},
		{name: "Embed URL", raw: "https://www.youtube.com/embed/dQw4w9WgXcQ", expected: "dQw4w9WgXcQ"},
		{name: "Shorts URL Missing ID", raw: "https://www.youtube.com/shorts/", wantErr: true},
		{name: "Empty", raw: "", wantErr: true},
		{name: "Unrelated URL", raw: "https://example.com/watch?v=nope", wantErr: true},
		{name: "Watch URL Missing Param", raw: "https://www.youtube.com/watch", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseVideoID(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidVideoURL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, id)
		})
	}
}
