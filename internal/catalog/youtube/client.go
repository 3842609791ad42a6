// Package youtube provides the video catalog client used for video search
// and metadata lookup when composing tags.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"commusics/internal/middleware"
)

const (
	baseURL   = "https://www.googleapis.com/youtube/v3"
	userAgent = "commusics/1.0"
)

// MinQueryLen is the minimum rune length of a search query. Shorter queries
// return empty results without issuing the outbound HTTP call.
const MinQueryLen = 2

const searchLimit = 10

// Sentinel errors.
var (
	// ErrQuotaExceeded is returned when the API daily quota is exhausted.
	ErrQuotaExceeded = errors.New("video catalog quota exceeded")

	// ErrInvalidAPIKey is returned when the API key is rejected.
	ErrInvalidAPIKey = errors.New("invalid video catalog API key")

	// ErrVideoNotFound is returned on metadata lookup for an unknown video ID.
	ErrVideoNotFound = errors.New("video not found")

	// ErrInvalidVideoURL is returned when a pasted URL has no recognizable video ID.
	ErrInvalidVideoURL = errors.New("not a recognizable video URL")
)

// Video is a search/lookup result mapped into the local row shape.
type Video struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url"`
	ChannelTitle string `json:"channel_title"`
}

// Catalog is the video catalog surface consumed by handlers.
type Catalog interface {
	Search(ctx context.Context, query string) ([]Video, error)
	VideoByID(ctx context.Context, id string) (*Video, error)
}

// Client is a YouTube Data API client authenticated by API key.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a video catalog client with the given API key.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
	}
}

type snippet struct {
	Title        string `json:"title"`
	ChannelTitle string `json:"channelTitle"`
	Thumbnails   struct {
		Medium struct {
			URL string `json:"url"`
		} `json:"medium"`
		Default struct {
			URL string `json:"url"`
		} `json:"default"`
	} `json:"thumbnails"`
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet snippet `json:"snippet"`
	} `json:"items"`
}

type videosResponse struct {
	Items []struct {
		ID      string  `json:"id"`
		Snippet snippet `json:"snippet"`
	} `json:"items"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

// Search searches the video catalog by keyword.
func (c *Client) Search(ctx context.Context, query string) ([]Video, error) {
	if len([]rune(query)) < MinQueryLen {
		return []Video{}, nil
	}

	params := url.Values{
		"part":       {"snippet"},
		"type":       {"video"},
		"q":          {query},
		"maxResults": {fmt.Sprint(searchLimit)},
	}

	body, err := c.get(ctx, "/search", params)
	if err != nil {
		return nil, err
	}

	var res searchResponse
	if err := json.Unmarshal(body, &res); err != nil {
		middleware.CatalogErrors.WithLabelValues("youtube", "parse").Inc()
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	videos := make([]Video, 0, len(res.Items))
	for _, item := range res.Items {
		if item.ID.VideoID == "" {
			continue
		}
		videos = append(videos, Video{
			ID:           item.ID.VideoID,
			Title:        item.Snippet.Title,
			ThumbnailURL: thumbnailURL(item.Snippet),
			ChannelTitle: item.Snippet.ChannelTitle,
		})
	}
	return videos, nil
}

// VideoByID looks up metadata for a single video.
func (c *Client) VideoByID(ctx context.Context, id string) (*Video, error) {
	params := url.Values{
		"part": {"snippet"},
		"id":   {id},
	}

	body, err := c.get(ctx, "/videos", params)
	if err != nil {
		return nil, err
	}

	var res videosResponse
	if err := json.Unmarshal(body, &res); err != nil {
		middleware.CatalogErrors.WithLabelValues("youtube", "parse").Inc()
		return nil, fmt.Errorf("decoding video response: %w", err)
	}
	if len(res.Items) == 0 {
		return nil, ErrVideoNotFound
	}

	item := res.Items[0]
	return &Video{
		ID:           item.ID,
		Title:        item.Snippet.Title,
		ThumbnailURL: thumbnailURL(item.Snippet),
		ChannelTitle: item.Snippet.ChannelTitle,
	}, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if c.apiKey == "" {
		return nil, ErrInvalidAPIKey
	}
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		middleware.CatalogErrors.WithLabelValues("youtube", "network").Inc()
		return nil, fmt.Errorf("calling video catalog: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.classifyAPIError(resp.StatusCode, body)
	}
	return body, nil
}

// classifyAPIError maps an error payload to a sentinel error where the reason
// is recognizable, otherwise returns the API's message verbatim.
func (c *Client) classifyAPIError(status int, body []byte) error {
	var payload apiError
	_ = json.Unmarshal(body, &payload)

	for _, e := range payload.Error.Errors {
		switch e.Reason {
		case "quotaExceeded", "dailyLimitExceeded", "rateLimitExceeded":
			middleware.CatalogErrors.WithLabelValues("youtube", "quota").Inc()
			return ErrQuotaExceeded
		case "keyInvalid", "badRequest":
			if e.Reason == "keyInvalid" || strings.Contains(payload.Error.Message, "API key") {
				middleware.CatalogErrors.WithLabelValues("youtube", "invalid_key").Inc()
				return ErrInvalidAPIKey
			}
		}
	}
	if status == http.StatusForbidden {
		middleware.CatalogErrors.WithLabelValues("youtube", "quota").Inc()
		return ErrQuotaExceeded
	}

	middleware.CatalogErrors.WithLabelValues("youtube", "other").Inc()
	if payload.Error.Message != "" {
		return fmt.Errorf("video catalog error (%d): %s", status, payload.Error.Message)
	}
	return fmt.Errorf("video catalog error: status %d", status)
}

func thumbnailURL(s snippet) string {
	if s.Thumbnails.Medium.URL != "" {
		return s.Thumbnails.Medium.URL
	}
	return s.Thumbnails.Default.URL
}

// ParseVideoID extracts a video ID from a pasted URL. Supported shapes:
// youtube.com/watch?v=<id>, youtube.com/shorts/<id>, youtube.com/embed/<id>
// and youtu.be/<id>. A bare video ID is also accepted.
func ParseVideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidVideoURL
	}

	// Bare ID: no scheme, no slash, plausible length.
	if !strings.Contains(raw, "/") && !strings.Contains(raw, ".") {
		return raw, nil
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", ErrInvalidVideoURL
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	switch host {
	case "youtube.com", "m.youtube.com":
		if id := u.Query().Get("v"); id != "" {
			return id, nil
		}
		for _, prefix := range []string{"/shorts/", "/embed/"} {
			if rest, ok := strings.CutPrefix(u.Path, prefix); ok {
				if id := strings.Trim(rest, "/"); id != "" && !strings.Contains(id, "/") {
					return id, nil
				}
			}
		}
	case "youtu.be":
		if id := strings.Trim(u.Path, "/"); id != "" && !strings.Contains(id, "/") {
			return id, nil
		}
	}
	return "", ErrInvalidVideoURL
}
