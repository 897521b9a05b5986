// Package musicapi fetches recommendations, playlists and song lists from
// the music service and converts them into playlist tracks.
package musicapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	applog "github.com/llehouerou/playstate/internal/logger"
	"github.com/llehouerou/playstate/internal/playlist"
	"github.com/llehouerou/playstate/internal/uid"
)

var (
	// ErrBadStatus is returned for non-200 HTTP responses.
	ErrBadStatus = errors.New("unexpected status")
	// ErrAPICode is returned when the service answers with a non-zero code.
	ErrAPICode = errors.New("api error code")
)

const (
	recommendURL   = "https://c.y.qq.com/musichall/fcgi-bin/fcg_yqqhomepagerecommend.fcg"
	productionBase = "http://ustbhuangyi.com/music/api"
	defaultProxy   = "http://localhost:8080"

	jsonpParam    = "jsonpCallback"
	jsonpCallback = "playstateJsonp"

	codeOK       = 0
	maxBodyBytes = 4 << 20
)

// Options configures a Client.
type Options struct {
	// Debug routes playlist requests through the local proxy at ProxyURL
	// instead of the production host.
	Debug    bool
	ProxyURL string
	Timeout  time.Duration

	// Overrides used by tests.
	RecommendURL string
	BaseURL      string
	GUID         func() int64
	Logger       *slog.Logger
}

// Client is a music service API client.
type Client struct {
	httpClient   *http.Client
	recommendURL string
	baseURL      string
	guid         func() int64
	logger       *slog.Logger
}

// New creates a new client.
func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	base := opts.BaseURL
	if base == "" {
		if opts.Debug {
			proxy := opts.ProxyURL
			if proxy == "" {
				proxy = defaultProxy
			}
			base = strings.TrimSuffix(proxy, "/") + "/api"
		} else {
			base = productionBase
		}
	}

	rec := opts.RecommendURL
	if rec == "" {
		rec = recommendURL
	}

	guid := opts.GUID
	if guid == nil {
		guid = uid.Get
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		httpClient:   &http.Client{Timeout: timeout},
		recommendURL: rec,
		baseURL:      strings.TrimSuffix(base, "/"),
		guid:         guid,
		logger:       applog.WithComponent(logger, "musicapi"),
	}
}

// Recommend fetches the home page recommendation slider.
func (c *Client) Recommend(ctx context.Context) ([]Slide, error) {
	params := NewRecommendParams().Values()
	params.Set(jsonpParam, jsonpCallback)

	var resp recommendResponse
	if err := c.get(ctx, c.recommendURL, params, &resp); err != nil {
		return nil, err
	}
	if resp.Code != codeOK {
		return nil, fmt.Errorf("%w: %d", ErrAPICode, resp.Code)
	}
	return resp.Data.Slider, nil
}

// DiscList fetches the first page of recommended playlists.
func (c *Client) DiscList(ctx context.Context) ([]Disc, error) {
	params := NewDiscListParams(rand.Float64()).Values()

	var resp discListResponse
	if err := c.get(ctx, c.baseURL+"/getDiscList", params, &resp); err != nil {
		return nil, err
	}
	if resp.Code != codeOK {
		return nil, fmt.Errorf("%w: %d", ErrAPICode, resp.Code)
	}
	return resp.Data.List, nil
}

// SongList fetches the songs of playlist disstid as tracks.
// Songs that cannot be played are skipped.
func (c *Client) SongList(ctx context.Context, disstid string) ([]playlist.Track, error) {
	params := NewSongListParams(disstid).Values()

	var resp songListResponse
	if err := c.get(ctx, c.baseURL+"/getCdInfo", params, &resp); err != nil {
		return nil, err
	}
	if resp.Code != codeOK {
		return nil, fmt.Errorf("%w: %d", ErrAPICode, resp.Code)
	}
	if len(resp.CDList) == 0 {
		return nil, nil
	}

	songs := resp.CDList[0].SongList
	tracks := make([]playlist.Track, 0, len(songs))
	for _, s := range songs {
		if t, ok := s.Track(); ok {
			tracks = append(tracks, t)
		}
	}
	return tracks, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	params.Set("guid", strconv.FormatInt(c.guid(), 10))
	reqURL := endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	c.logger.Debug("request", "url", endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s", ErrBadStatus, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	payload, err := unwrapJSONP(body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
