// Package spotify реализует клиент для работы с Spotify Web API.
package spotify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"discography/internal/pagination"
	"discography/internal/types"

	"github.com/zmb3/spotify/v2"
	"go.uber.org/zap"
)

// tokenTransport добавляет токен к каждому запросу
type tokenTransport struct {
	base      http.RoundTripper
	token     string
	tokenType string
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", t.tokenType+" "+t.token)

	// Используем DefaultTransport если base равен nil
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}

	return base.RoundTrip(req)
}

// Client представляет клиент для работы с Spotify API.
// Таймауты и повторы запросов не настраиваются.
type Client struct {
	clientID     string
	clientSecret string
	authURL      string
	apiURL       string
	logger       *zap.Logger

	httpClient *http.Client
	api        *spotify.Client
}

// NewClient создает новый Spotify клиент с использованием Client Credentials Flow
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("spotify client ID and secret are required")
	}

	authURL := cfg.AuthURL
	if authURL == "" {
		authURL = DefaultAuthURL
	}
	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if !strings.HasSuffix(apiURL, "/") {
		apiURL += "/"
	}

	return &Client{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		authURL:      authURL,
		apiURL:       apiURL,
		logger:       logger,
	}, nil
}

// Authenticate получает токен и создает HTTP клиент, подставляющий его в запросы
func (c *Client) Authenticate(ctx context.Context) error {
	data := url.Values{}
	data.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create token request: %w", err)
	}

	credentials := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Authorization", "Basic "+credentials)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to get token: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("Failed to close response body", zap.Error(closeErr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("token request failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return fmt.Errorf("failed to decode token response: %w", err)
	}

	if token.AccessToken == "" {
		return fmt.Errorf("no access token received")
	}

	tokenType := token.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}

	c.httpClient = &http.Client{
		Transport: &tokenTransport{
			base:      http.DefaultTransport,
			token:     token.AccessToken,
			tokenType: tokenType,
		},
	}
	c.api = spotify.New(c.httpClient, spotify.WithBaseURL(c.apiURL))

	c.logger.Info("Spotify token obtained", zap.Int("expires_in", token.ExpiresIn))
	return nil
}

// FetchPage выполняет GET по полному URL и разбирает постраничный ответ
func (c *Client) FetchPage(ctx context.Context, pageURL string) (*pagination.Page, error) {
	if c.httpClient == nil {
		return nil, ErrNotAuthenticated
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug("Requesting page", zap.String("url", pageURL))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("Failed to close response body", zap.Error(closeErr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var page pagination.Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode page: %w", err)
	}

	return &page, nil
}

// SearchArtist ищет артиста по имени и возвращает первое совпадение
func (c *Client) SearchArtist(ctx context.Context, name string) (*types.SpotifyArtist, error) {
	if c.api == nil {
		return nil, ErrNotAuthenticated
	}

	result, err := c.api.Search(ctx, name, spotify.SearchTypeArtist, spotify.Limit(1))
	if err != nil {
		return nil, fmt.Errorf("failed to search artist %q: %w", name, err)
	}

	if result.Artists == nil || len(result.Artists.Artists) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrArtistNotFound, name)
	}

	artist := result.Artists.Artists[0]
	return &types.SpotifyArtist{
		ID:   string(artist.ID),
		Name: artist.Name,
	}, nil
}

// LookupTracks получает полные метаданные треков одним запросом
func (c *Client) LookupTracks(ctx context.Context, ids []string) ([]types.SpotifyTrackInfo, error) {
	if c.api == nil {
		return nil, ErrNotAuthenticated
	}
	if len(ids) > maxLookupIDs {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyIDs, len(ids), maxLookupIDs)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	spotifyIDs := make([]spotify.ID, 0, len(ids))
	for _, id := range ids {
		spotifyIDs = append(spotifyIDs, spotify.ID(id))
	}

	tracks, err := c.api.GetTracks(ctx, spotifyIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get tracks: %w", err)
	}

	infos := make([]types.SpotifyTrackInfo, 0, len(tracks))
	for _, track := range tracks {
		// Неизвестные ID приходят как null
		if track == nil {
			continue
		}
		infos = append(infos, types.SpotifyTrackInfo{
			ID:         string(track.ID),
			Name:       track.Name,
			Popularity: int(track.Popularity),
		})
	}

	return infos, nil
}

// ArtistAlbumsURL возвращает URL первой страницы альбомов артиста
func (c *Client) ArtistAlbumsURL(artistID string) string {
	return fmt.Sprintf("%sartists/%s/albums?limit=%d", c.apiURL, url.PathEscape(artistID), pageLimit)
}

// AlbumTracksURL возвращает URL первой страницы треков альбома
func (c *Client) AlbumTracksURL(albumID string) string {
	return fmt.Sprintf("%salbums/%s/tracks?limit=%d", c.apiURL, url.PathEscape(albumID), pageLimit)
}
