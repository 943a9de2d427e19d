// Package spotify содержит типы для работы с Spotify API.
package spotify

import "errors"

const (
	// DefaultAuthURL адрес обмена client credentials на токен
	DefaultAuthURL = "https://accounts.spotify.com/api/token"
	// DefaultAPIURL базовый адрес Web API
	DefaultAPIURL = "https://api.spotify.com/v1/"

	// pageLimit максимальный размер страницы для альбомов и треков альбома
	pageLimit = 50
	// maxLookupIDs лимит ID в одном запросе /tracks
	maxLookupIDs = 50
)

var (
	// ErrNotAuthenticated возвращается при вызове API до получения токена
	ErrNotAuthenticated = errors.New("spotify client is not authenticated")
	// ErrArtistNotFound возвращается, если поиск не нашел артиста
	ErrArtistNotFound = errors.New("artist not found")
	// ErrTooManyIDs возвращается при запросе более 50 треков за раз
	ErrTooManyIDs = errors.New("too many track ids for one lookup")
)

// Config содержит параметры подключения к Spotify
type Config struct {
	ClientID     string
	ClientSecret string
	AuthURL      string
	APIURL       string
}

// tokenResponse ответ на запрос токена
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}
