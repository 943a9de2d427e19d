// Package pagination реализует обход постраничных ответов Spotify по курсору next.
package pagination

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
)

// Page представляет одну страницу постраничного ответа.
// Items равен nil, если ключ items отсутствует или null.
type Page struct {
	Items json.RawMessage `json:"items"`
	Next  *string         `json:"next"`
}

// HasItems сообщает, есть ли на странице ключ items
func (p *Page) HasItems() bool {
	return len(p.Items) > 0 && string(p.Items) != "null"
}

// NextURL возвращает адрес следующей страницы и false, если страниц больше нет
func (p *Page) NextURL() (string, bool) {
	if p.Next == nil || *p.Next == "" {
		return "", false
	}
	return *p.Next, true
}

// Fetcher загружает одну страницу по полному URL
type Fetcher interface {
	FetchPage(ctx context.Context, url string) (*Page, error)
}

// Walk возвращает ленивую последовательность пачек элементов, начиная с seed.
// Каждая страница загружается ровно один раз. Последовательность заканчивается,
// когда нет next или на странице нет items. Ошибка загрузки или декодирования
// отдается один раз и завершает обход.
func Walk[T any](ctx context.Context, fetcher Fetcher, seed string) iter.Seq2[[]T, error] {
	return func(yield func([]T, error) bool) {
		url := seed
		for {
			page, err := fetcher.FetchPage(ctx, url)
			if err != nil {
				yield(nil, fmt.Errorf("failed to fetch page %s: %w", url, err))
				return
			}

			// Страница без items считается концом данных
			if !page.HasItems() {
				return
			}

			var items []T
			if err := json.Unmarshal(page.Items, &items); err != nil {
				yield(nil, fmt.Errorf("failed to decode items of page %s: %w", url, err))
				return
			}

			if !yield(items, nil) {
				return
			}

			next, ok := page.NextURL()
			if !ok {
				return
			}
			url = next
		}
	}
}
