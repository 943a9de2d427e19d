package discography

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"discography/internal/pagination"
	"discography/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeCatalog отдает треки альбомов страницами и запоминает bulk-запросы
type fakeCatalog struct {
	// albumID -> страницы с ID треков
	albums    map[string][][]string
	lookups   [][]string
	lookupErr error
}

func (c *fakeCatalog) AlbumTracksURL(albumID string) string {
	return "album:" + albumID + ":0"
}

func (c *fakeCatalog) FetchPage(_ context.Context, url string) (*pagination.Page, error) {
	// URL имеет вид "album:<id>:<page>"
	rest := strings.TrimPrefix(url, "album:")
	sep := strings.LastIndex(rest, ":")
	if sep < 0 {
		return nil, errors.New("malformed url " + url)
	}
	albumID := rest[:sep]
	pageNum, err := strconv.Atoi(rest[sep+1:])
	if err != nil {
		return nil, err
	}

	pages, ok := c.albums[albumID]
	if !ok || pageNum >= len(pages) {
		return nil, errors.New("unknown page " + url)
	}

	refs := make([]types.SpotifyTrackRef, 0, len(pages[pageNum]))
	for _, id := range pages[pageNum] {
		refs = append(refs, types.SpotifyTrackRef{ID: id, Name: "name-" + id})
	}
	items, err := json.Marshal(refs)
	if err != nil {
		return nil, err
	}

	page := &pagination.Page{Items: items}
	if pageNum+1 < len(pages) {
		next := fmt.Sprintf("album:%s:%d", albumID, pageNum+1)
		page.Next = &next
	}
	return page, nil
}

func (c *fakeCatalog) LookupTracks(_ context.Context, ids []string) ([]types.SpotifyTrackInfo, error) {
	c.lookups = append(c.lookups, append([]string(nil), ids...))
	if c.lookupErr != nil {
		return nil, c.lookupErr
	}
	infos := make([]types.SpotifyTrackInfo, 0, len(ids))
	for i, id := range ids {
		infos = append(infos, types.SpotifyTrackInfo{ID: id, Name: "full-" + id, Popularity: i % 101})
	}
	return infos, nil
}

// recordingReporter запоминает события прогресса
type recordingReporter struct {
	started  []string
	finished [][2]int
}

func (r *recordingReporter) AlbumStarted(index, total int, name string) {
	r.started = append(r.started, fmt.Sprintf("%d/%d %s", index, total, name))
}

func (r *recordingReporter) AlbumFinished(_, _, processed, collected int) {
	r.finished = append(r.finished, [2]int{processed, collected})
}

func trackIDs(prefix string, n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("%s%03d", prefix, i)
	}
	return ids
}

func album(id, name string) types.SpotifyAlbum {
	return types.SpotifyAlbum{
		ID:                   id,
		Name:                 name,
		ReleaseDate:          "2020-02",
		ReleaseDatePrecision: types.PrecisionMonth,
		AlbumType:            types.AlbumTypeAlbum,
	}
}

func TestTrackBatcher_ExactlyFiftyTracksOneLookup(t *testing.T) {
	catalog := &fakeCatalog{albums: map[string][][]string{
		"a": {trackIDs("a", 20), trackIDs("b", 30)},
	}}
	reporter := &recordingReporter{}
	batcher := NewTrackBatcher(catalog, reporter, zap.NewNop())

	tracks, err := batcher.Collect(context.Background(), []types.SpotifyAlbum{album("a", "Album A")})
	require.NoError(t, err)

	require.Len(t, catalog.lookups, 1)
	assert.Len(t, catalog.lookups[0], 50)
	assert.Len(t, tracks, 50)
	assert.Equal(t, 1, batcher.Lookups())
}

func TestTrackBatcher_SplitsIntoBatchesOfFifty(t *testing.T) {
	catalog := &fakeCatalog{albums: map[string][][]string{
		"a": {trackIDs("a", 50), trackIDs("b", 50), trackIDs("c", 23)},
	}}
	batcher := NewTrackBatcher(catalog, &recordingReporter{}, zap.NewNop())

	tracks, err := batcher.Collect(context.Background(), []types.SpotifyAlbum{album("a", "Album A")})
	require.NoError(t, err)

	require.Len(t, catalog.lookups, 3)
	assert.Len(t, catalog.lookups[0], 50)
	assert.Len(t, catalog.lookups[1], 50)
	assert.Len(t, catalog.lookups[2], 23)
	assert.Len(t, tracks, 123)
	for _, ids := range catalog.lookups {
		assert.LessOrEqual(t, len(ids), LookupBatchSize)
	}
}

func TestTrackBatcher_DeduplicatesAcrossAlbums(t *testing.T) {
	catalog := &fakeCatalog{albums: map[string][][]string{
		"deluxe":   {{"t1", "t2", "t3"}},
		"standard": {{"t2", "t4"}},
	}}
	reporter := &recordingReporter{}
	batcher := NewTrackBatcher(catalog, reporter, zap.NewNop())

	albums := []types.SpotifyAlbum{album("deluxe", "Deluxe"), album("standard", "Standard")}
	tracks, err := batcher.Collect(context.Background(), albums)
	require.NoError(t, err)

	byID := map[string]string{}
	for _, tr := range tracks {
		_, dup := byID[tr.ID]
		assert.False(t, dup, "track %s collected twice", tr.ID)
		byID[tr.ID] = tr.AlbumName
	}
	assert.Len(t, tracks, 4)
	assert.Equal(t, "Deluxe", byID["t2"])
	assert.Equal(t, "Standard", byID["t4"])

	assert.Equal(t, [][]string{{"t1", "t2", "t3"}, {"t4"}}, catalog.lookups)
	assert.Equal(t, [][2]int{{3, 3}, {1, 4}}, reporter.finished)
}

func TestTrackBatcher_AlbumWithoutNewTracksSkipsLookup(t *testing.T) {
	catalog := &fakeCatalog{albums: map[string][][]string{
		"first":   {{"t1", "t2"}},
		"reissue": {{"t2", "t1"}},
	}}
	reporter := &recordingReporter{}
	batcher := NewTrackBatcher(catalog, reporter, zap.NewNop())

	_, err := batcher.Collect(context.Background(), []types.SpotifyAlbum{album("first", "First"), album("reissue", "Reissue")})
	require.NoError(t, err)

	assert.Len(t, catalog.lookups, 1)
	assert.Equal(t, []string{"1/2 First", "2/2 Reissue"}, reporter.started)
	assert.Equal(t, [][2]int{{2, 2}, {0, 2}}, reporter.finished)
}

func TestTrackBatcher_CarriesAlbumNameAndCanonicalDate(t *testing.T) {
	catalog := &fakeCatalog{albums: map[string][][]string{
		"a": {{"t1"}},
	}}
	batcher := NewTrackBatcher(catalog, &recordingReporter{}, zap.NewNop())

	a := album("a", "YHLQMDLG")
	a.ReleaseDate = "2020"
	a.ReleaseDatePrecision = types.PrecisionYear

	tracks, err := batcher.Collect(context.Background(), []types.SpotifyAlbum{a})
	require.NoError(t, err)
	require.Len(t, tracks, 1)

	assert.Equal(t, "t1", tracks[0].ID)
	assert.Equal(t, "full-t1", tracks[0].Name)
	assert.Equal(t, "2020-01-01", tracks[0].ReleaseDate)
	assert.Equal(t, "YHLQMDLG", tracks[0].AlbumName)
}

func TestTrackBatcher_LookupErrorAbortsRun(t *testing.T) {
	catalog := &fakeCatalog{
		albums:    map[string][][]string{"a": {{"t1"}}},
		lookupErr: errors.New("502 bad gateway"),
	}
	batcher := NewTrackBatcher(catalog, &recordingReporter{}, zap.NewNop())

	_, err := batcher.Collect(context.Background(), []types.SpotifyAlbum{album("a", "A")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502 bad gateway")
}

func TestTrackBatcher_PageErrorAbortsRun(t *testing.T) {
	catalog := &fakeCatalog{albums: map[string][][]string{}}
	batcher := NewTrackBatcher(catalog, &recordingReporter{}, zap.NewNop())

	_, err := batcher.Collect(context.Background(), []types.SpotifyAlbum{album("missing", "Missing")})
	require.Error(t, err)
	assert.Empty(t, catalog.lookups)
}
