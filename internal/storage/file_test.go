package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"testing"

	"discography/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func readRows(t *testing.T, path string) []model.Track {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var rows []model.Track
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var row model.Track
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &row))
		rows = append(rows, row)
	}
	require.NoError(t, scanner.Err())
	return rows
}

func TestFileSink_EnsureTableIsIdempotent(t *testing.T) {
	sink := NewFileSink(t.TempDir(), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, sink.EnsureTable(ctx, "tracks"))
	require.Empty(t, sink.InsertRows(ctx, "tracks", []model.Track{{ID: "t1", Popularity: 1}}))

	// Повторное создание не затирает данные
	require.NoError(t, sink.EnsureTable(ctx, "tracks"))
	assert.Len(t, readRows(t, sink.Path("tracks")), 1)
}

func TestFileSink_InsertRowsAppends(t *testing.T) {
	sink := NewFileSink(t.TempDir(), zap.NewNop())
	ctx := context.Background()
	require.NoError(t, sink.EnsureTable(ctx, "tracks"))

	first := []model.Track{{ID: "a", Name: "A", Popularity: 90, ReleaseDate: "2022-05-06", AlbumName: "Un Verano Sin Ti"}}
	second := []model.Track{{ID: "b", Name: "B", Popularity: 80, ReleaseDate: "2020-01-01", AlbumName: "YHLQMDLG"}}

	assert.Empty(t, sink.InsertRows(ctx, "tracks", first))
	assert.Empty(t, sink.InsertRows(ctx, "tracks", second))

	rows := readRows(t, sink.Path("tracks"))
	require.Len(t, rows, 2)
	assert.Equal(t, first[0].ID, rows[0].ID)
	assert.Equal(t, "Un Verano Sin Ti", rows[0].AlbumName)
	assert.Equal(t, "2020-01-01", rows[1].ReleaseDate)
}

func TestFileSink_InsertRowsRejectsInvalid(t *testing.T) {
	sink := NewFileSink(t.TempDir(), zap.NewNop())

	errs := sink.InsertRows(context.Background(), "tracks", []model.Track{{ID: "ok"}, {ID: "", Popularity: 500}})
	assert.Len(t, errs, 1)
}
