package highscore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lixenwraith/oncoarena/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(name string, score int) service.Score {
	return service.Score{Name: name, Score: score, Level: 1}
}

func fullTable() []service.Score {
	var out []service.Score
	for i := 10; i >= 1; i-- {
		out = append(out, entry("p", i*100))
	}
	return out
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  doc  ", "doc"},
		{"", DefaultName},
		{"<script>", "script"},
		{"a\tb\nc", "abc"},
		{"averyverylongname", "averyverylon"},
		{"ÄÖÜäöüßéèêàá", "ÄÖÜäöüßéèêàá"},
		{"   \x00 ", DefaultName},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeName(tt.in), "input %q", tt.in)
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(entry("a", 10)))
	assert.ErrorIs(t, Validate(service.Score{Score: 10}), ErrInvalidScore, "level 0")
	assert.ErrorIs(t, Validate(service.Score{Score: -1, Level: 1}), ErrInvalidScore)
	assert.ErrorIs(t, Validate(service.Score{Score: 1, Level: 1, Survival: 86401}), ErrInvalidScore)
	assert.ErrorIs(t, Validate(service.Score{Score: 1, Level: 1, Bosses: 100}), ErrInvalidScore)
}

func TestQualifies(t *testing.T) {
	assert.False(t, Qualifies(nil, 0), "zero never qualifies")
	assert.True(t, Qualifies(nil, 1))
	table := fullTable()
	assert.False(t, Qualifies(table, 100), "tie with last entry")
	assert.True(t, Qualifies(table, 101))
}

func TestInsertRanks(t *testing.T) {
	table := fullTable()

	rank, out, err := Insert(table, entry("new", 550))
	require.NoError(t, err)
	assert.Equal(t, 6, rank)
	assert.Len(t, out, 10)
	assert.Equal(t, "new", out[5].Name)
	assert.Equal(t, 200, out[9].Score, "lowest entry pushed out")
	assert.Equal(t, 100, table[9].Score, "input untouched")

	rank, out, err = Insert(out, entry("top", 5000))
	require.NoError(t, err)
	assert.Equal(t, 1, rank)
	assert.Equal(t, "top", out[0].Name)

	_, _, err = Insert(table, entry("low", 50))
	assert.ErrorIs(t, err, ErrNotQualified)
}

func TestInsertTieBreaks(t *testing.T) {
	early := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	table := []service.Score{{Name: "first", Score: 500, Level: 3, Recorded: early}}

	rank, out, err := Insert(table, service.Score{Name: "higher level", Score: 500, Level: 4, Recorded: early.Add(time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, 1, rank)

	rank, _, err = Insert(out, service.Score{Name: "later", Score: 500, Level: 3, Recorded: early.Add(time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, 3, rank, "equal score and level ranks after the earlier record")
}

func TestNormalize(t *testing.T) {
	in := append(fullTable(), entry("x", 2000), entry("y", 50))
	out := Normalize(in)
	require.Len(t, out, 10)
	assert.Equal(t, 2000, out[0].Score)
	assert.Equal(t, 200, out[9].Score)
}

func TestLocalStorePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "scores", "table.json")

	store, err := OpenLocal(path)
	require.NoError(t, err)

	rank, err := store.Submit(ctx, service.Score{Name: "  doc  ", Score: 300, Level: 2})
	require.NoError(t, err)
	assert.Equal(t, 1, rank)
	rank, err = store.Submit(ctx, service.Score{Name: "amy", Score: 900, Level: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, rank)

	reopened, err := OpenLocal(path)
	require.NoError(t, err)
	top, err := reopened.Top(ctx)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "amy", top[0].Name)
	assert.Equal(t, "doc", top[1].Name)
	assert.NotEmpty(t, top[1].ID)
	assert.False(t, top[1].Recorded.IsZero())
}

func TestLocalStoreRejects(t *testing.T) {
	ctx := context.Background()
	store, err := OpenLocal("")
	require.NoError(t, err)

	_, err = store.Submit(ctx, service.Score{Score: 10})
	assert.ErrorIs(t, err, ErrInvalidScore)
	_, err = store.Submit(ctx, service.Score{Score: 0, Level: 1})
	assert.ErrorIs(t, err, ErrNotQualified)

	ok, err := store.Qualifies(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLocalStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store, err := OpenLocal(path)
	require.NoError(t, err)
	top, _ := store.Top(context.Background())
	assert.Empty(t, top)
	_, err = os.Stat(path + ".corrupt")
	assert.NoError(t, err, "damaged file kept aside")
}
