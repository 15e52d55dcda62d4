package corpus

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestListFiles(t *testing.T) {
	dir := t.TempDir()
	b := writeFile(t, dir, "b.txt", "b")
	a := writeFile(t, dir, "a.txt", "a")
	writeFile(t, dir, ".hidden", "h")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	files, err := ListFiles(dir, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, files)

	files, err = ListFiles(dir, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{a}, files)
}

func TestListFiles_FollowsSymlinks(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, t.TempDir(), "target.txt", "t")
	a := writeFile(t, dir, "a.txt", "a")
	linked := filepath.Join(dir, "b.txt")
	require.NoError(t, os.Symlink(target, linked))
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing.txt"), filepath.Join(dir, "c.txt")))
	require.NoError(t, os.Symlink(t.TempDir(), filepath.Join(dir, "d")))

	files, err := ListFiles(dir, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{a, linked}, files)
}

func TestListFiles_Errors(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "a.txt", "a")

	_, err := ListFiles(file, 0)
	assert.ErrorIs(t, err, ErrNotDirectory)

	_, err = ListFiles(filepath.Join(dir, "missing"), 0)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestListFiles_Empty(t *testing.T) {
	files, err := ListFiles(t.TempDir(), 10)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestLoadText(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", "Markets rallied.\nBonds fell.")

	text, err := LoadText(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Markets rallied.\nBonds fell.", text)

	_, err = LoadText(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want map[string]int
	}{
		{
			name: "folds case and counts",
			text: "The market, THE Market!",
			want: map[string]int{"the": 2, "market": 2},
		},
		{
			name: "drops short and numeric tokens",
			text: "a 42 b2 x 2024 ok",
			want: map[string]int{"b2": 1, "ok": 1},
		},
		{
			name: "splits on punctuation",
			text: "state-of-the-art",
			want: map[string]int{"state": 1, "of": 1, "the": 1, "art": 1},
		},
		{
			name: "unicode letters",
			text: "Straße STRASSE über",
			want: map[string]int{"strasse": 2, "über": 1},
		},
		{
			name: "empty",
			text: "  ... ",
			want: map[string]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.text))
		})
	}
}

func TestLength(t *testing.T) {
	assert.Equal(t, 4, Length(Tokenize("The market, THE Market!")))
	assert.Zero(t, Length(nil))
}
