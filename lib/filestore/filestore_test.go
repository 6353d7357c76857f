package filestore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteAndList(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	path, err := store.Write("notes.txt", "hello")
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, filepath.Join(store.Dir(), "notes.txt"), path)

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "hello", string(content))

	_, err = store.Write("other.txt", "x")
	if err != nil {
		t.Fatal(err)
	}

	files, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	require.ElementsMatch(t, []string{"notes.txt", "other.txt"}, files)
}

func TestListSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	err = os.Mkdir(filepath.Join(dir, "subdir"), 0o755)
	if err != nil {
		t.Fatal(err)
	}

	files, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	require.Empty(t, files)
}

func TestWriteRejectsTraversal(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{
		"",
		".",
		"../escape.txt",
		"a/b.txt",
		`a\b.txt`,
		"..",
	} {
		_, err := store.Write(name, "x")
		var invalid InvalidFilenameError
		require.ErrorAs(t, err, &invalid, "filename %q", name)
		require.Equal(t, name, invalid.Filename)
	}
}

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "storage")
	_, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatal(err)
	}
	require.True(t, info.IsDir())
}
