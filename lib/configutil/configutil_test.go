package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Port    int    `json:"port"`
	BaseUrl string `json:"base_url"`
}

func writeFile(t *testing.T, path, content string) {
	err := os.WriteFile(path, []byte(content), 0o644)
	if err != nil {
		t.Fatal(err)
	}
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json5")
	writeFile(t, path, `{
	// json5 comments are fine
	port: 8000,
	base_url: "https://example.edu",
}`)

	config, err := ReadConfig[testConfig](path)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, 8000, config.Port)
	require.Equal(t, "https://example.edu", config.BaseUrl)
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json5"), `{
	port: 8000,
	base_url: "https://example.edu",
}`)
	writeFile(t, filepath.Join(dir, "config.local.json5"), `{
	port: 9000,
}`)

	config, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, 9000, config.Port)
	require.Equal(t, "https://example.edu", config.BaseUrl)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "config.json5"))
	require.True(t, os.IsNotExist(err))
}
