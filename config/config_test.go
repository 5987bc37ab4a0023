package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrianliechti/cardsheet/config"
	"github.com/adrianliechti/cardsheet/pkg/extractor"
	"github.com/adrianliechti/cardsheet/pkg/layout"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return path
}

func TestParseDefaults(t *testing.T) {
	cfg, err := config.Parse("")
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.Address)
	require.Equal(t, extractor.DefaultRegion, cfg.Region)
	require.Equal(t, layout.DefaultWidth, cfg.Width)
	require.Empty(t, cfg.Authorizers)
	require.Empty(t, cfg.Publishers())

	r, err := cfg.Renderer()
	require.NoError(t, err)
	require.NotNil(t, r)
}

func TestParse(t *testing.T) {
	t.Setenv("CARDSHEET_TOKEN", "secret")

	path := writeConfig(t, `
address: ":9090"

template: ./assets/backside.png
output: ./reports

region:
  left: 100
  zoom: 2

layout:
  width: 320

renderer:
  type: fitz
  preflight: false
  limit: 5

authorizers:
  - type: static
    token: ${CARDSHEET_TOKEN}

publishers:
  archive:
    type: gcs
    bucket: id-reports
    prefix: ids/
    endpoint: http://localhost:4443/storage/v1/
    anonymous: true
`)

	cfg, err := config.Parse(path)
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.Address)
	require.Equal(t, "./assets/backside.png", cfg.Template)
	require.Equal(t, "./reports", cfg.Output)
	require.Equal(t, 320, cfg.Width)

	require.Equal(t, extractor.Region{Left: 100, Top: 95, Right: 410, Bottom: 248, Zoom: 2}, cfg.Region)

	require.Len(t, cfg.Authorizers, 1)
	require.Len(t, cfg.Publishers(), 1)

	d, err := cfg.Driver()
	require.NoError(t, err)
	require.Equal(t, 320, d.Width())
	require.Equal(t, "./reports", d.Output())
}

func TestParseInvalid(t *testing.T) {
	tests := map[string]string{
		"unknown field":    "colour: red\n",
		"renderer type":    "renderer:\n  type: ghostscript\n",
		"authorizer type":  "authorizers:\n  - type: oauth\n",
		"static no token":  "authorizers:\n  - type: static\n",
		"publisher type":   "publishers:\n  s3:\n    type: s3\n",
		"gcs no bucket":    "publishers:\n  archive:\n    type: gcs\n    anonymous: true\n",
		"inverted region":  "region:\n  left: 500\n",
		"negative width":   "layout:\n  width: -10\n",
		"renderer timeout": "renderer:\n  type: pdftoppm\n  path: /bin/sh\n  timeout: soon\n",
		"fallback type":    "renderer:\n  fallback:\n    type: ghostscript\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse(writeConfig(t, content))
			require.Error(t, err)
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := config.Parse(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
