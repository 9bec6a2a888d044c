package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/internal/collector"
)

func TestRenderGallery(t *testing.T) {
	cams := map[string]*collector.Record{
		"Q2AB-0002": {Serial: "Q2AB-0002", Name: "Lobby", LocalPath: "snapshots/Lobby.jpg"},
		"Q2AB-0001": {Serial: "Q2AB-0001", Name: "Front Door", LocalPath: "snapshots/Front Door.jpg"},
	}
	dest := filepath.Join(t.TempDir(), "index.html")

	require.NoError(t, Render(cams, "snapshots", dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	html := string(data)

	assert.Contains(t, html, `src="snapshots/Front%20Door.jpg"`)
	assert.Contains(t, html, `src="snapshots/Lobby.jpg"`)
	assert.Contains(t, html, "Q2AB-0001")
	// Stable order by display name.
	assert.Less(t, strings.Index(html, "Front Door"), strings.Index(html, "Lobby"))
}

func TestRenderSkipsCamerasWithoutDownload(t *testing.T) {
	cams := map[string]*collector.Record{
		"Q2AB-0001": {Serial: "Q2AB-0001", Name: "Front Door", LocalPath: "snapshots/Front Door.jpg"},
		"Q2AB-0002": {Serial: "Q2AB-0002", Name: "Lobby"}, // never downloaded
	}
	dest := filepath.Join(t.TempDir(), "index.html")

	require.NoError(t, Render(cams, "snapshots", dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Lobby")
	assert.Contains(t, string(data), "1 camera(s)")
}

func TestRenderUnnamedCamera(t *testing.T) {
	cams := map[string]*collector.Record{
		"Q2AB-0001": {Serial: "Q2AB-0001", LocalPath: "snapshots/No Name Set.jpg"},
	}
	dest := filepath.Join(t.TempDir(), "index.html")

	require.NoError(t, Render(cams, "snapshots", dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), `src="snapshots/No%20Name%20Set.jpg"`)
}
