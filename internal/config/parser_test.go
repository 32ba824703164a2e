package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	folioerrors "github.com/zaidlab/folio/pkg/errors"
)

const minimalContent = `
version: "1.0"
profile:
  name: Test
  headline: Hello
projects:
  - title: Alpha
    summary: First project
    url: https://alpha.example.com
    tags: [Go]
    links:
      - label: Source
        url: https://github.com/example/alpha
`

func TestDefaultContentParses(t *testing.T) {
	t.Parallel()

	content := Default()
	require.Equal(t, "1.0", content.Version)
	require.Len(t, content.Projects, 4)
	require.Len(t, content.Services, 4)
	require.Equal(t, 96, content.Settings.ViewportThreshold)

	services := content.ServiceCards()
	require.Equal(t, "$85/hour", services[3].Meta["price"])
	require.Equal(t, "true", services[3].Meta["estimate"])
	_, hasEstimate := services[0].Meta["estimate"]
	require.False(t, hasEstimate)
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	t.Parallel()

	content, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default().Profile.Name, content.Profile.Name)
}

func TestParseContentFromDisk(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalContent), 0o644))

	content, err := ParseContent(path)
	require.NoError(t, err)
	require.Len(t, content.Projects, 1)

	cards := content.ProjectCards()
	require.Len(t, cards, 1)
	require.Len(t, cards[0].Links, 2)
	require.Equal(t, "Visit", cards[0].Links[0].Label)
	require.Equal(t, "https://alpha.example.com", cards[0].Links[0].URL)
	require.Equal(t, "Source", cards[0].Links[1].Label)
}

func TestParseContentMissingFile(t *testing.T) {
	t.Parallel()

	_, err := ParseContent(filepath.Join(t.TempDir(), "missing.yaml"))
	var parseErr *folioerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, 0, parseErr.Line)
}

func TestParseBytesReportsLine(t *testing.T) {
	t.Parallel()

	_, err := ParseBytes("broken.yaml", []byte("version: \"1.0\"\nprofile:\n  name: [unclosed\n"))
	var parseErr *folioerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "broken.yaml", parseErr.Path)
	require.Positive(t, parseErr.Line)
}

func TestParticleConfigOverrides(t *testing.T) {
	t.Parallel()

	settings := Settings{FPS: 60, Motion: Motion{Particles: 40, Radius: 30}}
	cfg := settings.ParticleConfig()
	require.Equal(t, 40, cfg.Count)
	require.Equal(t, 30.0, cfg.Radius)
	require.Equal(t, 60, cfg.FPS)
	require.Equal(t, 0.8, cfg.MaxStrength)
}

type yamlErr string

func (e yamlErr) Error() string { return string(e) }

func TestExtractLine(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, extractLine(nil))
	require.Equal(t, 0, extractLine(os.ErrInvalid))
	require.Equal(t, 7, extractLine(yamlErr("yaml: line 7: did not find expected key")))
}
