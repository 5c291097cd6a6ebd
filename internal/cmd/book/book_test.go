package book

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/htmls2epub/cli/internal/book"
	"github.com/htmls2epub/cli/internal/cmdtypes"
	"github.com/htmls2epub/cli/internal/config"
	herrors "github.com/htmls2epub/cli/internal/errors"
	"github.com/htmls2epub/cli/internal/testutil"
)

func testConfig() *cmdtypes.GlobalConfig {
	return &cmdtypes.GlobalConfig{Config: &config.Config{}, Loader: config.NewLoader()}
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *herrors.ExitError
	require.True(t, errors.As(err, &exitErr), "expected *ExitError, got %T", err)
	return exitErr.Code
}

func TestBuildCmd(t *testing.T) {
	in := testutil.WriteBook(t, testutil.SampleManifest)
	out := t.TempDir()

	var stdout bytes.Buffer
	c := NewBuildCmd(testConfig())
	c.SetOut(&stdout)
	c.SetArgs([]string{in, "-d", out, "--output-file", "sample.epub", "--title", "Flag Title"})

	require.NoError(t, c.Execute())

	target := filepath.Join(out, "sample.epub")
	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	assert.Contains(t, stdout.String(), "sample.epub")
	assert.Contains(t, stdout.String(), "written")

	_, err = os.Stat(filepath.Join(out, "template"))
	assert.True(t, os.IsNotExist(err), "scratch directory is removed")
}

func TestBuildCmd_Errors(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		args     func(in string) []string
		wantCode int
	}{
		{
			name:     "missing output dir",
			manifest: testutil.SampleManifest,
			args:     func(in string) []string { return []string{in} },
			wantCode: cmdtypes.ExitConfigurationError,
		},
		{
			name:     "missing manifest",
			args:     func(in string) []string { return []string{in, "-d", in} },
			wantCode: cmdtypes.ExitIOError,
		},
		{
			name:     "malformed manifest",
			manifest: `{"files": [`,
			args:     func(in string) []string { return []string{in, "-d", in} },
			wantCode: cmdtypes.ExitParseError,
		},
		{
			name: "orphan section",
			manifest: `{"files": [
			  {"filename": "ch1.html", "id": "ch1", "mediaType": "application/xhtml+xml", "order": 0, "navLevel": 0, "navLabel": "1"},
			  {"filename": "ch1a.html", "id": "ch1a", "mediaType": "application/xhtml+xml", "order": 1, "navLevel": 2, "navLabel": "x"}
			]}`,
			args:     func(in string) []string { return []string{in, "-d", in} },
			wantCode: cmdtypes.ExitStructuralError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := testutil.WriteBook(t, tt.manifest)

			c := NewBuildCmd(testConfig())
			c.SetOut(&bytes.Buffer{})
			c.SetArgs(tt.args(in))

			err := c.Execute()
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, exitCode(t, err))
		})
	}
}

func TestTocCmd_Tree(t *testing.T) {
	in := testutil.WriteBook(t, testutil.SampleManifest)

	var stdout bytes.Buffer
	c := NewTocCmd(testConfig())
	c.SetOut(&stdout)
	c.SetArgs([]string{in})

	require.NoError(t, c.Execute())

	got := stdout.String()
	assert.Contains(t, got, "Sample")
	assert.Contains(t, got, "Chapter 1")
	assert.Contains(t, got, "Section 1.1")
	assert.Contains(t, got, "Chapter 2")
}

func TestTocCmd_JSON(t *testing.T) {
	in := testutil.WriteBook(t, testutil.SampleManifest)

	var stdout bytes.Buffer
	c := NewTocCmd(testConfig())
	c.SetOut(&stdout)
	c.SetArgs([]string{in, "-o", "json"})

	require.NoError(t, c.Execute())

	var outline []struct {
		ID       string `json:"id"`
		Children []struct {
			ID string `json:"id"`
		} `json:"children"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &outline))
	require.Len(t, outline, 2)
	assert.Equal(t, "ch1", outline[0].ID)
	require.Len(t, outline[0].Children, 1)
	assert.Equal(t, "ch1a", outline[0].Children[0].ID)
	assert.Equal(t, "ch2", outline[1].ID)
}

func TestTocCmd_InvalidFormat(t *testing.T) {
	in := testutil.WriteBook(t, testutil.SampleManifest)

	c := NewTocCmd(testConfig())
	c.SetOut(&bytes.Buffer{})
	c.SetArgs([]string{in, "-o", "xml"})

	err := c.Execute()
	require.Error(t, err)
	assert.Equal(t, cmdtypes.ExitConfigurationError, exitCode(t, err))
}

func TestInitCmd(t *testing.T) {
	in := testutil.WriteBook(t, "")

	var stdout bytes.Buffer
	c := NewInitCmd(testConfig())
	c.SetOut(&stdout)
	c.SetArgs([]string{in})

	require.NoError(t, c.Execute())
	assert.Contains(t, stdout.String(), "ch1a.html")
	assert.Contains(t, stdout.String(), "Section 1.1")
	assert.Contains(t, stdout.String(), "text/css")

	data, err := os.ReadFile(filepath.Join(in, book.ManifestFile))
	require.NoError(t, err)

	m, err := book.ParseManifest(data)
	require.NoError(t, err)
	require.Len(t, m.Files, 4)
	assert.Equal(t, "ch1", m.Files[0].ID)
	assert.Equal(t, 1, *m.Files[1].NavLevel)
	assert.Equal(t, "Chapter 2", m.Files[2].Label())
	assert.False(t, m.Files[3].HasOrder(), "stylesheets stay out of the reading order")
}

func TestInitCmd_RefusesOverwrite(t *testing.T) {
	in := testutil.WriteBook(t, testutil.SampleManifest)

	c := NewInitCmd(testConfig())
	c.SetOut(&bytes.Buffer{})
	c.SetArgs([]string{in})

	err := c.Execute()
	require.Error(t, err)
	assert.Equal(t, cmdtypes.ExitConfigurationError, exitCode(t, err))

	data, err := os.ReadFile(filepath.Join(in, book.ManifestFile))
	require.NoError(t, err)
	assert.Equal(t, testutil.SampleManifest, string(data), "existing manifest is untouched")

	c = NewInitCmd(testConfig())
	c.SetOut(&bytes.Buffer{})
	c.SetArgs([]string{in, "--force"})
	require.NoError(t, c.Execute())

	data, err = os.ReadFile(filepath.Join(in, book.ManifestFile))
	require.NoError(t, err)
	assert.NotEqual(t, testutil.SampleManifest, string(data))
}

func TestInspectCmd(t *testing.T) {
	in := testutil.WriteBook(t, testutil.SampleManifest)
	out := t.TempDir()

	build := NewBuildCmd(testConfig())
	build.SetOut(&bytes.Buffer{})
	build.SetArgs([]string{in, "-d", out, "--creator", "Tester"})
	require.NoError(t, build.Execute())

	var stdout bytes.Buffer
	c := NewInspectCmd(testConfig())
	c.SetOut(&stdout)
	c.SetArgs([]string{filepath.Join(out, "output.epub")})

	require.NoError(t, c.Execute())

	got := stdout.String()
	assert.Contains(t, got, "Sample")
	assert.Contains(t, got, "Tester")
	assert.Contains(t, got, "Section 1.1")
}

func TestInspectCmd_NotAnArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.epub")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

	c := NewInspectCmd(testConfig())
	c.SetOut(&bytes.Buffer{})
	c.SetArgs([]string{path})

	err := c.Execute()
	require.Error(t, err)
	assert.Equal(t, cmdtypes.ExitArchiveError, exitCode(t, err))
}

func TestInspectCmd_RequiresPath(t *testing.T) {
	c := NewInspectCmd(testConfig())
	c.SetOut(&bytes.Buffer{})
	c.SetErr(&bytes.Buffer{})
	c.SetArgs([]string{})

	assert.Error(t, c.Execute())
}
