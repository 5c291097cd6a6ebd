package cmdutil

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/htmls2epub/cli/internal/cmdtypes"
	"github.com/htmls2epub/cli/internal/config"
	"github.com/htmls2epub/cli/internal/convert"
	"github.com/htmls2epub/cli/internal/epub"
	herrors "github.com/htmls2epub/cli/internal/errors"
)

func TestSplitMetadata(t *testing.T) {
	s := config.Settings{
		Title:    config.ResolvedValue{Value: "Flag", Source: config.SourceFlag},
		Creator:  config.ResolvedValue{Value: "Env", Source: config.SourceEnv},
		Language: config.ResolvedValue{Value: "fr", Source: config.SourceConfig},
	}

	overrides, fallback := SplitMetadata(s)
	assert.Equal(t, epub.Metadata{Title: "Flag"}, overrides)
	assert.Equal(t, epub.Metadata{Creator: "Env", Language: "fr"}, fallback)
}

func memConverter(t *testing.T) (*convert.Converter, afero.Fs) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	manifest := `{"title": "Mem", "files": [
	  {"filename": "a.html", "id": "a", "mediaType": "application/xhtml+xml", "order": 0, "navLevel": 0, "navLabel": "A"}
	]}`
	require.NoError(t, afero.WriteFile(fsys, "in/htmls-to-epub.json", []byte(manifest), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "in/a.html", []byte("<html/>"), 0o644))

	c := convert.New(
		convert.WithFs(fsys),
		convert.WithClock(func() time.Time { return time.Unix(0, 0) }),
		convert.WithIDSource(func() (string, error) { return "id", nil }),
	)
	return c, fsys
}

func TestConvertBook(t *testing.T) {
	c, fsys := memConverter(t)

	res, err := ConvertBook(context.Background(), ConvertBookOpts{
		Args:      []string{"in"},
		Output:    OutputFlags{OutputDir: "out"},
		Metadata:  MetadataFlags{Creator: "Flag Creator"},
		Config:    &cmdtypes.GlobalConfig{Config: &config.Config{Book: config.BookConfig{Title: "Cfg"}}},
		Converter: c,
	})
	require.NoError(t, err)

	assert.Equal(t, "out/output.epub", res.OutputPath)
	assert.Equal(t, "Mem", res.Metadata.Title, "manifest beats config file")
	assert.Equal(t, "Flag Creator", res.Metadata.Creator)

	ok, err := afero.Exists(fsys, res.OutputPath)
	require.NoError(t, err)
	assert.True(t, ok)

	WriteBuildSummary(res)
}

func TestConvertBook_MissingOutputDir(t *testing.T) {
	c, _ := memConverter(t)

	_, err := ConvertBook(context.Background(), ConvertBookOpts{
		Args:      []string{"in"},
		Config:    &cmdtypes.GlobalConfig{Config: &config.Config{}},
		Converter: c,
	})
	require.Error(t, err)

	var exitErr *herrors.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, herrors.ExitConfigurationError, exitErr.Code)
	assert.True(t, exitErr.Printed)
}

func TestConvertBook_NoConfig(t *testing.T) {
	_, err := ConvertBook(context.Background(), ConvertBookOpts{})
	var exitErr *herrors.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, herrors.ExitGeneralError, exitErr.Code)
}

func TestFail(t *testing.T) {
	assert.NoError(t, Fail("x", nil))

	err := Fail("toc failed", herrors.Wrap(herrors.ErrStructural, "bad level"))
	var exitErr *herrors.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, herrors.ExitStructuralError, exitErr.Code)
	assert.True(t, exitErr.Printed)

	already := &herrors.ExitError{Err: errors.New("x"), Code: 9}
	assert.Same(t, already, Fail("y", already))
}
