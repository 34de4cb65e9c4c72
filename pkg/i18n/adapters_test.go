package i18n_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/i18n"
)

func TestMapAdapter(t *testing.T) {
	t.Parallel()

	data, err := (&i18n.MapAdapter{}).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestFileAdapter(t *testing.T) {
	t.Parallel()

	t.Run("loads YAML by extension", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "messages.yaml")
		require.NoError(t, os.WriteFile(path, []byte("en:\n  validation:\n    required: \"%{field} is required\"\n"), 0o600))

		data, err := i18n.NewFileAdapter(nil, path).Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "%{field} is required", data["en"]["validation"].(map[string]any)["required"])
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.NewFileAdapter(nil, filepath.Join(t.TempDir(), "none.json")).Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrFailedToReadFile)
	})

	t.Run("unknown extension", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.NewFileAdapter(nil, "messages.toml").Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrNilParser)
	})

	t.Run("empty file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "empty.json")
		require.NoError(t, os.WriteFile(path, nil, 0o600))
		_, err := i18n.NewFileAdapter(nil, path).Load(context.Background())
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := i18n.NewFileAdapter(nil, "messages.yaml").Load(ctx)
		assert.ErrorIs(t, err, i18n.ErrLoadingCancelled)
	})
}

func TestFSAdapter(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"messages/a.yaml":     {Data: []byte("en:\n  hello: Hello\n  bye: Bye\n")},
		"messages/b.json":     {Data: []byte(`{"en": {"bye": "Goodbye"}, "de": {"hello": "Hallo"}}`)},
		"messages/notes.md":   {Data: []byte("# ignored")},
		"messages/sub/c.yaml": {Data: []byte("en:\n  hello: nested dirs are skipped\n")},
	}

	t.Run("merges files in lexical order", func(t *testing.T) {
		t.Parallel()
		data, err := i18n.NewFSAdapter(fsys, "messages").Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Hello", data["en"]["hello"])
		assert.Equal(t, "Goodbye", data["en"]["bye"])
		assert.Equal(t, "Hallo", data["de"]["hello"])
	})

	t.Run("restricts parsers", func(t *testing.T) {
		t.Parallel()
		data, err := i18n.NewFSAdapter(fsys, "messages", i18n.NewYAMLParser()).Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Bye", data["en"]["bye"])
		assert.NotContains(t, data, "de")
	})

	t.Run("no message files", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.NewFSAdapter(fstest.MapFS{"x/readme.txt": {}}, "x").Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrNoMessageFiles)
	})

	t.Run("parse errors name the file", func(t *testing.T) {
		t.Parallel()
		bad := fstest.MapFS{"m/bad.json": {Data: []byte("{")}}
		_, err := i18n.NewFSAdapter(bad, "m").Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrFailedToParseFile)
		assert.Contains(t, err.Error(), "m/bad.json")
	})
}

func TestChainAdapter(t *testing.T) {
	t.Parallel()

	base := &i18n.MapAdapter{Data: map[string]map[string]any{
		"en": {"validation": map[string]any{"required": "required", "email": "bad email"}},
	}}
	override := &i18n.MapAdapter{Data: map[string]map[string]any{
		"en": {"validation": map[string]any{"email": "not an email"}},
		"de": {"validation": map[string]any{"email": "keine E-Mail"}},
	}}

	data, err := i18n.ChainAdapter{base, override}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"required": "required", "email": "not an email"}, data["en"]["validation"])
	assert.Equal(t, map[string]any{"email": "keine E-Mail"}, data["de"]["validation"])
	assert.Equal(t, "bad email", base.Data["en"]["validation"].(map[string]any)["email"])

	_, err = i18n.ChainAdapter{base, nil}.Load(context.Background())
	assert.ErrorIs(t, err, i18n.ErrNilAdapter)
}
