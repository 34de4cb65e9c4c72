package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
)

// Adapter loads a message catalogue.
type Adapter interface {
	Load(ctx context.Context) (map[string]map[string]any, error)
}

// MapAdapter serves an in-memory catalogue.
type MapAdapter struct {
	Data map[string]map[string]any
}

func (a *MapAdapter) Load(_ context.Context) (map[string]map[string]any, error) {
	if a.Data == nil {
		return make(map[string]map[string]any), nil
	}
	return a.Data, nil
}

// FileAdapter loads a single catalogue file from disk.
type FileAdapter struct {
	parser Parser
	path   string
}

// NewFileAdapter creates a FileAdapter. A nil parser selects one by the file
// extension.
func NewFileAdapter(parser Parser, path string) *FileAdapter {
	if parser == nil {
		parser = NewParserForFile(path)
	}
	return &FileAdapter{parser: parser, path: path}
}

func (a *FileAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	if a.parser == nil {
		return nil, fmt.Errorf("%w: no parser for %q", ErrNilParser, a.path)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	content, err := os.ReadFile(a.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("message file '%s' is empty", a.path)
	}

	messages, err := a.parser.Parse(ctx, content)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseFile, err)
	}
	return messages, nil
}

// FSAdapter loads and merges every catalogue file under a directory of an
// fs.FS, for example an embed.FS or os.DirFS. Files are read in lexical
// order; later files override keys of earlier ones.
type FSAdapter struct {
	parsers []Parser
	fsys    fs.FS
	dir     string
}

// NewFSAdapter creates an FSAdapter. With no parsers, YAML and JSON files are
// both accepted.
func NewFSAdapter(fsys fs.FS, dir string, parsers ...Parser) *FSAdapter {
	if len(parsers) == 0 {
		parsers = []Parser{NewYAMLParser(), NewJSONParser()}
	}
	if dir == "" {
		dir = "."
	}
	return &FSAdapter{parsers: parsers, fsys: fsys, dir: dir}
}

func (a *FSAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	if a.fsys == nil {
		return nil, errors.New("filesystem is nil")
	}

	entries, err := fs.ReadDir(a.fsys, a.dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	all := make(map[string]map[string]any)
	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		parser := a.parserFor(entry.Name())
		if parser == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadingCancelled, err)
		}

		name := path.Join(a.dir, entry.Name())
		content, err := fs.ReadFile(a.fsys, name)
		if err != nil {
			return nil, errors.Join(ErrFailedToReadFile, err)
		}
		messages, err := parser.Parse(ctx, content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, errors.Join(ErrFailedToParseFile, err))
		}
		merge(all, messages)
		loaded++
	}

	if loaded == 0 {
		return nil, fmt.Errorf("%w in '%s'", ErrNoMessageFiles, a.dir)
	}
	return all, nil
}

func (a *FSAdapter) parserFor(name string) Parser {
	ext := path.Ext(name)
	for _, p := range a.parsers {
		if ext != "" && p.SupportsFileExtension(ext) {
			return p
		}
	}
	return nil
}

// ChainAdapter merges the catalogues of several adapters. Later adapters
// override earlier ones template by template.
type ChainAdapter []Adapter

func (c ChainAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	all := make(map[string]map[string]any)
	for _, a := range c {
		if a == nil {
			return nil, ErrNilAdapter
		}
		messages, err := a.Load(ctx)
		if err != nil {
			return nil, err
		}
		merge(all, messages)
	}
	return all, nil
}

// merge copies src into dst, descending into nested maps so a later source
// only replaces the templates it defines.
func merge(dst, src map[string]map[string]any) {
	for lang, messages := range src {
		if dst[lang] == nil {
			dst[lang] = make(map[string]any, len(messages))
		}
		mergeTree(dst[lang], messages)
	}
}

func mergeTree(dst, src map[string]any) {
	for k, v := range src {
		sub, ok := v.(map[string]any)
		if !ok {
			dst[k] = v
			continue
		}
		existing, ok := dst[k].(map[string]any)
		if !ok {
			existing = make(map[string]any, len(sub))
			dst[k] = existing
		}
		mergeTree(existing, sub)
	}
}
