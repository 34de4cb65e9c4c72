package schema

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Option configures loading.
type Option func(*loader)

type loader struct {
	registry *Registry
	keys     form.KeyFormat
}

// WithRegistry sets the registry resolving validator types and named
// conditions. A fresh NewRegistry is used otherwise.
func WithRegistry(r *Registry) Option {
	return func(l *loader) {
		if r != nil {
			l.registry = r
		}
	}
}

// WithKeyFormat overrides the key format parts declared by schemas. Empty
// parts of k leave the schema value in place.
func WithKeyFormat(k form.KeyFormat) Option {
	return func(l *loader) {
		l.keys = k
	}
}

func newLoader(opts []Option) *loader {
	l := &loader{}
	for _, opt := range opts {
		opt(l)
	}
	if l.registry == nil {
		l.registry = NewRegistry()
	}
	return l
}

// Load decodes one YAML form schema and returns the checked form
// configuration.
func Load(ctx context.Context, data []byte, opts ...Option) (*form.FormConfig, error) {
	return newLoader(opts).load(ctx, data)
}

// LoadFile reads and decodes the schema at path.
func LoadFile(ctx context.Context, path string, opts ...Option) (*form.FormConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	cfg, err := Load(ctx, data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadDir decodes every .yaml and .yml file in dir, keyed by form name.
func LoadDir(ctx context.Context, dir string, opts ...Option) (map[string]*form.FormConfig, error) {
	return LoadFS(ctx, os.DirFS(dir), ".", opts...)
}

// LoadFS is LoadDir over any fs.FS, such as an embed.FS. Subdirectories are
// not descended into.
func LoadFS(ctx context.Context, fsys fs.FS, dir string, opts ...Option) (map[string]*form.FormConfig, error) {
	l := newLoader(opts)
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read schema dir: %w", err)
	}

	forms := make(map[string]*form.FormConfig)
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ext := strings.ToLower(path.Ext(e.Name()))
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", e.Name(), err)
		}
		cfg, err := l.load(ctx, data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		if _, dup := forms[cfg.Name]; dup {
			return nil, fmt.Errorf("%s: %w: %q", e.Name(), ErrDuplicateForm, cfg.Name)
		}
		forms[cfg.Name] = cfg
	}
	if len(forms) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSchemas, dir)
	}
	return forms, nil
}

func (l *loader) load(ctx context.Context, data []byte) (*form.FormConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidSchema)
		}
		return nil, errors.Join(ErrInvalidSchema, err)
	}

	cfg := &form.FormConfig{
		Name:         doc.Form,
		Keys:         overrideKeys(doc.Keys, l.keys),
		CustomErrors: doc.CustomErrors,
		Groups:       make([]form.GroupConfig, 0, len(doc.Groups)),
	}
	b := &builder{registry: l.registry}
	for _, gd := range doc.Groups {
		gc, err := b.group(gd)
		if err != nil {
			return nil, fmt.Errorf("form %q: %w", doc.Form, err)
		}
		cfg.Groups = append(cfg.Groups, gc)
	}

	if err := cfg.Check(); err != nil {
		return nil, errors.Join(ErrInvalidSchema, err)
	}
	return cfg, nil
}

func (b *builder) group(gd groupDoc) (form.GroupConfig, error) {
	gc := form.GroupConfig{
		Name:        gd.Name,
		Abbrev:      orDefault(gd.Abbrev, gd.Name),
		DisplayName: orDefault(gd.Display, DisplayName(gd.Name)),
		Repeatable:  gd.Repeatable,
		Instances:   gd.Instances,
		Fields:      make([]form.FieldConfig, 0, len(gd.Fields)),
	}
	for _, fd := range gd.Fields {
		nodes := make([]*yaml.Node, len(fd.Validators))
		for i := range fd.Validators {
			nodes[i] = &fd.Validators[i]
		}
		templates, err := b.validators(nodes)
		if err != nil {
			return gc, fmt.Errorf("group %q field %q: %w", gd.Name, fd.Name, err)
		}
		fc, err := form.NewFieldConfig(validator.FieldConfig{
			Name:        fd.Name,
			Abbrev:      orDefault(fd.Abbrev, fd.Name),
			DisplayName: orDefault(fd.Display, DisplayName(fd.Name)),
			Defaults:    fd.Defaults,
			Attrs:       fd.Attrs,
		}, templates...)
		if err != nil {
			return gc, fmt.Errorf("group %q: %w", gd.Name, err)
		}
		gc.Fields = append(gc.Fields, fc)
	}
	return gc, nil
}

func overrideKeys(doc, override form.KeyFormat) form.KeyFormat {
	doc.Prefix = orDefault(override.Prefix, doc.Prefix)
	doc.Separator = orDefault(override.Separator, doc.Separator)
	doc.AbsentSuffix = orDefault(override.AbsentSuffix, doc.AbsentSuffix)
	doc.AttachmentSuffix = orDefault(override.AttachmentSuffix, doc.AttachmentSuffix)
	return doc.WithDefaults()
}
