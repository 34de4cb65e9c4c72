// Package api exposes the loaded form schemas over HTTP. Each submission is
// bound to a fresh form, validated and answered with the rendered errors in
// the negotiated language.
package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/formkit/pkg/binder"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/i18n"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

// Option configures the handler.
type Option func(*handler)

// WithLogger sets the logger for request and form tracing.
func WithLogger(l *slog.Logger) Option {
	return func(h *handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithBinderOptions sets the request body limits.
func WithBinderOptions(opts ...binder.Option) Option {
	return func(h *handler) {
		h.bindOpts = append(h.bindOpts, opts...)
	}
}

// WithRegistry registers the submission metrics with reg and serves it on
// /metrics. A private registry is used by default.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(h *handler) {
		if reg != nil {
			h.registry = reg
		}
	}
}

type handler struct {
	forms      map[string]*form.FormConfig
	names      []string
	translator *i18n.Translator
	logger     *slog.Logger
	bindOpts   []binder.Option
	registry   *prometheus.Registry
	metrics    *metrics
}

// NewHandler returns the router serving forms:
//
//	GET  /healthz       liveness probe
//	GET  /forms         names of the loaded forms
//	POST /forms/{form}  validate a submission
//	GET  /metrics       Prometheus metrics
//
// A submission answers 200 when valid and 422 with the rendered errors
// otherwise.
func NewHandler(forms map[string]*form.FormConfig, tr *i18n.Translator, opts ...Option) (http.Handler, error) {
	if tr == nil {
		return nil, fmt.Errorf("translator is nil")
	}
	h := &handler{
		forms:      forms,
		translator: tr,
		logger:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.registry == nil {
		h.registry = prometheus.NewRegistry()
	}
	h.metrics = newMetrics(h.registry)
	for name := range forms {
		h.names = append(h.names, name)
	}
	slices.Sort(h.names)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(i18n.Middleware(tr))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.writeError(w, r, ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		h.writeError(w, r, ErrMethodNotAllowed)
	})

	r.Get("/healthz", h.health)
	r.Get("/forms", h.list)
	r.Post("/forms/{form}", h.submit)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{}))
	return r, nil
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, Response{Data: map[string]string{"status": "ok"}})
}

func (h *handler) list(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, Response{Data: map[string]any{
		"forms":     h.names,
		"languages": h.translator.SupportedLanguages(),
	}})
}

func (h *handler) submit(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	name := chi.URLParam(r, "form")
	cfg, ok := h.forms[name]
	if !ok {
		h.writeError(w, r, fmt.Errorf("%w: form %q", ErrNotFound, name))
		return
	}

	req, err := binder.FromRequest(r, h.bindOpts...)
	if err != nil {
		h.writeError(w, r, fmt.Errorf("%w: %w", bindError(err), err))
		return
	}

	log := h.logger.With(logger.RequestID(middleware.GetReqID(r.Context())))
	f, err := form.New(cfg, form.WithLogger(log), form.WithMessageProvider(h.translator))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	lang := i18n.GetLocale(r.Context())
	res := Submission{
		Form:   name,
		Valid:  f.Init(req),
		Lang:   lang,
		Values: make(map[string][]string),
		Errors: []FieldError{},
	}
	for _, g := range f.Groups() {
		for _, field := range g.Fields() {
			res.Values[field.Key()] = field.Values()
		}
	}
	for _, fe := range f.Errors() {
		rendered, err := h.render(lang, f, fe)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		res.Errors = append(res.Errors, rendered)
	}

	h.metrics.observe(name, res.Valid, started)
	log.InfoContext(r.Context(), "submission validated",
		logger.Form(name),
		logger.Valid(res.Valid),
		logger.Language(lang),
		logger.Count("errors", len(res.Errors)),
	)

	status := http.StatusOK
	if !res.Valid {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, Response{Data: res})
}

// render renders one failed field. A field rejected without a message keeps
// an empty text. A message that resolves to no template fails the request,
// since the catalogue and the schemas have drifted apart.
func (h *handler) render(lang string, f *form.Form, fe form.FieldError) (FieldError, error) {
	out := FieldError{
		Key:      fe.Key,
		Group:    fe.Group,
		Instance: fe.Instance,
		Field:    fe.Field,
		ID:       fe.Message.ID,
	}
	if fe.Message.IsZero() {
		return out, nil
	}
	field, err := f.Field(fe.Key)
	if err != nil {
		return out, fmt.Errorf("render %q: %w", fe.Key, err)
	}
	text, err := h.translator.Render(lang, fe.Message, field.MessageContext())
	if err != nil {
		return out, fmt.Errorf("render %q in %q: %w", fe.Key, lang, err)
	}
	out.Message = text
	return out, nil
}
