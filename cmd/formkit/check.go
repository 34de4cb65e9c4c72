package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formkit/internal/catalog"
	"github.com/dmitrymomot/formkit/pkg/binder"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/schema"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check SCHEMA [KEY=VALUE...]",
		Short: "Validate one submission against a schema file",
		Long: `Loads the schema, binds the KEY=VALUE pairs as a submission and prints the
rendered error of every failed field. Repeat a key to submit several values.
Exits with status 1 when the submission is invalid.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCheck,
	}
	cmd.Flags().BoolP("verbose", "v", false, "Log form tracing to stderr")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := logger.Discard()
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		log = cfg.Logger(cmd.ErrOrStderr())
	}

	values, err := parsePairs(args[1:])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	fc, err := schema.LoadFile(ctx, args[0], schema.WithKeyFormat(cfg.KeyFormat()))
	if err != nil {
		return err
	}
	tr, err := catalog.NewTranslator(ctx, log, cfg.DefaultLanguage, cfg.Messages...)
	if err != nil {
		return err
	}
	f, err := form.New(fc, form.WithLogger(log), form.WithMessageProvider(tr))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if f.Init(binder.FromValues(values)) {
		fmt.Fprintf(out, "%s: valid\n", fc.Name)
		return nil
	}

	lang := tr.DefaultLanguage()
	for _, fe := range f.Errors() {
		text := "invalid"
		if !fe.Message.IsZero() {
			field, err := f.Field(fe.Key)
			if err != nil {
				return err
			}
			if text, err = tr.Render(lang, fe.Message, field.MessageContext()); err != nil {
				return err
			}
		}
		fmt.Fprintf(out, "%s: %s\n", fe.Key, text)
	}
	return errInvalid
}

// parsePairs turns KEY=VALUE arguments into submission values.
func parsePairs(pairs []string) (url.Values, error) {
	values := make(url.Values, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid argument %q: expected KEY=VALUE", p)
		}
		values.Add(key, value)
	}
	return values, nil
}
