package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/next-trace/scg-exception/exception"
	"github.com/next-trace/scg-exception/render"
	"github.com/next-trace/scg-exception/report"
)

type buildFlags struct {
	message    string
	causes     []string
	codes      []string
	params     []string
	id         string
	status     int
	statusText string
	path       string
	session    string
	format     string
}

func newBuildCmd(a *app) *cobra.Command {
	f := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a report from a message and its causes",
		Example: `  excore build --message "login failed" --code FOO_02="Users account has been locked." \
    --cause "upstream failed with id d99306bc-4b04-4a34-b7e7-f5554383f570" --status 401`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.build(f)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.message, "message", "", "message of the outermost error")
	fl.StringArrayVar(&f.causes, "cause", nil, "cause text, outermost first (repeatable)")
	fl.StringArrayVar(&f.codes, "code", nil, "classification code as CODE=description (repeatable)")
	fl.StringArrayVar(&f.params, "param", nil, "parameter as key=value (repeatable)")
	fl.StringVar(&f.id, "id", "", "exception id (generated when empty)")
	fl.IntVar(&f.status, "status", 0, "HTTP status code")
	fl.StringVar(&f.statusText, "status-text", "", "HTTP status description")
	fl.StringVar(&f.path, "path", "", "request path")
	fl.StringVar(&f.session, "session", "", "session id")
	fl.StringVar(&f.format, "format", "", "output format: json or yaml (default from config)")

	return cmd
}

func (a *app) build(f *buildFlags) error {
	format, err := render.ParseFormat(firstNonEmpty(f.format, a.cfg.Format))
	if err != nil {
		return err
	}

	opts := []exception.Option{exception.WithID(f.id)}

	for _, raw := range f.codes {
		code, desc, _ := strings.Cut(raw, "=")
		if code == "" {
			return fmt.Errorf("invalid --code %q: want CODE=description", raw)
		}

		opts = append(opts, exception.WithCode(exception.NewCode(code, desc)))
	}

	for _, raw := range f.params {
		key, value, ok := strings.Cut(raw, "=")
		if !ok || key == "" {
			return fmt.Errorf("invalid --param %q: want key=value", raw)
		}

		opts = append(opts, exception.WithParam(key, value))
	}

	err = exception.Wrap(causeChain(f.causes), f.message, opts...)

	b := report.New(a.cfg.Application, err, report.WithMaxDepth(a.cfg.MaxChainDepth)).
		WithHelpLink(a.cfg.HelpLink).
		WithPath(f.path).
		WithSessionID(f.session)

	if f.status != 0 {
		b.WithHTTPStatus(f.status, f.statusText)
	}

	r := b.Build()

	a.logger.Debug().Object("report", r).Msg("report built")

	return render.Encode(a.out, r, format)
}

// causeError is a plain error node carrying free text, so correlation ids embedded
// in it are found by scanning.
type causeError struct {
	msg   string
	cause error
}

func (e *causeError) Error() string { return e.msg }
func (e *causeError) Unwrap() error { return e.cause }

// causeChain links texts outermost first. It returns nil for no texts.
func causeChain(texts []string) error {
	var err error
	for i := len(texts) - 1; i >= 0; i-- {
		err = &causeError{msg: texts[i], cause: err}
	}

	return err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
