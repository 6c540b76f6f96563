// Package shell collects a report request interactively on the terminal.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	rerrors "github.com/Arthva-Tech/carbon-iq-insights/pkg/errors"
	"github.com/Arthva-Tech/carbon-iq-insights/pkg/metrics"
)

// LineReader is the subset of *readline.Instance the form needs.
type LineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
	Close() error
}

// Config holds form configuration.
type Config struct {
	HistoryFile string
	Stdin       io.ReadCloser
	Stdout      io.Writer
}

// field is one prompt of the form.
type field struct {
	label    string
	fallback string
	set      func(*metrics.ReportRequest, string)
}

// Form prompts for each field of a metrics.ReportRequest.
type Form struct {
	rl  LineReader
	out io.Writer
}

// New creates a form backed by readline, with tab completion of report types.
func New(cfg Config) (*Form, error) {
	out := cfg.Stdout
	if out == nil {
		out = os.Stdout
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    TypeCompleter{},
		Stdin:           cfg.Stdin,
		Stdout:          out,
	})
	if err != nil {
		return nil, rerrors.WrapIO(err, rerrors.ErrInputAborted, "failed to open terminal input")
	}
	return &Form{rl: rl, out: out}, nil
}

// NewWithReader creates a form over an existing line reader.
func NewWithReader(rl LineReader, out io.Writer) *Form {
	if out == nil {
		out = io.Discard
	}
	return &Form{rl: rl, out: out}
}

// Close releases the underlying reader.
func (f *Form) Close() error {
	return f.rl.Close()
}

func fields() []field {
	return []field{
		{label: "Report name", set: func(r *metrics.ReportRequest, v string) { r.Name = v }},
		{label: "Report type (" + typeList() + ")", set: func(r *metrics.ReportRequest, v string) { r.Type = metrics.ReportType(v) }},
		{label: "Start date", fallback: metrics.DefaultStartDate, set: func(r *metrics.ReportRequest, v string) { r.StartDate = v }},
		{label: "End date", fallback: metrics.DefaultEndDate, set: func(r *metrics.ReportRequest, v string) { r.EndDate = v }},
		{label: "Notes (optional)", set: func(r *metrics.ReportRequest, v string) { r.Notes = v }},
	}
}

// Fill prompts for every field and returns the collected request. The request
// is not validated here. Ctrl-C, EOF or a cancelled ctx abort the form with
// INPUT_ABORTED.
func (f *Form) Fill(ctx context.Context) (metrics.ReportRequest, error) {
	var req metrics.ReportRequest

	fmt.Fprintln(f.out, "Generate ESG Report")
	fmt.Fprintln(f.out, "Press Tab to complete the report type, Ctrl-C to cancel.")
	fmt.Fprintln(f.out)

	for _, fd := range fields() {
		if err := ctx.Err(); err != nil {
			return metrics.ReportRequest{}, aborted(err)
		}

		prompt := fd.label
		if fd.fallback != "" {
			prompt += " [" + fd.fallback + "]"
		}
		f.rl.SetPrompt("\033[32m" + prompt + ":\033[0m ")

		line, err := f.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				return metrics.ReportRequest{}, aborted(err)
			}
			return metrics.ReportRequest{}, rerrors.WrapIO(err, rerrors.ErrInputAborted, "failed to read input")
		}

		value := strings.TrimSpace(line)
		if value == "" {
			value = fd.fallback
		}
		fd.set(&req, value)
	}
	return req, nil
}

func aborted(cause error) error {
	return rerrors.WrapIO(cause, rerrors.ErrInputAborted, "report form cancelled")
}

func typeList() string {
	names := make([]string, 0, len(metrics.ReportTypes()))
	for _, t := range metrics.ReportTypes() {
		names = append(names, string(t))
	}
	return strings.Join(names, "/")
}
