package errors

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/term"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorDim    = "\033[90m"
	colorBold   = "\033[1m"
)

// Formatter renders errors for people rather than logs.
type Formatter struct {
	// UseColor enables ANSI color codes in output.
	UseColor bool

	// Writer is the output destination. Defaults to os.Stderr.
	Writer io.Writer

	// Indent prefixes context, cause and suggestion lines.
	Indent string
}

// DefaultFormatter returns a Formatter for stderr, colored when stderr is a terminal.
func DefaultFormatter() *Formatter {
	return &Formatter{
		UseColor: IsTTY(os.Stderr),
		Writer:   os.Stderr,
		Indent:   "  ",
	}
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Format renders err using the default formatter.
func Format(err error) string {
	return DefaultFormatter().Format(err)
}

// Format renders err. ReportErrors get their code, context, cause and
// suggestions; any other error is printed on a single line.
func (f *Formatter) Format(err error) string {
	if err == nil {
		return ""
	}
	re, ok := AsReportError(err)
	if !ok {
		return f.paint(colorRed, "Error: ") + err.Error()
	}

	var sb strings.Builder
	sb.WriteString(f.paint(colorRed+colorBold, "ERROR"))
	sb.WriteString(f.paint(colorRed, " ["+re.Code+"]: "))
	sb.WriteString(re.Message)
	sb.WriteString("\n")

	if re.HasContext() {
		keys := make([]string, 0, len(re.Context))
		for k := range re.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, "%s%s %s\n", f.Indent, f.paint(colorYellow, k+":"), re.Context[k])
		}
	}

	if re.Cause != nil {
		fmt.Fprintf(&sb, "%s%s\n", f.Indent, f.paint(colorDim, "cause: "+re.Cause.Error()))
	}

	if re.HasSuggestions() {
		fmt.Fprintf(&sb, "%s%s\n", f.Indent, f.paint(colorCyan, "Try:"))
		for _, s := range re.Suggestions {
			fmt.Fprintf(&sb, "%s%s- %s\n", f.Indent, f.Indent, s)
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

func (f *Formatter) paint(color, s string) string {
	if !f.UseColor {
		return s
	}
	return color + s + colorReset
}

// Display writes the formatted error to the formatter's writer.
func (f *Formatter) Display(err error) {
	if err == nil {
		return
	}
	w := f.Writer
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintln(w, f.Format(err))
}

// Display writes err to stderr using the default formatter.
func Display(err error) {
	DefaultFormatter().Display(err)
}

// Sprint formats err as plain text with no color codes.
func Sprint(err error) string {
	f := &Formatter{UseColor: false, Indent: "  "}
	return f.Format(err)
}

// CategoryLabel returns a human-readable label for a category.
func CategoryLabel(c Category) string {
	switch c {
	case CategoryConfig:
		return "Configuration"
	case CategoryValidation:
		return "Missing Information"
	case CategoryRender:
		return "Layout"
	case CategorySink:
		return "Delivery"
	case CategoryIO:
		return "File System"
	case CategoryInternal:
		return "Internal"
	default:
		return "Error"
	}
}
