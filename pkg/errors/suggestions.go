package errors

import (
	"runtime"
	"sort"
)

// ContextOS is the context key holding the operating system.
const ContextOS = "os"

// Suggestion is a remediation hint. Conditions must all match the error
// context for the suggestion to apply.
type Suggestion struct {
	Text       string
	Conditions map[string]string
	Priority   int
}

// Matches reports whether every condition is present in ctx.
func (s Suggestion) Matches(ctx map[string]string) bool {
	for k, v := range s.Conditions {
		if ctx[k] != v {
			return false
		}
	}
	return true
}

// Registry maps error codes to suggestions.
type Registry struct {
	byCode map[string][]Suggestion
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byCode: make(map[string][]Suggestion)}
}

// Register adds an unconditional suggestion for code.
func (r *Registry) Register(code, text string) *Registry {
	return r.add(code, Suggestion{Text: text})
}

// RegisterWithCondition adds a suggestion that applies only when conditions match.
func (r *Registry) RegisterWithCondition(code, text string, conditions map[string]string) *Registry {
	return r.add(code, Suggestion{Text: text, Conditions: conditions})
}

// RegisterWithPriority adds a suggestion shown before lower priorities.
func (r *Registry) RegisterWithPriority(code, text string, priority int) *Registry {
	return r.add(code, Suggestion{Text: text, Priority: priority})
}

func (r *Registry) add(code string, s Suggestion) *Registry {
	r.byCode[code] = append(r.byCode[code], s)
	return r
}

// Get returns the suggestions for code that match ctx, highest priority first.
func (r *Registry) Get(code string, ctx map[string]string) []string {
	var matched []Suggestion
	for _, s := range r.byCode[code] {
		if s.Matches(ctx) {
			matched = append(matched, s)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Priority > matched[j].Priority })

	out := make([]string, 0, len(matched))
	for _, s := range matched {
		out = append(out, s.Text)
	}
	return out
}

// HasSuggestions reports whether any suggestion is registered for code.
func (r *Registry) HasSuggestions(code string) bool {
	return len(r.byCode[code]) > 0
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the registry used by AttachSuggestions.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

func init() {
	defaultRegistry.
		Register(ErrConfigParseFailed, "Compare the file with the output of 'carboniq init'").
		Register(ErrConfigInvalid, "Delete the offending key to fall back to its default").
		Register(ErrConfigWriteFailed, "Check write permissions on the config directory").
		Register(ErrRequestInvalidType, "Valid types are monthly, quarterly, annual and custom").
		Register(ErrRequestInvalidPeriod, "Dates use the YYYY-MM-DD format").
		Register(ErrRequestInvalidRecipient, "Set distribution.recipients in carboniq.yaml or CARBONIQ_RECIPIENTS").
		Register(ErrRenderUnsupportedFormat, "Set output.format in carboniq.yaml or pass --format").
		RegisterWithPriority(ErrSinkDownloadFailed, "Check that the output directory is writable", 1).
		Register(ErrSinkDownloadFailed, "Pass --out to write somewhere else").
		RegisterWithCondition(ErrSinkDownloadFailed, "Close the report if it is open in a PDF viewer",
			map[string]string{ContextOS: "windows"}).
		Register(ErrSinkClipboardFailed, "Copy the link printed above by hand").
		Register(ErrInputAborted, "Pass --name and --type to generate without the form")
}

// AttachSuggestions appends the registered suggestions for err's code,
// skipping ones already present. The current OS is added to the match context.
func AttachSuggestions(err *ReportError) *ReportError {
	if err == nil {
		return nil
	}
	ctx := map[string]string{ContextOS: runtime.GOOS}
	for k, v := range err.Context {
		ctx[k] = v
	}

	seen := make(map[string]bool, len(err.Suggestions))
	for _, s := range err.Suggestions {
		seen[s] = true
	}
	for _, s := range defaultRegistry.Get(err.Code, ctx) {
		if !seen[s] {
			err.Suggestions = append(err.Suggestions, s)
			seen[s] = true
		}
	}
	return err
}
