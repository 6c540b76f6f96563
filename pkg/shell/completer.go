package shell

import (
	"strings"

	"github.com/chzyer/readline"

	"github.com/Arthva-Tech/carbon-iq-insights/pkg/metrics"
)

// TypeCompleter completes report type names.
type TypeCompleter struct{}

var _ readline.AutoCompleter = TypeCompleter{}

// Do implements readline.AutoCompleter. Candidates are returned as the
// suffixes that follow the text before the cursor.
func (TypeCompleter) Do(line []rune, pos int) ([][]rune, int) {
	if pos > len(line) {
		pos = len(line)
	}
	if pos < 0 {
		pos = 0
	}
	prefix := strings.ToLower(strings.TrimLeft(string(line[:pos]), " "))

	var out [][]rune
	for _, t := range metrics.ReportTypes() {
		name := string(t)
		if strings.HasPrefix(name, prefix) {
			out = append(out, []rune(name[len(prefix):]))
		}
	}
	return out, len([]rune(prefix))
}
