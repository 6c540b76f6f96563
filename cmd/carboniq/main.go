// carboniq generates the Carbon IQ Insights ESG sustainability report.
//
// Usage:
//
//	carboniq generate --name "Q3 2024 ESG Report" --type quarterly
//	carboniq preview --name "Q3 2024 ESG Report" --type quarterly
//	carboniq share "Q2 2024 ESG Report"
//	carboniq workbook --recent "Q2 2024 ESG Report"
//	carboniq init
package main

import (
	"os"

	"github.com/Arthva-Tech/carbon-iq-insights/pkg/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(cli.Execute(cli.Options{
		Version: version,
		Commit:  commit,
		Date:    date,
	}))
}
