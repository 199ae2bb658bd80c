package trust

import (
	"fmt"
	"strings"
)

// RenderReport formats a completed analysis as a markdown document.
func RenderReport(req AnalysisRequest, res Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Trust Report: %s\n\n", req.Subject)
	fmt.Fprintf(&b, "**Trust score:** %.1f/100\n\n", res.Score)
	fmt.Fprintf(&b, "## Details\n\n%s\n", res.Details)

	if res.Log != nil && res.Log.Len() > 0 {
		fmt.Fprintf(&b, "\n---\n\n## Evidence (%d iterations)\n", res.Log.Len())
		for i, search := range res.Log.Searches {
			fmt.Fprintf(&b, "\n### Iteration %d\n\n", i+1)
			for _, chunk := range search {
				fmt.Fprintf(&b, "- %s\n", chunk)
			}
		}
		if len(res.Log.Whys) > 0 {
			b.WriteString("\n## Disagreements\n")
			for i, whys := range res.Log.Whys {
				fmt.Fprintf(&b, "\n### Round %d\n\n", i+1)
				for _, why := range whys {
					fmt.Fprintf(&b, "- %s\n", why)
				}
			}
		}
	}
	return b.String()
}
