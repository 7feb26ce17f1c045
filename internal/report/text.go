package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

const padWidth = 30

var statusColors = map[Status]*color.Color{
	StatusPass:     color.New(color.FgGreen),
	StatusFail:     color.New(color.FgRed, color.Bold),
	StatusError:    color.New(color.FgRed),
	StatusSkip:     color.New(color.FgYellow),
	StatusDisabled: color.New(color.FgHiBlack),
}

func colorize(s Status) string {
	if c, ok := statusColors[s]; ok {
		return c.Sprint(s.String())
	}
	return s.String()
}

// WriteText writes a human readable summary of the run. Colors follow
// color.NoColor, which is set automatically when w is not a terminal.
func (r *Results) WriteText(w io.Writer) {
	fmt.Fprintf(w, "Test results\n")
	r.walkText(w, "")
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "%s: %s\n", r.Name, colorize(r.Status))
	for i := StatusDisabled; i < StatusMax; i++ {
		pad := ""
		if len(i.String()) < padWidth {
			pad = strings.Repeat(".", padWidth-len(i.String()))
		}
		fmt.Fprintf(w, "  %s%s: %10d\n", i.String(), pad, r.Counts[i])
	}
	pad := strings.Repeat(".", padWidth-len("Total"))
	fmt.Fprintf(w, "  %s%s: %10d\n\n", "Total", pad, r.Total())
}

func (r *Results) walkText(w io.Writer, prefix string) {
	fmt.Fprintf(w, "%s%s: %s\n", prefix, r.Name, colorize(r.Status))
	if len(r.Children) == 0 {
		for _, err := range r.Errs {
			fmt.Fprintf(w, "%s - %s\n", prefix, strings.ReplaceAll(err.Error(), "\n", "\n"+prefix+"   "))
		}
	}
	for _, child := range r.Children {
		child.walkText(w, prefix+"  ")
	}
}
