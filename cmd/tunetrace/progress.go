package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"tunetrace/internal/runner"
)

// newProgressPrinter renders per-unit progress. On a TTY the line is redrawn
// in place; otherwise each unit gets its own line so logs stay readable.
func newProgressPrinter(out io.Writer) func(runner.Progress) {
	tty := false
	if file, ok := out.(*os.File); ok {
		tty = isatty.IsTerminal(file.Fd())
	}

	return func(p runner.Progress) {
		status := "ok"
		if p.Err != nil {
			status = "failed"
		}
		line := fmt.Sprintf("[%d/%d] %s: %s", p.Completed, p.Total, p.Artist, status)
		if p.Completed < p.Total {
			line += fmt.Sprintf(" (eta %s)", p.ETA.Round(time.Second))
		}

		if tty {
			fmt.Fprintf(out, "\r\033[K%s", line)
			if p.Completed == p.Total {
				fmt.Fprintln(out)
			}
			return
		}
		fmt.Fprintln(out, line)
	}
}

func printSummary(out io.Writer, summary runner.Summary) {
	fmt.Fprintln(out, renderTable(
		[]string{"Processed", "Succeeded", "Failed", "Elapsed"},
		[][]string{{
			fmt.Sprintf("%d/%d", summary.Processed, summary.Total),
			fmt.Sprintf("%d", summary.Succeeded),
			fmt.Sprintf("%d", summary.Failed),
			summary.Elapsed.Round(time.Millisecond).String(),
		}},
		[]columnAlignment{alignRight, alignRight, alignRight, alignRight},
	))
}
