package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/funvibe/fixed/internal/calc"
	"github.com/funvibe/fixed/internal/config"
	"github.com/funvibe/fixed/internal/store"
	"github.com/mattn/go-isatty"
)

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiDim   = "\x1b[2m"
	ansiGreen = "\x1b[32m"
)

func colorEnabled() bool {
	if _, ok := os.LookupEnv(config.EnvNoColor); ok {
		return false
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

type printer struct {
	w     io.Writer
	color bool
}

func newPrinter(w io.Writer, color bool) *printer {
	return &printer{w: w, color: color}
}

func (p *printer) style(code, s string) string {
	if !p.color {
		return s
	}
	return code + s + ansiReset
}

func (p *printer) results(results []calc.Result) {
	for i, r := range results {
		fmt.Fprintf(p.w, "%2d  %-13s %s\n", i, r.Name, p.style(ansiGreen, formatValue(r.Value)))
	}
}

func (p *printer) trace(a calc.Aggregator) {
	t, ok := a.(calc.Tracer)
	if !ok {
		return
	}
	trace, err := t.Trace()
	if err != nil {
		fmt.Fprintf(p.w, "    %-13s %v\n", a.Name(), err)
		return
	}
	parts := make([]string, 0, len(trace))
	for _, v := range trace {
		parts = append(parts, formatValue(v))
	}
	fmt.Fprintf(p.w, "    %-13s %s\n", a.Name(), p.style(ansiDim, strings.Join(parts, " ")))
}

func (p *printer) total(total float64) {
	fmt.Fprintf(p.w, "%s %s\n", p.style(ansiBold, "total"), p.style(ansiBold, formatValue(total)))
}

func (p *printer) history(runs []store.Run) {
	for _, r := range runs {
		fmt.Fprintf(p.w, "%s  %s  %-20s %s\n",
			p.style(ansiDim, r.ID.String()),
			r.Started.Format(time.RFC3339),
			r.Source,
			formatValue(r.Total))
	}
}

func formatValue(v float64) string {
	return fmt.Sprintf("%.6g", v)
}
