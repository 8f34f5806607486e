// Package healthcheck runs dependency checks in a fixed order and prints
// one line per outcome. A failing check never stops the run.
package healthcheck

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aucos/health-check/pkg/check"
	"github.com/aucos/health-check/pkg/output"
)

// CompletedMessage is printed after the last probe.
const CompletedMessage = "Health check completed."

// Probe is one step of the run.
type Probe struct {
	Title string        // shown as "Testing <Title>..."
	Check check.Checker
	// Skip, when set and returning true, replaces the run with its reason.
	Skip func() (reason string, skip bool)
}

// Report collects the results of a run in probe order.
type Report struct {
	Results []check.Result
}

// Count returns the number of results with the given status.
func (r Report) Count(status check.Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}

// Runner executes probes sequentially.
type Runner struct {
	Probes  []Probe
	Printer *output.Printer
	Log     zerolog.Logger
}

// Run executes every probe, prints each outcome and the completion line.
func (r *Runner) Run(ctx context.Context) Report {
	var report Report

	for _, p := range r.Probes {
		if p.Skip != nil {
			if reason, skip := p.Skip(); skip {
				res := check.Result{Name: p.Title}
				res.Skip(reason)
				r.Printer.PrintResult(res)
				r.Log.Debug().Str("probe", p.Title).Msg("probe skipped")
				report.Results = append(report.Results, res)
				continue
			}
		}

		r.Printer.Line(fmt.Sprintf("Testing %s...", p.Title))
		start := time.Now()
		res := runSafely(ctx, p)
		r.Printer.PrintResult(res)

		r.Log.Debug().
			Str("probe", p.Title).
			Str("status", string(res.Status)).
			Dur("duration", time.Since(start)).
			AnErr("error", res.Err).
			Msg("probe finished")
		report.Results = append(report.Results, res)
	}

	r.Printer.Info(CompletedMessage)
	r.Log.Info().
		Int("ok", report.Count(check.StatusOK)).
		Int("failed", report.Count(check.StatusFail)).
		Int("skipped", report.Count(check.StatusSkip)).
		Msg("health check completed")

	return report
}

// runSafely turns a panicking check into a failed result.
func runSafely(ctx context.Context, p Probe) (res check.Result) {
	defer func() {
		if rec := recover(); rec != nil {
			res = check.Result{Name: p.Title}
			res.Fail(fmt.Sprintf("%s failed:", p.Title), fmt.Errorf("panic: %v", rec))
		}
	}()
	return p.Check.Run(ctx)
}
