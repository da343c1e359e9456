// Package progress counts processed elements across batch workers.
//
// Reporting is observational only: it never affects the output tables.
package progress

import (
	"fmt"
	"os"
	"sync/atomic"

	"golang.org/x/term"

	"github.com/mereldawu/ipyhealth/internal/logging"
)

var log = logging.Component("progress")

// Counter tracks how many elements have been processed, reporting every
// interval. Workers call Add concurrently; the counter is the only state
// they share and it is atomic.
type Counter struct {
	total    int64
	interval int64
	done     atomic.Int64
	enabled  bool
	live     bool // carriage-return output on a terminal
}

// New creates a counter over total elements reporting every interval.
// Disabled counters (enabled=false) still count but never report.
func New(total int, interval int, enabled bool) *Counter {
	if interval <= 0 {
		interval = 1
	}
	return &Counter{
		total:    int64(total),
		interval: int64(interval),
		enabled:  enabled,
		live:     enabled && term.IsTerminal(int(os.Stderr.Fd())),
	}
}

// Add records n more processed elements, emitting a report when an interval
// boundary is crossed.
func (c *Counter) Add(n int) {
	done := c.done.Add(int64(n))
	if !c.enabled {
		return
	}
	if done/c.interval != (done-int64(n))/c.interval || done == c.total {
		c.report(done)
	}
}

// Done returns the number of elements processed so far.
func (c *Counter) Done() int {
	return int(c.done.Load())
}

func (c *Counter) report(done int64) {
	if c.live {
		fmt.Fprintf(os.Stderr, "\rprocessed %d/%d elements", done, c.total)
		if done >= c.total {
			fmt.Fprintln(os.Stderr)
		}
		return
	}
	log.Info("processing", "done", done, "total", c.total)
}
