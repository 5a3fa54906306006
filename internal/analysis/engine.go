package analysis

import (
	"log"
	"time"

	"github.com/dustin/go-humanize"
)

// DefaultLogEvery is how many records pass between progress log lines
const DefaultLogEvery = 1000

// Progress tracks a sequential pass over records and logs it periodically
type Progress struct {
	Name      string // log prefix, e.g. "PathCorrector"
	Total     int    // Total number of records to process
	Processed int    // Number of records processed
	Failed    int    // Number of failed records
	LogEvery  int

	start time.Time
}

// NewProgress creates a progress tracker for a pass over total records
func NewProgress(name string, total, logEvery int) *Progress {
	if logEvery <= 0 {
		logEvery = DefaultLogEvery
	}
	return &Progress{
		Name:     name,
		Total:    total,
		LogEvery: logEvery,
		start:    time.Now(),
	}
}

// Tick records one processed record
func (p *Progress) Tick(failed bool) {
	p.Processed++
	if failed {
		p.Failed++
	}
	if p.Processed%p.LogEvery == 0 {
		log.Printf("[%s] Processed %s/%s (%.1f%%, %d failed)",
			p.Name, humanize.Comma(int64(p.Processed)), humanize.Comma(int64(p.Total)), p.Percent(), p.Failed)
	}
}

// Percent returns progress percentage (0-100)
func (p *Progress) Percent() float64 {
	if p.Total <= 0 {
		return 100
	}
	return float64(p.Processed) / float64(p.Total) * 100.0
}

// Elapsed returns the time since the pass started
func (p *Progress) Elapsed() time.Duration {
	return time.Since(p.start)
}

// Done logs the final tally
func (p *Progress) Done() {
	log.Printf("[%s] Completed: %s records processed, %d failed in %v",
		p.Name, humanize.Comma(int64(p.Processed)), p.Failed, p.Elapsed().Round(time.Millisecond))
}
