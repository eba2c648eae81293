package pulselib

import (
	"fmt"
	"time"
)

// Reporter decides when a report is due and hands it to a sink.
//
// On every timer firing a report is emitted if at least threshold bytes
// were moved since the previous report. Otherwise bytes accumulate towards
// the next firing. Threshold 0 means that every firing produces a report.
type Reporter struct {
	sink      ReportSink
	threshold uint64
	acct      Accounting
	now       func() time.Time

	lastThroughput float64
}

// Add accounts moved bytes.
func (r *Reporter) Add(n uint64) {
	r.acct.Add(n)
}

// Accounting returns current counters.
func (r *Reporter) Accounting() *Accounting {
	return &r.acct
}

// LastThroughput returns throughput of the last reported period.
func (r *Reporter) LastThroughput() float64 {
	return r.lastThroughput
}

// Fire handles expirations of the interval timer. It returns an emitted
// report and true if a report was due. Error means that the sink failed;
// period is reset anyway.
func (r *Reporter) Fire(expirations uint64) (ReportEvent, bool, error) {
	if expirations == 0 || r.acct.Period() < r.threshold {
		return ReportEvent{}, false, nil
	}

	return r.emit()
}

// Flush is called once when transfer loop is finished. A tail of the
// period is reported even if it is below threshold.
func (r *Reporter) Flush() (ReportEvent, bool, error) {
	if r.acct.Period() == 0 && r.threshold > 0 {
		return ReportEvent{}, false, nil
	}

	return r.emit()
}

func (r *Reporter) emit() (ReportEvent, bool, error) {
	report, throughput := r.acct.closePeriod(r.now())
	r.lastThroughput = throughput

	if err := r.sink.Report(report); err != nil {
		return report, true, fmt.Errorf("cannot write report: %w", err)
	}

	return report, true, nil
}

// NewReporter creates a reporter with zero counters.
func NewReporter(sink ReportSink, threshold uint64) *Reporter {
	return &Reporter{
		sink:      sink,
		threshold: threshold,
		acct:      newAccounting(time.Now()),
		now:       time.Now,
	}
}
