package pulselib

import "time"

// Accounting keeps running counters of moved bytes. It is owned by the
// transfer loop and is not safe for concurrent use.
type Accounting struct {
	total  uint64
	period uint64

	startTime   time.Time
	periodStart time.Time

	// Пиковый throughput среди закрытых периодов, bytes/sec.
	peakThroughput float64
}

// Add accounts bytes accepted by the output.
func (a *Accounting) Add(n uint64) {
	a.total += n
	a.period += n
}

// Total returns a number of bytes moved since start.
func (a *Accounting) Total() uint64 {
	return a.total
}

// Period returns a number of bytes moved since the last report.
func (a *Accounting) Period() uint64 {
	return a.period
}

// Throughput returns an average throughput since start in bytes/sec.
func (a *Accounting) Throughput(now time.Time) float64 {
	return bytesPerSecond(a.total, now.Sub(a.startTime))
}

// PeakThroughput returns the best period throughput seen so far.
func (a *Accounting) PeakThroughput() float64 {
	return a.peakThroughput
}

// closePeriod снимает срез счётчиков для отчёта и обнуляет период.
func (a *Accounting) closePeriod(now time.Time) (ReportEvent, float64) {
	report := ReportEvent{
		PeriodBytes: a.period,
		TotalBytes:  a.total,
	}
	throughput := bytesPerSecond(a.period, now.Sub(a.periodStart))

	if throughput > a.peakThroughput {
		a.peakThroughput = throughput
	}

	a.period = 0
	a.periodStart = now

	return report, throughput
}

func bytesPerSecond(bytes uint64, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}

	return float64(bytes) / elapsed.Seconds()
}

func newAccounting(now time.Time) Accounting {
	return Accounting{
		startTime:   now,
		periodStart: now,
	}
}
