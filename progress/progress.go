// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package progress

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/sealer/counter"
)

// Reporter - receives the number of nonces tried as a search advances
type Reporter interface {
	Advance(count uint64)
	Finish(elapsed time.Duration)
}

// Meter - throughput display for a running search
//
// only the search's single consumer calls Advance, so no locking; a nil
// writer keeps the count without displaying anything
type Meter struct {
	log      *logger.L
	out      io.Writer
	limiter  *rate.Limiter
	total    counter.Counter
	expected float64
	start    time.Time
	clock    func() time.Time
}

// ensure the interface is met
var _ Reporter = &Meter{}

// NewMeter - create a meter refreshing at most once per interval
//
// expected is the mean number of hashes needed to meet the target and
// sets the ETA; zero or less disables the ETA
func NewMeter(out io.Writer, interval time.Duration, expected float64) *Meter {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	m := &Meter{
		log:      logger.New("progress"),
		out:      out,
		limiter:  rate.NewLimiter(limit, 1),
		expected: expected,
		clock:    time.Now,
	}
	m.start = m.clock()
	return m
}

// Advance - add count processed nonces and refresh the display if due
func (m *Meter) Advance(count uint64) {
	total := m.total.Add(count)
	if nil == m.out || !m.limiter.Allow() {
		return
	}
	fmt.Fprintf(m.out, "\r%s", m.line(total, m.clock().Sub(m.start)))
}

// Finish - final line and summary log
func (m *Meter) Finish(elapsed time.Duration) {
	total := m.total.Uint64()
	m.log.Infof("searched: %d nonces in: %s", total, elapsed)
	if nil == m.out {
		return
	}
	fmt.Fprintf(m.out, "\rsearched %s nonces in %s at %s\n",
		humanize.Comma(int64(total)),
		elapsed.Round(time.Second),
		hashRate(total, elapsed),
	)
}

// Total - nonces counted so far
func (m *Meter) Total() uint64 {
	return m.total.Uint64()
}

// one display line: elapsed, count, rate and ETA
func (m *Meter) line(total uint64, elapsed time.Duration) string {
	return fmt.Sprintf("[%s] %s nonces (%s, %s)",
		elapsed.Round(time.Second),
		humanize.Comma(int64(total)),
		hashRate(total, elapsed),
		m.eta(total, elapsed),
	)
}

func (m *Meter) eta(total uint64, elapsed time.Duration) string {
	if m.expected <= 0 || 0 == total || elapsed <= 0 {
		return "eta unknown"
	}
	remaining := m.expected - float64(total)
	if remaining <= 0 {
		return "overdue"
	}
	perSecond := float64(total) / elapsed.Seconds()
	seconds := remaining / perSecond
	if seconds > float64(math.MaxInt64/int64(time.Second)) {
		return "eta never"
	}
	return "eta " + (time.Duration(seconds) * time.Second).String()
}

func hashRate(total uint64, elapsed time.Duration) string {
	if elapsed <= 0 {
		return humanize.SI(0, "H/s")
	}
	return humanize.SI(float64(total)/elapsed.Seconds(), "H/s")
}
