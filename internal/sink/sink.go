// Package sink persists buffered log entries to one file per UTC day.
//
// A Sink drains the shared buffer on a fixed interval. Entries are bucketed
// by their own timestamp: when an entry's day differs from the current
// file's day, the current content is persisted and the entry's day is
// loaded (or created) before the entry is appended. The current file is
// rewritten in full at the end of every cycle.
package sink

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tungetti/daylog/internal/buffer"
	"github.com/tungetti/daylog/internal/logging"
	"github.com/tungetti/daylog/internal/record"
)

// Defaults for Options.
const (
	DefaultInterval   = time.Second
	DefaultMaxBackoff = 30 * time.Second
)

// FailurePolicy selects what Run does after an I/O error.
type FailurePolicy string

const (
	// PolicyRetry logs a warning, keeps unplaced entries and retries with
	// exponential backoff.
	PolicyRetry FailurePolicy = "retry"
	// PolicyFailFast stops Run with the error.
	PolicyFailFast FailurePolicy = "fail-fast"
)

// ParseFailurePolicy parses a policy name, case-insensitively.
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch p := FailurePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyRetry, PolicyFailFast:
		return p, nil
	default:
		return "", fmt.Errorf("unknown failure policy %q", s)
	}
}

// Options configures a Sink.
type Options struct {
	Interval   time.Duration
	Policy     FailurePolicy
	MaxBackoff time.Duration
	Logger     logging.Logger
	// Now is the clock used for the initial day. Defaults to time.Now.
	Now func() time.Time
}

// Sink moves entries from a buffer into day files. Flush and Run must be
// called from a single goroutine.
type Sink struct {
	store      Store
	buf        *buffer.Buffer
	interval   time.Duration
	policy     FailurePolicy
	maxBackoff time.Duration
	log        logging.Logger
	now        func() time.Time

	opened  bool
	day     string
	content []record.Entry
	// pending holds entries drained but not yet placed in a day's content.
	pending []record.Entry
}

// New creates a sink reading from buf and writing through store.
func New(store Store, buf *buffer.Buffer, opts Options) *Sink {
	s := &Sink{
		store:      store,
		buf:        buf,
		interval:   opts.Interval,
		policy:     opts.Policy,
		maxBackoff: opts.MaxBackoff,
		log:        opts.Logger,
		now:        opts.Now,
	}
	if s.interval <= 0 {
		s.interval = DefaultInterval
	}
	if s.policy == "" {
		s.policy = PolicyRetry
	}
	if s.maxBackoff < s.interval {
		s.maxBackoff = DefaultMaxBackoff
		if s.maxBackoff < s.interval {
			s.maxBackoff = s.interval
		}
	}
	if s.log == nil {
		s.log = logging.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Open loads the current day's file. Flush opens lazily when needed.
func (s *Sink) Open() error {
	day := record.DayOf(s.now())
	content, err := s.store.Load(day)
	if err != nil {
		return err
	}
	s.day, s.content, s.opened = day, content, true
	return nil
}

// Day returns the day bucket of the current file.
func (s *Sink) Day() string {
	return s.day
}

// Pending returns the number of entries held back by a failed cycle.
func (s *Sink) Pending() int {
	return len(s.pending)
}

// Flush runs one cycle: drain, bucket, append, persist. On error, entries
// that were not yet appended to a day's content are kept for the next
// cycle; appended ones are persisted with that day's next save.
func (s *Sink) Flush() error {
	entries := s.buf.Drain()
	if len(s.pending) > 0 {
		entries = append(s.pending, entries...)
		s.pending = nil
	}

	if !s.opened {
		if err := s.Open(); err != nil {
			s.pending = entries
			return err
		}
	}

	for i, e := range entries {
		if day := e.Day(); day != s.day {
			if err := s.switchDay(day); err != nil {
				s.pending = entries[i:]
				return err
			}
		}
		s.content = append(s.content, e)
	}

	return s.store.Save(s.day, s.content)
}

func (s *Sink) switchDay(day string) error {
	if err := s.store.Save(s.day, s.content); err != nil {
		return err
	}
	content, err := s.store.Load(day)
	if err != nil {
		return err
	}
	s.log.Debug("switched day file", "from", s.day, "to", day)
	s.day, s.content = day, content
	return nil
}

// Run flushes every interval until ctx is cancelled, then flushes once more
// and returns. Under PolicyFailFast the first error ends Run; under
// PolicyRetry errors are logged and retried with backoff.
func (s *Sink) Run(ctx context.Context) error {
	delay := s.interval
	failing := false

	timer := time.NewTimer(delay)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := s.Flush(); err != nil {
				s.log.Error("final flush failed", "error", err, "pending", len(s.pending))
				return err
			}
			s.log.Debug("file sink stopped", "day", s.day)
			return nil

		case <-timer.C:
			err := s.Flush()
			switch {
			case err == nil:
				if failing {
					s.log.Info("file sink recovered", "day", s.day)
					failing = false
				}
				delay = s.interval

			case s.policy == PolicyFailFast:
				s.log.Error("file sink stopped", "error", err)
				return err

			default:
				failing = true
				delay = s.backoff(delay)
				s.log.Warn("file sink flush failed", "error", err, "pending", len(s.pending), "retry_in", delay)
			}
			timer.Reset(delay)
		}
	}
}

// backoff doubles the delay after a failure, capped at maxBackoff.
func (s *Sink) backoff(delay time.Duration) time.Duration {
	next := delay * 2
	if next > s.maxBackoff {
		next = s.maxBackoff
	}
	return next
}
