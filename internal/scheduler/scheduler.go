// Package scheduler runs housekeeping jobs, such as dropping abandoned
// conversations, on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/emeklilik/sgkcalc/internal/logging"
	"github.com/emeklilik/sgkcalc/internal/session"
)

// Scheduler manages cron jobs in one location.
type Scheduler struct {
	cron     *cron.Cron
	location *time.Location
	mu       sync.Mutex
	entries  map[string]cron.EntryID
	started  bool
}

// NewScheduler creates a scheduler for the given timezone. An empty
// timezone means the local one.
func NewScheduler(timezone string) (*Scheduler, error) {
	loc := time.Local
	if timezone != "" {
		var err error
		loc, err = time.LoadLocation(timezone)
		if err != nil {
			return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
		}
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		location: loc,
		entries:  make(map[string]cron.EntryID),
	}, nil
}

// Schedule registers fn under name with a standard five-field cron spec or
// a descriptor such as "@every 5m". A job already registered under name is
// replaced.
func (s *Scheduler) Schedule(name, spec string, fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entryID, err := s.cron.AddFunc(spec, fn)
	if err != nil {
		return fmt.Errorf("add cron job %s: %w", name, err)
	}
	if old, ok := s.entries[name]; ok {
		s.cron.Remove(old)
	}
	s.entries[name] = entryID

	return nil
}

// Next returns the next run time of the named job.
func (s *Scheduler) Next(name string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.entries[name]
	if !ok {
		return time.Time{}, false
	}
	entry := s.cron.Entry(id)
	return entry.Schedule.Next(time.Now().In(s.location)), true
}

// Start begins the scheduler.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		s.cron.Start()
		s.started = true
	}
}

// Stop halts the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	s.mu.Unlock()

	<-s.cron.Stop().Done()
}

// Run starts the scheduler and blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	s.Start()
	<-ctx.Done()
	s.Stop()
	return nil
}

// PurgeObserver is told how many sessions each purge removed.
type PurgeObserver interface {
	SessionsPurged(n int)
}

// PurgeJob drops sessions idle for longer than TTL.
type PurgeJob struct {
	Store    session.Store
	TTL      time.Duration
	Logger   logging.Logger
	Observer PurgeObserver
	Now      func() time.Time
	Timeout  time.Duration
}

// Run performs one purge. It has the func() shape cron expects.
func (j *PurgeJob) Run() {
	now := time.Now
	if j.Now != nil {
		now = j.Now
	}
	logger := logging.OrNop(j.Logger)

	timeout := j.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	n, err := j.Store.PurgeIdle(ctx, now().Add(-j.TTL))
	if err != nil {
		logger.Errorf("session purge failed: %v", err)
		return
	}
	if n > 0 {
		logger.Infof("purged %d idle sessions", n)
	}
	if j.Observer != nil {
		j.Observer.SessionsPurged(n)
	}
}
