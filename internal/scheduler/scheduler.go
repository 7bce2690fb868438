package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/persist"
	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/session"
)

// Scheduler periodically re-mirrors the session ledgers to the durable
// store so a transient outage heals without waiting for the next user
// action. The job only snapshots; it never mutates either ledger.
type Scheduler struct {
	scheduler gocron.Scheduler
	session   *session.Session
	interval  time.Duration
}

// New creates a scheduler running the re-sync job every interval
func New(sess *session.Session, interval time.Duration) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	return &Scheduler{
		scheduler: s,
		session:   sess,
		interval:  interval,
	}, nil
}

// Start registers the re-sync job and starts the scheduler
func (s *Scheduler) Start() error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(s.resync),
		gocron.WithName("persistence-resync"),
	)
	if err != nil {
		return err
	}

	s.scheduler.Start()
	log.Printf("Persistence re-sync every %s", s.interval)
	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() error {
	return s.scheduler.Shutdown()
}

func (s *Scheduler) resync() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if s.session.Resync(ctx) == persist.Failed {
		log.Println("Persistence re-sync failed, will retry next interval")
	}
}
