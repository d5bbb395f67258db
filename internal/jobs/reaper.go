// Package jobs runs scheduled maintenance. Nothing here affects read
// visibility; listings filter by expiry at query time regardless of whether
// the jobs run.
package jobs

import (
	"log"
	"time"

	"github.com/buildhubhq/buildhub-backend/internal/repositories"
	"github.com/robfig/cron/v3"
)

// storyRetention is how long expired stories linger before the reaper
// removes the rows. Generous on purpose: reaping is janitorial, not a
// visibility mechanism.
const storyRetention = 7 * 24 * time.Hour

// Manager owns the cron scheduler and the jobs registered on it.
type Manager struct {
	cron      *cron.Cron
	storyRepo repositories.StoryRepository
}

// NewManager creates a job manager. Start must be called to begin running.
func NewManager(storyRepo repositories.StoryRepository) *Manager {
	return &Manager{
		cron:      cron.New(),
		storyRepo: storyRepo,
	}
}

// Start registers the schedules and launches the scheduler.
func (m *Manager) Start() error {
	if _, err := m.cron.AddFunc("@hourly", m.reapExpiredStories); err != nil {
		return err
	}
	m.cron.Start()
	log.Println("Job scheduler started.")
	return nil
}

// Stop halts the scheduler, waiting for running jobs to finish.
func (m *Manager) Stop() {
	ctx := m.cron.Stop()
	<-ctx.Done()
}

func (m *Manager) reapExpiredStories() {
	cutoff := time.Now().Add(-storyRetention)
	deleted, err := m.storyRepo.DeleteExpiredBefore(cutoff)
	if err != nil {
		log.Printf("jobs: story reaper failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("jobs: reaped %d expired stories", deleted)
	}
}
