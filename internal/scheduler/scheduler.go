package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/gradewise-dev/gradewise/internal/analytics"
	"github.com/gradewise-dev/gradewise/internal/logger"
	"github.com/gradewise-dev/gradewise/internal/metrics"
	"github.com/gradewise-dev/gradewise/internal/models"
	"github.com/gradewise-dev/gradewise/internal/realtime"
	"github.com/gradewise-dev/gradewise/internal/services"
	"github.com/gradewise-dev/gradewise/internal/store"
	"github.com/gradewise-dev/gradewise/internal/types"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler periodically closes goals whose deadline has passed.
type Scheduler struct {
	cron     *cron.Cron
	notifier *services.Notifier
	timeout  time.Duration

	mu      sync.Mutex
	running bool
}

// NewScheduler initializes a new Scheduler instance
func NewScheduler(notifier *services.Notifier) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cron.PrintfLogger(logger.Log)),
			cron.SkipIfStillRunning(cron.PrintfLogger(logger.Log)),
		)),
		notifier: notifier,
		timeout:  5 * time.Minute,
	}
}

// Start registers the goal sweep under spec (standard cron syntax or @every) and starts it.
func (s *Scheduler) Start(spec string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	if _, err := s.cron.AddFunc(spec, s.sweep); err != nil {
		return err
	}

	s.cron.Start()
	s.running = true

	logger.Log.WithField("schedule", spec).Info("Goal scheduler started")
	return nil
}

// Stop waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	<-s.cron.Stop().Done()
	s.running = false

	logger.Log.Info("Goal scheduler stopped")
}

func (s *Scheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	evaluated, err := s.EvaluateGoals(ctx, time.Now())

	if err != nil {
		logger.Log.WithError(err).Error("Goal sweep failed")
		return
	}

	if evaluated > 0 {
		logger.Log.WithField("evaluated", evaluated).Info("Goal sweep finished")
	}
}

// EvaluateGoals settles every active goal with a deadline before now: achieved when the
// owner's overall average reaches the target, missed otherwise. It returns how many goals
// changed.
func (s *Scheduler) EvaluateGoals(ctx context.Context, now time.Time) (int, error) {
	now = now.UTC()

	goals, err := store.DueGoals(ctx, now)

	if err != nil {
		return 0, err
	}

	byUser := make(map[uint][]models.Goal)
	for _, goal := range goals {
		byUser[goal.UserID] = append(byUser[goal.UserID], goal)
	}

	evaluated := 0

	for userID, userGoals := range byUser {
		scores, err := store.ListScores(ctx, userID)

		if err != nil {
			return evaluated, err
		}

		var achieved *float64
		if avg, ok := analytics.OverallAverage(scores); ok {
			achieved = &avg
		}

		for _, goal := range userGoals {
			status := types.GoalStatusMissed
			if achieved != nil && *achieved >= goal.TargetScore {
				status = types.GoalStatusAchieved
			}

			updated, err := store.SaveGoalOutcome(ctx, goal.ID, status, achieved, now)

			if err != nil {
				return evaluated, err
			}

			if !updated {
				continue
			}

			evaluated++
			goal.Status = status
			goal.AchievedScore = achieved
			goal.EvaluatedAt = &now

			metrics.RecordGoalOutcome(status)
			logger.WithFields(logrus.Fields{
				"goal_id": goal.ID,
				"user_id": userID,
				"status":  status,
			}).Info("Goal evaluated")

			s.notify(ctx, userID, goal)
		}

		realtime.BroadcastRefresh(userID, "goals")
	}

	return evaluated, nil
}

func (s *Scheduler) notify(ctx context.Context, userID uint, goal models.Goal) {
	if !s.notifier.Enabled() {
		return
	}

	user, err := store.FindUserByID(ctx, userID)

	if err != nil {
		logger.Log.WithField("user_id", userID).WithError(err).Warn("Failed to load goal owner")
		return
	}

	if err := s.notifier.SendGoalOutcome(ctx, *user, goal); err != nil {
		logger.Log.WithField("goal_id", goal.ID).WithError(err).Warn("Failed to send goal notification")
	}
}

// GetStatus returns current scheduler status
func (s *Scheduler) GetStatus() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]interface{}{
		"running": s.running,
		"entries": len(s.cron.Entries()),
	}
}

// Global scheduler instance
var globalScheduler *Scheduler

// Initialize creates and starts the global scheduler
func Initialize(spec string, notifier *services.Notifier) error {
	globalScheduler = NewScheduler(notifier)
	return globalScheduler.Start(spec)
}

// Shutdown stops the global scheduler
func Shutdown() {
	if globalScheduler != nil {
		globalScheduler.Stop()
	}
}
