package workers

import (
	"context"
	"log"

	"github.com/gzanette/lifetrack-engine/internal/core/domain"
)

// Evaluator runs one achievement evaluation pass for a user and returns
// whatever it newly unlocked.
type Evaluator interface {
	Evaluate(ctx context.Context, userID string) ([]*domain.UserAchievement, error)
}

type evalJob struct {
	UserID string
}

// AchievementWorker re-checks achievement criteria in the background after
// goal and habit mutations. The triggering request never waits for it, and
// failures are logged, never surfaced.
type AchievementWorker struct {
	evaluator Evaluator
	jobs      chan evalJob
}

func NewAchievementWorker(evaluator Evaluator) *AchievementWorker {
	return &AchievementWorker{
		evaluator: evaluator,
		jobs:      make(chan evalJob, 100),
	}
}

func (w *AchievementWorker) Start(ctx context.Context) {
	go func() {
		log.Println("Achievement worker started in background...")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Println("Achievement worker shutting down...")
				return
			}
		}
	}()
}

// Enqueue never blocks the caller: when the queue is full the job is
// dropped, and the next mutation re-triggers the same evaluation anyway.
func (w *AchievementWorker) Enqueue(userID string) {
	select {
	case w.jobs <- evalJob{UserID: userID}:
	default:
		log.Printf("Achievement worker queue full, dropping job for user %s", userID)
	}
}

func (w *AchievementWorker) processJob(ctx context.Context, job evalJob) {
	unlocked, err := w.evaluator.Evaluate(ctx, job.UserID)
	if err != nil {
		log.Printf("Worker: achievement evaluation failed for user %s: %v", job.UserID, err)
		return
	}

	for _, ua := range unlocked {
		log.Printf("Achievement unlocked for user %s: %s", job.UserID, ua.Code)
	}
}
