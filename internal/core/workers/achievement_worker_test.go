package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gzanette/lifetrack-engine/internal/core/domain"
)

type recordingEvaluator struct {
	calls chan string
	err   error
}

func (e *recordingEvaluator) Evaluate(ctx context.Context, userID string) ([]*domain.UserAchievement, error) {
	e.calls <- userID
	if e.err != nil {
		return nil, e.err
	}
	return []*domain.UserAchievement{{UserID: userID, Code: "first_goal"}}, nil
}

func waitForCall(t *testing.T, calls chan string) string {
	t.Helper()
	select {
	case userID := <-calls:
		return userID
	case <-time.After(2 * time.Second):
		t.Fatal("worker never processed the job")
		return ""
	}
}

func TestAchievementWorker_ProcessesEnqueuedJobs(t *testing.T) {
	eval := &recordingEvaluator{calls: make(chan string, 10)}
	worker := NewAchievementWorker(eval)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker.Start(ctx)

	worker.Enqueue("user-1")
	worker.Enqueue("user-2")

	assert.Equal(t, "user-1", waitForCall(t, eval.calls))
	assert.Equal(t, "user-2", waitForCall(t, eval.calls))
}

func TestAchievementWorker_EvaluationFailureIsSwallowed(t *testing.T) {
	eval := &recordingEvaluator{
		calls: make(chan string, 10),
		err:   errors.New("db unavailable"),
	}
	worker := NewAchievementWorker(eval)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker.Start(ctx)

	worker.Enqueue("user-1")
	waitForCall(t, eval.calls)

	// The worker keeps running after a failed evaluation.
	worker.Enqueue("user-2")
	assert.Equal(t, "user-2", waitForCall(t, eval.calls))
}

func TestAchievementWorker_EnqueueNeverBlocks(t *testing.T) {
	eval := &recordingEvaluator{calls: make(chan string, 200)}
	worker := NewAchievementWorker(eval)

	// Worker not started: the buffer fills up and the rest are dropped.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 500; i++ {
			worker.Enqueue("user-1")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}
}
