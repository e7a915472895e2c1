package middleware

import (
	"errors"
	"testing"

	"learnhub_backend/pkg/logger"
	"learnhub_backend/pkg/monitoring"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
)

func init() {
	logger.Log = zap.NewNop()
}

type fakeActivityRepo struct {
	seen []uint
	err  error
}

func (f *fakeActivityRepo) UpdateLastSeen(userID uint) error {
	f.seen = append(f.seen, userID)
	return f.err
}

func TestRecordLastSeen(t *testing.T) {
	repo := &fakeActivityRepo{}
	recordLastSeen(repo, 7)

	if len(repo.seen) != 1 || repo.seen[0] != 7 {
		t.Errorf("expected last-seen update for user 7, got %v", repo.seen)
	}
}

func TestRecordLastSeen_FailureCounted(t *testing.T) {
	counter := monitoring.BackgroundFailures.WithLabelValues("update_last_seen")
	before := testutil.ToFloat64(counter)

	repo := &fakeActivityRepo{err: errors.New("connection reset")}
	recordLastSeen(repo, 7)

	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Errorf("expected failure counter to increment, got %g (was %g)", got, before)
	}
}
