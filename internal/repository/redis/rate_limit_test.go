package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func newTestRepository(t *testing.T) *RateLimitRepository {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRateLimitRepository(client, SlidingWindowConfig{
		KeyPrefix: "admin:rate-limit",
		TTL:       2 * time.Minute,
	})
}

func TestRecordAndCountAttempts(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	now := time.Date(2025, 10, 12, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		if err := repo.RecordAttempt(ctx, "192.0.2.1", now.Add(time.Duration(i)*time.Second)); err != nil {
			t.Fatalf("record attempt: %v", err)
		}
	}

	count, err := repo.CountAttempts(ctx, "192.0.2.1", time.Minute, now.Add(3*time.Second))
	if err != nil {
		t.Fatalf("count attempts: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 attempts, got %d", count)
	}
}

func TestCountAttemptsExcludesOutsideWindow(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	now := time.Date(2025, 10, 12, 10, 0, 0, 0, time.UTC)

	if err := repo.RecordAttempt(ctx, "192.0.2.1", now.Add(-2*time.Minute)); err != nil {
		t.Fatalf("record attempt: %v", err)
	}
	if err := repo.RecordAttempt(ctx, "192.0.2.1", now); err != nil {
		t.Fatalf("record attempt: %v", err)
	}

	count, err := repo.CountAttempts(ctx, "192.0.2.1", time.Minute, now)
	if err != nil {
		t.Fatalf("count attempts: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 attempt inside window, got %d", count)
	}
}

func TestTrimWindowRemovesStaleAttempts(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	now := time.Date(2025, 10, 12, 10, 0, 0, 0, time.UTC)

	if err := repo.RecordAttempt(ctx, "192.0.2.1", now.Add(-5*time.Minute)); err != nil {
		t.Fatalf("record attempt: %v", err)
	}
	if err := repo.RecordAttempt(ctx, "192.0.2.1", now); err != nil {
		t.Fatalf("record attempt: %v", err)
	}

	if err := repo.TrimWindow(ctx, "192.0.2.1", time.Minute, now); err != nil {
		t.Fatalf("trim window: %v", err)
	}

	count, err := repo.CountAttempts(ctx, "192.0.2.1", 10*time.Minute, now)
	if err != nil {
		t.Fatalf("count attempts: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected stale attempt removed, got %d", count)
	}
}

func TestOldestAttempt(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	now := time.Date(2025, 10, 12, 10, 0, 0, 0, time.UTC)
	first := now.Add(-30 * time.Second)

	if err := repo.RecordAttempt(ctx, "192.0.2.1", first); err != nil {
		t.Fatalf("record attempt: %v", err)
	}
	if err := repo.RecordAttempt(ctx, "192.0.2.1", now); err != nil {
		t.Fatalf("record attempt: %v", err)
	}

	oldest, ok, err := repo.OldestAttempt(ctx, "192.0.2.1", time.Minute, now)
	if err != nil {
		t.Fatalf("oldest attempt: %v", err)
	}
	if !ok {
		t.Fatal("expected an attempt inside the window")
	}
	if !oldest.Equal(first) {
		t.Fatalf("expected oldest %v, got %v", first, oldest)
	}
}

func TestOldestAttemptEmptyWindow(t *testing.T) {
	repo := newTestRepository(t)

	_, ok, err := repo.OldestAttempt(context.Background(), "203.0.113.9", time.Minute, time.Now())
	if err != nil {
		t.Fatalf("oldest attempt: %v", err)
	}
	if ok {
		t.Fatal("expected no attempts for unknown identifier")
	}
}
