package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func fastConfig(maxRetries int) Config {
	return Config{MaxRetries: maxRetries, BaseDelay: time.Millisecond}
}

func TestWithBackoffSucceedsFirstTry(t *testing.T) {
	calls := 0
	err := WithBackoff(context.Background(), fastConfig(3), func(ctx context.Context) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected 1 call, got %d", calls)
	}
}

func TestWithBackoffRetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := WithBackoff(context.Background(), fastConfig(3), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Expected eventual success, got %v", err)
	}
	if calls != 3 {
		t.Errorf("Expected 3 calls, got %d", calls)
	}
}

func TestWithBackoffGivesUpAfterMaxRetries(t *testing.T) {
	calls := 0
	err := WithBackoff(context.Background(), fastConfig(2), func(ctx context.Context) error {
		calls++
		return errors.New("timeout")
	})
	if err == nil {
		t.Fatal("Expected error after exhausting retries")
	}
	if calls != 3 {
		t.Errorf("Expected 3 calls (initial + 2 retries), got %d", calls)
	}
}

func TestWithBackoffNonRetryableStopsImmediately(t *testing.T) {
	calls := 0
	wrapped := fmt.Errorf("api: unexpected status 404")
	err := WithBackoff(context.Background(), fastConfig(3), func(ctx context.Context) error {
		calls++
		return wrapped
	})
	if !errors.Is(err, wrapped) {
		t.Fatalf("Expected original error returned, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected 1 call for non-retryable error, got %d", calls)
	}
}

func TestWithBackoffRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := WithBackoff(ctx, Config{MaxRetries: 5, BaseDelay: 50 * time.Millisecond}, func(ctx context.Context) error {
		calls++
		cancel()
		return errors.New("timeout")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected 1 call before cancellation, got %d", calls)
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{errors.New("request timeout"), true},
		{errors.New("connection refused"), true},
		{errors.New("unexpected status 503"), true},
		{errors.New("unexpected status 429"), true},
		{errors.New("unexpected status 404"), false},
		{errors.New("unexpected status 400"), false},
		{errors.New("something odd"), true},
		{nil, false},
	}
	for _, tt := range tests {
		if got := isRetryableError(tt.err); got != tt.want {
			t.Errorf("isRetryableError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestHTTPStatusRetryable(t *testing.T) {
	for status, want := range map[int]bool{200: false, 404: false, 429: true, 500: true, 503: true} {
		if got := HTTPStatusRetryable(status); got != want {
			t.Errorf("HTTPStatusRetryable(%d) = %v, want %v", status, got, want)
		}
	}
}
