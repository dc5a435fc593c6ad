package payments

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"stayhub/internal/domain"
)

func fixedNow() time.Time {
	return time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
}

func newTestSimulator(delay time.Duration) *Simulator {
	s := New(delay)
	s.now = fixedNow
	return s
}

func card() domain.Card {
	return domain.Card{Number: "4111 1111 1111 1111", Holder: "Jane Doe", Expiry: "12/27", CVV: "123"}
}

func TestAuthorize_Approves(t *testing.T) {
	s := newTestSimulator(0)
	ref, err := s.Authorize(context.Background(), card(), 300)
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}
	if !strings.HasPrefix(ref, "sim-") {
		t.Fatalf("unexpected ref: %s", ref)
	}
}

func TestAuthorize_RejectsBadNumber(t *testing.T) {
	s := newTestSimulator(0)
	for _, n := range []string{"", "411111111111111", "41111111111111112", "4111-1111-1111-1111"} {
		c := card()
		c.Number = n
		if _, err := s.Authorize(context.Background(), c, 10); !errors.Is(err, domain.ErrCardInvalid) {
			t.Fatalf("number %q: expected CARD_INVALID, got %v", n, err)
		}
	}
}

func TestAuthorize_RejectsBadCVVAndHolder(t *testing.T) {
	s := newTestSimulator(0)

	c := card()
	c.CVV = "12"
	if _, err := s.Authorize(context.Background(), c, 10); !errors.Is(err, domain.ErrCardInvalid) {
		t.Fatalf("expected CARD_INVALID for short cvv, got %v", err)
	}
	c = card()
	c.Holder = "   "
	if _, err := s.Authorize(context.Background(), c, 10); !errors.Is(err, domain.ErrCardInvalid) {
		t.Fatalf("expected CARD_INVALID for empty holder, got %v", err)
	}
}

func TestAuthorize_Expiry(t *testing.T) {
	s := newTestSimulator(0)

	// past month
	c := card()
	c.Expiry = "07/26"
	if _, err := s.Authorize(context.Background(), c, 10); !errors.Is(err, domain.ErrCardExpired) {
		t.Fatalf("expected CARD_EXPIRED, got %v", err)
	}
	// the current month is still valid through its last day
	c.Expiry = "08/26"
	if _, err := s.Authorize(context.Background(), c, 10); err != nil {
		t.Fatalf("current month should be valid: %v", err)
	}
	// unparseable
	c.Expiry = "2026-12"
	if _, err := s.Authorize(context.Background(), c, 10); !errors.Is(err, domain.ErrCardInvalid) {
		t.Fatalf("expected CARD_INVALID for bad expiry format, got %v", err)
	}
}

func TestAuthorize_ContextCancelDuringDelay(t *testing.T) {
	s := newTestSimulator(5 * time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := s.Authorize(ctx, card(), 10)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("authorize did not return promptly on cancellation")
	}
}
