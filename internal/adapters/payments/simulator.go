// internal/adapters/payments/simulator.go
package payments

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"stayhub/internal/adapters/observability"
	"stayhub/internal/domain"
)

// Simulator stands in for a real payment gateway. It validates card
// format, waits a fixed authorization delay, and approves. There is no
// decline path tied to input values.
type Simulator struct {
	delay time.Duration
	now   func() time.Time
}

func New(delay time.Duration) *Simulator {
	return &Simulator{delay: delay, now: time.Now}
}

func (s *Simulator) Authorize(ctx context.Context, c domain.Card, amount float64) (string, error) {
	if err := s.validate(c); err != nil {
		observability.ObservePayment("rejected")
		return "", err
	}
	if !sleepCtx(ctx, s.delay) {
		observability.ObservePayment("canceled")
		return "", ctx.Err()
	}
	observability.ObservePayment("approved")
	return "sim-" + uuid.NewString(), nil
}

func (s *Simulator) validate(c domain.Card) error {
	if !allDigits(strings.ReplaceAll(c.Number, " ", ""), 16, 16) {
		return domain.ErrCardInvalid
	}
	if strings.TrimSpace(c.Holder) == "" {
		return domain.ErrCardInvalid
	}
	if !allDigits(c.CVV, 3, 4) {
		return domain.ErrCardInvalid
	}
	exp, err := time.Parse("01/06", strings.TrimSpace(c.Expiry))
	if err != nil {
		return domain.ErrCardInvalid
	}
	// card is valid through the last instant of its expiry month
	endOfMonth := exp.AddDate(0, 1, 0)
	if !s.now().Before(endOfMonth) {
		return domain.ErrCardExpired
	}
	return nil
}

func allDigits(s string, min, max int) bool {
	if len(s) < min || len(s) > max {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
