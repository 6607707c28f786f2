package service

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/K-HALID007/shipment-tracking-api/internal/core/domain"
	"github.com/K-HALID007/shipment-tracking-api/internal/core/ports"
	"github.com/K-HALID007/shipment-tracking-api/internal/pkg/metrics"
)

const (
	// DefaultVerifyAttempts caps the probe schedule at ~5s worst case.
	// The bound is deliberate: under heavy propagation lag the verifier
	// reports not-visible rather than retrying forever.
	DefaultVerifyAttempts  = 10
	DefaultVerifyInterval  = 500 * time.Millisecond
)

var errNotVisible = errors.New("not visible yet")

// Verifier bridges the gap between "write acknowledged" and "read
// observable" for a freshly created shipment: it polls the read path on a
// fixed schedule until the tracking id resolves or the budget is exhausted.
//
// The schedule is constant-interval with no jitter. Probe errors are folded
// into the loop as "not yet visible"; the schedule is the sole retry policy.
type Verifier struct {
	probe    ports.ReadProbe
	attempts uint64
	interval time.Duration
	log      zerolog.Logger
}

// NewVerifier builds a Verifier. Non-positive attempts or interval fall back
// to the defaults.
func NewVerifier(probe ports.ReadProbe, attempts int, interval time.Duration, log zerolog.Logger) *Verifier {
	if attempts <= 0 {
		attempts = DefaultVerifyAttempts
	}
	if interval <= 0 {
		interval = DefaultVerifyInterval
	}
	return &Verifier{probe: probe, attempts: uint64(attempts), interval: interval, log: log}
}

// Verify polls the read path for trackingID. It returns true as soon as a
// probe succeeds and false once all attempts are exhausted. Only context
// cancellation produces an error; exhaustion is a legal outcome, not a
// failure of the verifier itself.
func (v *Verifier) Verify(ctx context.Context, trackingID string) (bool, error) {
	if trackingID == "" {
		return false, domain.ErrValidation
	}

	probes := 0
	operation := func() error {
		probes++
		visible, err := v.probe.Exists(ctx, trackingID)
		if err != nil {
			// Transient probe failures count as not-yet-visible.
			v.log.Debug().Err(err).Str("tracking_id", trackingID).Int("attempt", probes).Msg("probe failed")
			return err
		}
		if !visible {
			return errNotVisible
		}
		return nil
	}

	schedule := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(v.interval), v.attempts-1),
		ctx,
	)

	err := backoff.Retry(operation, schedule)
	metrics.VerifyAttempts.Observe(float64(probes))

	switch {
	case err == nil:
		metrics.VerifyTotal.WithLabelValues("visible").Inc()
		return true, nil
	case ctx.Err() != nil:
		metrics.VerifyTotal.WithLabelValues("cancelled").Inc()
		return false, ctx.Err()
	default:
		v.log.Warn().Str("tracking_id", trackingID).Int("probes", probes).Msg("tracking id not visible within budget")
		metrics.VerifyTotal.WithLabelValues("timeout").Inc()
		return false, nil
	}
}
