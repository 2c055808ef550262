package orchestrator

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/fai-quant/overnight-signal/src/marketdata"
	"github.com/fai-quant/overnight-signal/src/models"
	"github.com/fai-quant/overnight-signal/src/notification"
	"github.com/fai-quant/overnight-signal/src/strategy"
)

// State names one step of the per-invocation machine:
// Start -> CredentialsChecked -> DataFetched -> SignalComputed ->
// {Notified | Skipped | Failed} -> Done.
type State string

const (
	StateStart              State = "start"
	StateCredentialsChecked State = "credentials_checked"
	StateDataFetched        State = "data_fetched"
	StateSignalComputed     State = "signal_computed"
	StateNotified           State = "notified"
	StateSkipped            State = "skipped"
	StateFailed             State = "failed"
)

const (
	defaultFetchAttempts = 2
	defaultLookback      = 60
)

type Policy struct {
	// NotifyOnFlat delivers FLAT signals too; by default only BUY/SELL
	// pass the gate.
	NotifyOnFlat bool

	// FetchAttempts caps fetch retries within one run. There is no backoff:
	// the scheduler invokes the process anew on every tick regardless.
	FetchAttempts int

	Lookback int
}

type Config struct {
	Symbol  string
	Fetcher marketdata.Fetcher
	Engine  *strategy.Engine
	Channel notification.Channel
	Kind    notification.ChannelKind
	Creds   models.CredentialSet
	Policy  Policy
}

// Outcome is what one completed run reports back to the process boundary.
type Outcome struct {
	Final  State
	Signal models.Signal

	// Degraded marks a FLAT produced by data unavailability rather than by a
	// legitimate rule, so operators can tell the two apart.
	Degraded bool

	Result *models.NotificationResult
}

type Orchestrator struct {
	cfg Config
}

func New(cfg Config) *Orchestrator {
	if cfg.Policy.FetchAttempts <= 0 {
		cfg.Policy.FetchAttempts = defaultFetchAttempts
	}

	if cfg.Policy.Lookback <= 0 {
		cfg.Policy.Lookback = defaultLookback
	}

	return &Orchestrator{cfg: cfg}
}

// Run drives the state machine once. It always completes: every failure mode
// maps to a terminal Outcome, and the returned error is non-nil exactly when
// the process should exit non-zero.
func (o *Orchestrator) Run(ctx context.Context, now time.Time) (Outcome, error) {
	logger := log.WithFields(log.Fields{
		"symbol":  o.cfg.Symbol,
		"channel": o.cfg.Channel.Name(),
	})

	outcome := Outcome{Final: StateFailed}

	// Credentials first: configuration errors must surface before any
	// network I/O is spent.
	if err := notification.ValidateCredentials(o.cfg.Creds, o.cfg.Kind); err != nil {
		logger.Errorf("Run: credential validation failed: %v", err)
		return outcome, err
	}

	logger.WithField("state", StateCredentialsChecked).Debug("credentials validated")

	bars, degraded := o.fetchBars(ctx, logger)
	outcome.Degraded = degraded

	logger.WithField("state", StateDataFetched).Debugf("fetched %d bars", len(bars))

	signal := o.cfg.Engine.Compute(bars, now)
	outcome.Signal = signal

	logger.WithFields(log.Fields{
		"state":     StateSignalComputed,
		"signal_id": signal.ID,
		"action":    signal.Action.String(),
		"rule":      signal.RuleTriggered,
	}).Info("signal computed")

	if signal.Action == models.ActionFlat && !o.cfg.Policy.NotifyOnFlat {
		outcome.Final = StateSkipped
		logger.WithField("state", StateSkipped).Info("flat signal gated out, no delivery attempted")
		return outcome, nil
	}

	result := o.cfg.Channel.Send(ctx, signal, o.cfg.Creds)
	outcome.Result = &result

	if !result.Delivered {
		outcome.Final = StateFailed
		logger.WithField("state", StateFailed).Errorf("Run: delivery failed: %v", result.Err)
		return outcome, result.Err
	}

	outcome.Final = StateNotified
	logger.WithField("state", StateNotified).Info("notification delivered")

	return outcome, nil
}

// fetchBars applies the capped retry policy. Data unavailability degrades to
// an empty sequence so the run still reports a FLAT signal instead of
// aborting.
func (o *Orchestrator) fetchBars(ctx context.Context, logger *log.Entry) (models.Bars, bool) {
	var lastErr error

	for attempt := 1; attempt <= o.cfg.Policy.FetchAttempts; attempt++ {
		bars, err := o.cfg.Fetcher.Fetch(ctx, o.cfg.Symbol, o.cfg.Policy.Lookback)
		if err == nil {
			return bars, false
		}

		lastErr = err
		logger.Warnf("fetchBars: attempt %d/%d failed: %v", attempt, o.cfg.Policy.FetchAttempts, err)
	}

	logger.Warnf("fetchBars: market data unavailable, degrading to empty bar sequence: %v", lastErr)

	return nil, true
}
