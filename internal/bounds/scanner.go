package bounds

import (
	"errors"
	"fmt"
	"time"

	"github.com/philipparndt/gowalk/internal/telemetry"
	"github.com/philipparndt/gowalk/pkg/scene"
	"github.com/rs/zerolog"
)

// ErrScanCancelled is the failure reason after Cancel
var ErrScanCancelled = errors.New("bounds scan cancelled")

// ScanState is the lifecycle of a Scanner
type ScanState int

const (
	ScanPending ScanState = iota
	ScanComplete
	ScanFailed
)

func (s ScanState) String() string {
	switch s {
	case ScanPending:
		return "pending"
	case ScanComplete:
		return "complete"
	case ScanFailed:
		return "failed"
	default:
		return fmt.Sprintf("ScanState(%d)", int(s))
	}
}

// Schedule controls when scan attempts happen
type Schedule struct {
	InitialDelay time.Duration
	RetryDelay   time.Duration
	// MaxAttempts of 0 retries until found or cancelled
	MaxAttempts int
}

// DefaultSchedule waits one second for the asset, then retries every 500ms
func DefaultSchedule() Schedule {
	return Schedule{
		InitialDelay: time.Second,
		RetryDelay:   500 * time.Millisecond,
	}
}

// Scanner retries Compute on a fixed delay until the scene has geometry.
// It is advanced by the host tick and never schedules work on its own.
type Scanner struct {
	source   scene.Source
	schedule Schedule
	logger   zerolog.Logger
	metrics  *telemetry.Instruments

	state    ScanState
	volume   Volume
	err      error
	clock    time.Duration
	nextAt   time.Duration
	attempts int
}

// NewScanner creates a pending scanner over source
func NewScanner(source scene.Source, schedule Schedule, logger zerolog.Logger, metrics *telemetry.Instruments) *Scanner {
	if schedule.RetryDelay <= 0 {
		schedule.RetryDelay = DefaultSchedule().RetryDelay
	}
	return &Scanner{
		source:   source,
		schedule: schedule,
		logger:   logger,
		metrics:  metrics,
		state:    ScanPending,
		nextAt:   schedule.InitialDelay,
	}
}

// Advance moves the scanner clock by dt and runs at most one attempt when it
// is due. It returns the state after the call.
func (s *Scanner) Advance(dt time.Duration) ScanState {
	if s.state != ScanPending {
		return s.state
	}
	s.clock += dt
	if s.clock < s.nextAt {
		return s.state
	}

	s.attempts++
	volume, err := Compute(s.source.Root(), s.logger)
	switch {
	case err == nil:
		s.volume = volume
		s.state = ScanComplete
		s.metrics.ScanAttempt("complete")
	case errors.Is(err, ErrNotReady):
		s.metrics.ScanAttempt("not_ready")
		if s.schedule.MaxAttempts > 0 && s.attempts >= s.schedule.MaxAttempts {
			s.fail(fmt.Errorf("no geometry after %d attempts: %w", s.attempts, err))
			break
		}
		s.logger.Debug().Int("attempt", s.attempts).Msg("No meshes found yet, retrying")
		s.nextAt = s.clock + s.schedule.RetryDelay
	default:
		s.metrics.ScanAttempt("error")
		s.fail(err)
	}
	return s.state
}

func (s *Scanner) fail(err error) {
	s.state = ScanFailed
	s.err = err
	s.logger.Warn().Err(err).Int("attempts", s.attempts).Msg("Scene bounds scan failed")
}

// Cancel stops a pending scan. Terminal scanners are left unchanged.
func (s *Scanner) Cancel() {
	if s.state != ScanPending {
		return
	}
	s.state = ScanFailed
	s.err = ErrScanCancelled
}

// State returns the current lifecycle state
func (s *Scanner) State() ScanState { return s.state }

// Volume returns the bounds once the scan is complete
func (s *Scanner) Volume() (Volume, bool) {
	return s.volume, s.state == ScanComplete
}

// Err returns the failure reason for a failed scan
func (s *Scanner) Err() error { return s.err }

// Attempts returns the number of Compute calls made so far
func (s *Scanner) Attempts() int { return s.attempts }
