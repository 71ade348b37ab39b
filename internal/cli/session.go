package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	paylink "github.com/alnah/go-paylink"
	"github.com/alnah/go-paylink/internal/config"
	"github.com/alnah/go-paylink/internal/format"
	"github.com/alnah/go-paylink/internal/retry"
)

// session bundles what an API command needs: the client, the resolved
// configuration and the logger.
type session struct {
	env    *Env
	api    PaymentsAPI
	cfg    config.Config
	logger zerolog.Logger
}

// newLogger returns a console logger on w. Debug output is enabled by
// --verbose; otherwise only warnings are shown.
func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()
}

// openSession loads configuration and creates the API client.
func openSession(env *Env, g globals) (*session, error) {
	cfg, err := env.ConfigLoader.Load(env.Getenv)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w (set it with: export %s=sk_test_... or paylink config set %s ...)",
			ErrAPIKeyMissing, config.EnvAPIKey, config.KeyAPIKey)
	}

	logger := newLogger(env.Stderr, g.verbose)
	opts := append(cfg.Options(), paylink.WithLogger(logger))

	api, err := env.ClientFactory.NewClient(cfg.APIKey, opts...)
	if err != nil {
		return nil, err
	}
	return &session{env: env, api: api, cfg: cfg, logger: logger}, nil
}

// call runs fn with the session's retry policy. Rate limits wait for the
// server's hint; network failures and 5xx responses back off exponentially.
func call[T any](ctx context.Context, s *session, what string, fn func(context.Context) (T, error)) (T, error) {
	cfg := retry.Config{
		MaxRetries: s.cfg.MaxRetries,
		BaseDelay:  s.env.RetryBaseDelay,
		MaxDelay:   s.env.RetryMaxDelay,
		OnRetry: func(attempt int, wait time.Duration, err error) {
			s.logger.Warn().
				Err(err).
				Int("attempt", attempt).
				Str("wait", format.DurationHuman(wait)).
				Msgf("%s failed, retrying", what)
		},
	}
	return retry.Do(ctx, cfg, fn, retry.ShouldRetry)
}

// checkEnvelope reports an unsuccessful envelope as ErrRequestRejected.
func checkEnvelope(success bool, e *paylink.EnvelopeError) error {
	if success {
		return nil
	}
	if e == nil {
		return ErrRequestRejected
	}
	return fmt.Errorf("%w: %v: %s", ErrRequestRejected, e.Code, e.Message)
}
