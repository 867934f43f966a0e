package processing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"qdpi-hq/tna/pkg/config"
	"qdpi-hq/tna/pkg/processing/costs"
	"qdpi-hq/tna/pkg/processing/tokens"
	"qdpi-hq/tna/pkg/telemetry/logging"
	"qdpi-hq/tna/pkg/telemetry/metrics"
	"qdpi-hq/tna/pkg/telemetry/tracing"
	"qdpi-hq/tna/pkg/vocab"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// Error kinds used for metrics labels and span attributes.
const (
	KindInvalidInput         = "invalid_input"
	KindInvalidConfiguration = "invalid_configuration"
	KindLoad                 = "load"
	KindInternal             = "internal"
)

// Options carries the optional collaborators of a Service. Nil fields get
// a discarding logger, no metrics and a noop tracer.
type Options struct {
	Logger  *logging.Logger
	Metrics *metrics.Collector
	Tracer  *tracing.Tracer

	// Store, when set, is used instead of loading cfg.Vocabulary.Path.
	Store *vocab.Store
}

// snapshot is the store and tokenizer pair serving calls. It is replaced
// as a whole on reload and never mutated.
type snapshot struct {
	store     *vocab.Store
	tokenizer tokens.Tokenizer
}

// Service runs tokenize and estimate calls against the active vocabulary.
// It is safe for concurrent use.
type Service struct {
	current   atomic.Pointer[snapshot]
	estimator *costs.Estimator

	logger  *logging.Logger
	metrics *metrics.Collector
	tracer  *tracing.Tracer
}

// NewService loads the vocabulary named by cfg, builds the configured
// tokenizer and returns a ready Service.
func NewService(cfg *config.Config, opts Options) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	s := &Service{
		logger:  opts.Logger,
		metrics: opts.Metrics,
		tracer:  opts.Tracer,
	}
	if s.logger == nil {
		s.logger = logging.Nop()
	}
	if s.tracer == nil {
		s.tracer = tracing.Noop()
	}

	estimator, err := costs.NewEstimator(&cfg.Costs)
	if err != nil {
		return nil, err
	}
	s.estimator = estimator

	snap, err := s.build(cfg, opts.Store)
	if err != nil {
		return nil, err
	}
	s.current.Store(snap)

	return s, nil
}

// build loads the store (unless one is given) and the tokenizer for cfg.
func (s *Service) build(cfg *config.Config, store *vocab.Store) (*snapshot, error) {
	if store == nil {
		loaded, err := vocab.Load(cfg.Vocabulary.Path, vocab.Format(cfg.Vocabulary.Format))
		if err != nil {
			s.metrics.RecordVocabularyLoad(metrics.StatusError, 0, 0)
			s.logger.Error("vocabulary load failed", "path", cfg.Vocabulary.Path, "error", err)
			return nil, err
		}
		store = loaded
	}
	s.metrics.RecordVocabularyLoad(metrics.StatusSuccess, store.Size(), len(store.QDPITokens()))
	s.logger.Info("vocabulary loaded",
		"source", store.Source(),
		"size", store.Size(),
		"qdpi_tokens", len(store.QDPITokens()),
	)

	tokenizer, err := tokens.New(&cfg.Tokenizer)
	if err != nil {
		return nil, fmt.Errorf("tokenizer: %w", err)
	}

	return &snapshot{store: store, tokenizer: tokenizer}, nil
}

// Reload loads the vocabulary and tokenizer described by cfg and applies
// its cost settings. On any error the service keeps serving with its
// previous state. Stores already handed out are never modified.
func (s *Service) Reload(cfg *config.Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	// Cost settings are checked first so a rejected reload never loads or
	// reports a vocabulary.
	if err := costs.ValidateConfig(&cfg.Costs); err != nil {
		return fmt.Errorf("reload: %w", err)
	}

	snap, err := s.build(cfg, nil)
	if err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	if err := s.estimator.UpdateConfig(&cfg.Costs); err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	s.current.Store(snap)

	s.logger.Info("accounting state reloaded",
		"source", snap.store.Source(),
		"strategy", snap.tokenizer.Name(),
		"tokens_per_unit", s.estimator.TokensPerUnit(),
	)
	return nil
}

// Store returns the active vocabulary.
func (s *Service) Store() *vocab.Store {
	return s.current.Load().store
}

// Tokenizer returns the active tokenizer.
func (s *Service) Tokenizer() tokens.Tokenizer {
	return s.current.Load().tokenizer
}

// TokensPerUnit returns the active cost divisor.
func (s *Service) TokensPerUnit() float64 {
	return s.estimator.TokensPerUnit()
}

// Tokenize splits text into annotated tokens.
func (s *Service) Tokenize(ctx context.Context, text string) (*Result, error) {
	return s.run(ctx, metrics.OperationTokenize, text, false)
}

// Estimate tokenizes text and converts the token count into cost units.
func (s *Service) Estimate(ctx context.Context, text string) (*Result, error) {
	return s.run(ctx, metrics.OperationEstimate, text, true)
}

func (s *Service) run(ctx context.Context, operation, text string, estimate bool) (*Result, error) {
	start := time.Now()
	snap := s.current.Load()
	strategy := snap.tokenizer.Name()
	requestID := uuid.NewString()

	ctx, span := s.tracer.Start(ctx, "tna."+operation)
	defer span.End()
	tracing.SetRequestAttributes(span, requestID, operation, strategy)
	tracing.SetVocabularyAttributes(span, snap.store.Source(), snap.store.Size())

	ctx = logging.WithRequestID(ctx, requestID)
	ctx = logging.WithOperation(ctx, operation)
	ctx = logging.WithStrategy(ctx, strategy)
	if traceID := tracing.TraceID(ctx); traceID != "" {
		ctx = logging.WithTraceID(ctx, traceID)
		ctx = logging.WithSpanID(ctx, tracing.SpanID(ctx))
	}

	if s.logger.Enabled(slog.LevelDebug) {
		s.logger.DebugContext(ctx, "accounting input",
			"text", text,
			"bytes", len(text),
			"vocab_size", snap.store.Size(),
		)
	}

	result := &Result{
		RequestID:        requestID,
		Strategy:         strategy,
		VocabularySource: snap.store.Source(),
	}

	seq, err := snap.tokenizer.Tokenize(text, snap.store)
	if err != nil {
		return nil, s.fail(ctx, span, operation, strategy, start, err)
	}
	result.Tokens = seq
	result.Count = seq.Len()
	result.Special = specialCount(seq)
	tracing.SetTokenAttributes(span, len(text), result.Count, result.Special)

	if estimate {
		cost, err := s.estimator.FromCount(result.Count)
		if err != nil {
			return nil, s.fail(ctx, span, operation, strategy, start, err)
		}
		result.Cost = cost
		tracing.SetCostAttributes(span, cost.Float64(), cost.String(), cost.TokensPerUnit)
	}

	result.Duration = time.Since(start)
	tracing.SetStatus(span, nil)

	if estimate {
		s.metrics.RecordEstimate(strategy, metrics.StatusSuccess, result.Count, result.Cost.Float64(), result.Duration)
		s.logger.InfoContext(ctx, "estimate complete",
			"tokens", result.Count,
			"cost", result.Cost.String(),
			"duration_ms", result.Duration.Milliseconds(),
		)
	} else {
		s.metrics.RecordTokenize(strategy, metrics.StatusSuccess, result.Count, result.Duration)
		s.logger.DebugContext(ctx, "tokenize complete",
			"tokens", result.Count,
			"special", result.Special,
		)
	}

	return result, nil
}

// fail records a failed call in every telemetry sink and returns err.
func (s *Service) fail(ctx context.Context, span trace.Span, operation, strategy string, start time.Time, err error) error {
	kind := ErrorKind(err)
	duration := time.Since(start)

	tracing.SetErrorAttributes(span, err, kind)
	s.metrics.RecordError(operation, kind)
	if operation == metrics.OperationEstimate {
		s.metrics.RecordEstimate(strategy, metrics.StatusError, 0, 0, duration)
	} else {
		s.metrics.RecordTokenize(strategy, metrics.StatusError, 0, duration)
	}
	s.logger.WarnContext(ctx, operation+" failed", "kind", kind, "error", err)

	return err
}

// ErrorKind classifies err for metrics and span attributes.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, tokens.ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, costs.ErrInvalidConfiguration):
		return KindInvalidConfiguration
	case errors.Is(err, vocab.ErrLoad):
		return KindLoad
	default:
		return KindInternal
	}
}
