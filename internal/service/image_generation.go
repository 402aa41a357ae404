package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/basel-ax/cursorsmith/internal/chromakey"
	"github.com/basel-ax/cursorsmith/internal/domain"
)

// DefaultRequestDelay spaces consecutive generation calls
const DefaultRequestDelay = time.Second

// SleepFunc suspends the caller for d or until ctx is done
type SleepFunc func(ctx context.Context, d time.Duration) error

// RemoveFunc turns a base64 payload into a transparent PNG
type RemoveFunc func(payload string) ([]byte, error)

// CursorGenerationService runs the five variant requests one at a time
type CursorGenerationService struct {
	generator domain.ImageGenerator
	delay     time.Duration
	sleep     SleepFunc
	remove    RemoveFunc
	validator *ThemeValidator
	logger    *log.Logger
}

// Option configures a CursorGenerationService
type Option func(*CursorGenerationService)

// WithSleep replaces the delay implementation
func WithSleep(sleep SleepFunc) Option {
	return func(s *CursorGenerationService) { s.sleep = sleep }
}

// WithBackgroundRemover replaces the chroma key step
func WithBackgroundRemover(remove RemoveFunc) Option {
	return func(s *CursorGenerationService) { s.remove = remove }
}

// WithThemeValidator normalizes themes before prompts are built
func WithThemeValidator(v *ThemeValidator) Option {
	return func(s *CursorGenerationService) { s.validator = v }
}

// WithLogger sets the logger used for per-variant failures
func WithLogger(l *log.Logger) Option {
	return func(s *CursorGenerationService) { s.logger = l }
}

// NewCursorGenerationService creates a new cursor generation service
func NewCursorGenerationService(generator domain.ImageGenerator, delay time.Duration, opts ...Option) *CursorGenerationService {
	s := &CursorGenerationService{
		generator: generator,
		delay:     delay,
		sleep:     sleepContext,
		remove:    chromakey.RemoveBase64,
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate builds the prompts for theme, attempts every variant and aggregates the successes.
// It returns domain.ErrNoResults when no variant produced an image.
func (s *CursorGenerationService) Generate(ctx context.Context, theme string) (domain.CursorSet, error) {
	if s.validator != nil {
		normalized, err := s.validator.Normalize(theme)
		if err != nil {
			return domain.CursorSet{}, err
		}
		theme = normalized
	}

	reqs, err := BuildPrompts(theme)
	if err != nil {
		return domain.CursorSet{}, err
	}

	runID := uuid.NewString()
	s.logger.Printf("[generator] run %s: generating %d cursors for theme %q", runID, len(reqs), theme)

	outcomes, err := s.Attempt(ctx, reqs)
	if err != nil {
		return domain.CursorSet{}, fmt.Errorf("run %s aborted: %w", runID, err)
	}

	set := domain.Aggregate(outcomes)
	if set.Empty() {
		s.logger.Printf("[generator] run %s: no cursor could be generated", runID)
		return domain.CursorSet{}, domain.ErrNoResults
	}

	s.logger.Printf("[generator] run %s: generated %d/%d cursors", runID, set.Count(), len(reqs))
	return set, nil
}

// Attempt issues the requests sequentially, waiting the configured delay before every call but the
// first. A failing variant is recorded in its Outcome and never stops the batch. The only error
// returned is the context's, in which case the run is abandoned.
func (s *CursorGenerationService) Attempt(ctx context.Context, reqs []domain.GenerationRequest) ([]domain.Outcome, error) {
	outcomes := make([]domain.Outcome, 0, len(reqs))
	for i, req := range reqs {
		if i > 0 && s.delay > 0 {
			if err := s.sleep(ctx, s.delay); err != nil {
				return nil, err
			}
		}

		outcome := s.attempt(ctx, req)
		if outcome.Err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			s.logger.Printf("[generator] error generating %s: %v", req.Variant, outcome.Err)
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

func (s *CursorGenerationService) attempt(ctx context.Context, req domain.GenerationRequest) domain.Outcome {
	raw, err := s.generator.GenerateImage(ctx, req.PromptText)
	if err != nil {
		return domain.Outcome{Variant: req.Variant, Err: err}
	}
	if raw == nil || raw.Data == "" {
		return domain.Outcome{Variant: req.Variant, Err: domain.ErrNoImageData}
	}

	png, err := s.remove(raw.Data)
	if err != nil {
		return domain.Outcome{Variant: req.Variant, Err: fmt.Errorf("failed to remove background: %w", err)}
	}

	return domain.Outcome{
		Variant: req.Variant,
		Image:   &domain.ProcessedImage{Variant: req.Variant, PNG: png},
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
