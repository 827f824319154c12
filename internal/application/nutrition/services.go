package nutrition

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/bryanwahyu/macro-estimator/internal/application"
	domain "github.com/bryanwahyu/macro-estimator/internal/domain/nutrition"
)

// Credential is the secret a completion provider needs.
// Optional is set for providers that run without one.
type Credential struct {
	Name     string
	Value    string
	Optional bool
}

func (c Credential) Configured() bool {
	return c.Optional || strings.TrimSpace(c.Value) != ""
}

type Service struct {
	Completer  domain.Completer
	Prompt     func(food string) string
	Credential Credential
	Provider   string
	Clock      application.Clock
}

// Analyze runs prompt, completion and parsing for one validated query.
// A missing credential fails before the completer is called.
func (s *Service) Analyze(ctx context.Context, q domain.FoodQuery) (domain.NutrientEstimate, error) {
	if !s.Credential.Configured() {
		return domain.NutrientEstimate{}, &domain.ConfigError{Name: s.Credential.Name}
	}
	if s.Completer == nil || s.Prompt == nil {
		return domain.NutrientEstimate{}, fmt.Errorf("nutrition service not wired: completer and prompt are required")
	}

	text, err := s.Completer.Complete(ctx, s.Prompt(q.Food))
	if err != nil {
		return domain.NutrientEstimate{}, fmt.Errorf("completion failed: %w", err)
	}
	return domain.ParseEstimate(text)
}

// Evaluate is Analyze folded into an Outcome.
func (s *Service) Evaluate(ctx context.Context, q domain.FoodQuery) domain.Outcome {
	est, err := s.Analyze(ctx, q)
	if err != nil {
		return domain.Failed(err)
	}
	return domain.Succeeded(est)
}

// CheckStatus is the unauthenticated deployment probe payload.
type CheckStatus struct {
	HasKey   bool      `json:"hasKey"`
	Provider string    `json:"provider"`
	Go       string    `json:"go"`
	Time     time.Time `json:"time"`
}

func (s *Service) Check() CheckStatus {
	return CheckStatus{
		HasKey:   s.Credential.Configured(),
		Provider: s.Provider,
		Go:       runtime.Version(),
		Time:     s.now().UTC(),
	}
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock.Now()
}
