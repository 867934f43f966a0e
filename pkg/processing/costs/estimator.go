package costs

import (
	"fmt"
	"math"
	"math/big"
	"sync"

	"qdpi-hq/tna/pkg/config"
	"qdpi-hq/tna/pkg/processing/tokens"
	"qdpi-hq/tna/pkg/vocab"
)

// Estimate tokenizes text and converts the token count into TNA cost units:
// count / tokensPerUnit, without rounding.
//
// tokensPerUnit must be finite and greater than zero, otherwise
// *InvalidConfigurationError is returned before any tokenization happens.
// Tokenizer errors are returned unchanged.
func Estimate(text string, t tokens.Tokenizer, store *vocab.Store, tokensPerUnit float64) (*CostUnit, error) {
	if err := checkTokensPerUnit(tokensPerUnit); err != nil {
		return nil, err
	}

	count, err := tokens.Count(t, text, store)
	if err != nil {
		return nil, err
	}

	return FromCount(count, tokensPerUnit)
}

// FromCount converts an existing token count into TNA cost units.
func FromCount(count int, tokensPerUnit float64) (*CostUnit, error) {
	if err := checkTokensPerUnit(tokensPerUnit); err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("token count must not be negative, got %d", count)
	}

	// SetFloat64 is exact for every finite float64, so a divisor like 100
	// yields exactly count/100.
	divisor := new(big.Rat).SetFloat64(tokensPerUnit)
	value := new(big.Rat).SetInt64(int64(count))
	value.Quo(value, divisor)

	return &CostUnit{
		Tokens:        count,
		TokensPerUnit: tokensPerUnit,
		value:         value,
	}, nil
}

func checkTokensPerUnit(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return &InvalidConfigurationError{Field: "tokens_per_unit", Value: v}
	}
	return nil
}

// Estimator applies a configured divisor. It is safe for concurrent use and
// supports hot reload of its configuration.
type Estimator struct {
	// config contains cost conversion configuration
	config *config.CostsConfig

	// mu protects config
	mu sync.RWMutex
}

// ValidateConfig reports whether cfg can be used by an Estimator.
func ValidateConfig(cfg *config.CostsConfig) error {
	return checkTokensPerUnit(cfg.TokensPerUnit)
}

// NewEstimator validates cfg and returns an Estimator using a copy of it.
// Later changes to cfg do not affect the Estimator.
func NewEstimator(cfg *config.CostsConfig) (*Estimator, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	c := *cfg
	return &Estimator{config: &c}, nil
}

// TokensPerUnit returns the divisor currently in effect.
func (e *Estimator) TokensPerUnit() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.config.TokensPerUnit
}

// Estimate tokenizes text with t and converts the count using the
// configured divisor.
func (e *Estimator) Estimate(text string, t tokens.Tokenizer, store *vocab.Store) (*CostUnit, error) {
	return Estimate(text, t, store, e.TokensPerUnit())
}

// FromCount converts count using the configured divisor.
func (e *Estimator) FromCount(count int) (*CostUnit, error) {
	return FromCount(count, e.TokensPerUnit())
}

// UpdateConfig swaps in a copy of cfg. An invalid configuration is
// rejected and the current one stays in effect.
func (e *Estimator) UpdateConfig(cfg *config.CostsConfig) error {
	if err := ValidateConfig(cfg); err != nil {
		return err
	}
	c := *cfg

	e.mu.Lock()
	defer e.mu.Unlock()
	e.config = &c
	return nil
}
