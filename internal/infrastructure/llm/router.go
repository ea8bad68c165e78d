package llm

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/seanebones-lang/Parts-Dept/internal/core/domain"
	"github.com/seanebones-lang/Parts-Dept/internal/infrastructure/resilience"
)

const defaultMaxTokens = 1500

// Observer receives routing transitions so fallbacks stay diagnosable.
type Observer interface {
	GenerateObserved(provider string, tier domain.Tier, duration time.Duration, err error)
	FallbackObserved(fromProvider, toProvider string)
}

// route is one provider attempt in a tier's chain.
type route struct {
	provider Provider
	tier     domain.Tier
}

// Router maps tiers onto providers and walks an explicit fallback
// chain: FAST and QUALITY are fixed, BALANCED falls back once to FAST,
// and an exhausted chain earns one last-resort FAST attempt before the
// call surfaces as fatal. Retry-with-backoff applies per provider, not
// across the chain.
type Router struct {
	fast     Provider
	balanced Provider
	quality  Provider

	executor *resilience.Executor
	observer Observer
}

type RouterOption func(*Router)

func WithObserver(observer Observer) RouterOption {
	return func(r *Router) { r.observer = observer }
}

func NewRouter(fast, balanced, quality Provider, executor *resilience.Executor, opts ...RouterOption) *Router {
	r := &Router{
		fast:     fast,
		balanced: balanced,
		quality:  quality,
		executor: executor,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Router) chain(tier domain.Tier) []route {
	switch tier {
	case domain.TierQuality:
		return []route{{r.quality, domain.TierQuality}}
	case domain.TierBalanced:
		return []route{{r.balanced, domain.TierBalanced}, {r.fast, domain.TierFast}}
	default:
		return []route{{r.fast, domain.TierFast}}
	}
}

func (r *Router) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
	tier := req.Tier
	if tier == "" {
		tier = SelectTier(req.Prompt, 0)
	}
	if req.MaxTokens <= 0 {
		req.MaxTokens = defaultMaxTokens
	}
	slog.Info("llm_tier_selected", "tier", tier)

	chain := r.chain(tier)
	var lastErr error
	for i, rt := range chain {
		if i > 0 {
			r.noteFallback(chain[i-1].provider.Name(), rt.provider.Name(), lastErr)
		}
		text, err := r.callProvider(ctx, rt.provider, rt.tier, req)
		if err == nil {
			return &domain.GenerationResult{Text: text, ModelUsed: rt.provider.Name(), Tier: rt.tier}, nil
		}
		lastErr = err
	}

	// Last resort: one more FAST pass before giving up.
	r.noteFallback(chain[len(chain)-1].provider.Name(), r.fast.Name(), lastErr)
	text, err := r.callProvider(ctx, r.fast, domain.TierFallback, req)
	if err == nil {
		return &domain.GenerationResult{
			Text:      text,
			ModelUsed: r.fast.Name() + "_fallback",
			Tier:      domain.TierFallback,
		}, nil
	}
	lastErr = err

	return nil, domain.WrapError(domain.ErrProviderExhausted, "generate", lastErr)
}

func (r *Router) callProvider(ctx context.Context, p Provider, tier domain.Tier, req domain.GenerationRequest) (string, error) {
	// A missing API key is a configuration gap, not a transient fault:
	// it triggers the same fallback step but skips the retry budget.
	if !p.Configured() {
		err := domain.WrapError(domain.ErrNotConfigured, p.Name(), errors.New("missing credentials"))
		r.observe(p.Name(), tier, 0, err)
		return "", err
	}

	var text string
	start := time.Now()
	err := r.executor.Execute(ctx, "llm."+p.Name(), func(callCtx context.Context) error {
		out, callErr := p.Call(callCtx, req.Prompt, req.System, req.MaxTokens)
		if callErr != nil {
			return callErr
		}
		text = out
		return nil
	}, ClassifyProviderError)
	r.observe(p.Name(), tier, time.Since(start), err)

	if err != nil {
		slog.Error("provider_call_failed", "provider", p.Name(), "tier", tier, "error", err)
		return "", err
	}
	return text, nil
}

func (r *Router) noteFallback(from, to string, cause error) {
	slog.Warn("provider_fallback", "from", from, "to", to, "cause", cause)
	if r.observer != nil {
		r.observer.FallbackObserved(from, to)
	}
}

func (r *Router) observe(provider string, tier domain.Tier, duration time.Duration, err error) {
	if r.observer != nil {
		r.observer.GenerateObserved(provider, tier, duration, err)
	}
}
