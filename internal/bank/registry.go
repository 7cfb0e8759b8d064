package bank

import (
	"sort"

	"go.uber.org/zap"
)

// Registry maps bank codes to their adapters. Resolution of an unknown code
// falls back to a designated default adapter instead of failing; callers that
// pass a code nobody recognizes still get a usable bank.
type Registry struct {
	adapters map[string]Adapter
	fallback Adapter
	logger   *zap.Logger
}

// NewRegistry creates a registry with the given fallback adapter. The
// fallback is also registered under its own code.
func NewRegistry(fallback Adapter, logger *zap.Logger) *Registry {
	r := &Registry{
		adapters: make(map[string]Adapter),
		fallback: fallback,
		logger:   logger,
	}
	r.Register(fallback)
	return r
}

// Register adds an adapter under its bank code, replacing any previous
// adapter for the same code.
func (r *Registry) Register(adapter Adapter) {
	r.adapters[adapter.Code()] = adapter
}

// Resolve returns the adapter for the given bank code, or the fallback
// adapter when the code is unknown.
func (r *Registry) Resolve(code string) Adapter {
	if adapter, ok := r.adapters[code]; ok {
		return adapter
	}

	r.logger.Warn("Unknown bank code, using default adapter",
		zap.String("bank_code", code),
		zap.String("default", r.fallback.Code()))

	return r.fallback
}

// SupportedBanks returns the sorted list of registered bank codes.
func (r *Registry) SupportedBanks() []string {
	codes := make([]string, 0, len(r.adapters))
	for code := range r.adapters {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
