package hotspot

import "github.com/mr1hm/go-health-hotspots/internal/models"

// Resolution is the outcome of resolving one raw location query.
type Resolution struct {
	Query      string
	Normalized string
	Hotspot    models.Hotspot
	Strategy   MatchStrategy
}

type Resolver struct {
	registry *Registry
}

func NewResolver(registry *Registry) *Resolver {
	return &Resolver{registry: registry}
}

func (r *Resolver) Registry() *Registry {
	return r.registry
}

// Resolve normalizes raw and matches it against the registry. The returned
// Resolution always carries Query and Normalized, even when ok is false.
func (r *Resolver) Resolve(raw string) (Resolution, bool) {
	res := Resolution{
		Query:      raw,
		Normalized: Normalize(raw),
	}

	name, strategy, ok := MatchWithStrategy(res.Normalized, r.registry.names)
	if !ok {
		return res, false
	}
	h, ok := r.registry.Lookup(name)
	if !ok {
		return res, false
	}
	res.Hotspot = h
	res.Strategy = strategy
	return res, true
}
