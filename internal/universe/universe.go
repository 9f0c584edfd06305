package universe

import "sort"

// Registry maps tradable symbols to display names. The set is fixed at
// construction; lookups are read-only and safe for concurrent use.
type Registry struct {
	names map[string]string
}

// New builds a registry from a symbol→name table.
func New(names map[string]string) *Registry {
	m := make(map[string]string, len(names))
	for s, n := range names {
		m[s] = n
	}
	return &Registry{names: m}
}

// Default returns the registry for the built-in BIST universe.
func Default() *Registry { return New(bistStocks) }

// Name returns the display name for a symbol, falling back to the symbol
// itself when unknown.
func (r *Registry) Name(symbol string) string {
	if n, ok := r.names[symbol]; ok {
		return n
	}
	return symbol
}

// Has reports whether the symbol is part of the universe.
func (r *Registry) Has(symbol string) bool {
	_, ok := r.names[symbol]
	return ok
}

// Symbols returns all symbols in sorted order.
func (r *Registry) Symbols() []string {
	out := make([]string, 0, len(r.names))
	for s := range r.names {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Table returns a copy of the symbol→name mapping.
func (r *Registry) Table() map[string]string {
	out := make(map[string]string, len(r.names))
	for s, n := range r.names {
		out[s] = n
	}
	return out
}

// Len returns the universe size.
func (r *Registry) Len() int { return len(r.names) }
