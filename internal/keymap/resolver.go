package keymap

import "github.com/samber/lo"

// Resolver answers both directions: which action a key triggers, and which
// binding documents an action.
type Resolver struct {
	actions  map[string]Action
	bindings map[Action]Binding // first binding seen, keys merged
}

// NewResolver indexes bindings. A key bound twice keeps its last action.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		actions:  make(map[string]Action),
		bindings: make(map[Action]Binding),
	}
	for _, b := range bindings {
		for _, k := range b.Keys {
			r.actions[k] = b.Action
		}
		merged, seen := r.bindings[b.Action]
		if !seen {
			merged = b
			merged.Keys = nil
		}
		merged.Keys = lo.Uniq(append(merged.Keys, b.Keys...))
		r.bindings[b.Action] = merged
	}
	return r
}

// Default returns a resolver over All.
func Default() *Resolver {
	return NewResolver(All)
}

// Resolve returns the action bound to key, or "" when none is.
func (r *Resolver) Resolve(key string) Action {
	return r.actions[key]
}

// KeysFor returns every key bound to action, in declaration order.
func (r *Resolver) KeysFor(action Action) []string {
	return r.bindings[action].Keys
}

// Binding returns the merged binding for action.
func (r *Resolver) Binding(action Action) (Binding, bool) {
	b, ok := r.bindings[action]
	return b, ok
}
