package keymap

// Resolver maps key strings to actions within one context.
type Resolver struct {
	bindings map[string]Action
	byAction map[Action][]string
}

// NewResolver creates a resolver from bindings. A key bound twice resolves
// to the later binding.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings: make(map[string]Action),
		byAction: make(map[Action][]string),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.bindings[key] = b.Action
			if !contains(r.byAction[b.Action], key) {
				r.byAction[b.Action] = append(r.byAction[b.Action], key)
			}
		}
	}
	return r
}

// ForContexts builds a resolver over All restricted to the given contexts.
func ForContexts(contexts ...string) *Resolver {
	var bindings []Binding
	for _, c := range contexts {
		bindings = append(bindings, ByContext(c)...)
	}
	return NewResolver(bindings)
}

// Resolve returns the action for a key, or empty string if not bound.
func (r *Resolver) Resolve(key string) Action {
	return r.bindings[key]
}

// KeysFor returns the keys bound to an action.
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
