package tui

import (
	"fmt"
	"strings"
)

// State tracks collected values and server-provided errors keyed by dotted
// paths ("contact.phone").
type State struct {
	values map[string]any
	errors map[string][]string
}

// NewState seeds the state with prefilled values and errors.
func NewState(prefill map[string]any, errs map[string][]string) *State {
	state := &State{
		values: make(map[string]any, len(prefill)),
		errors: make(map[string][]string, len(errs)),
	}
	for k, v := range prefill {
		state.values[k] = v
	}
	for k, v := range errs {
		state.errors[k] = append([]string(nil), v...)
	}
	return state
}

// Values returns the current value map (mutable).
func (s *State) Values() map[string]any {
	if s == nil {
		return nil
	}
	return s.values
}

// ErrorsFor returns the errors attached to a dotted path.
func (s *State) ErrorsFor(path string) []string {
	if s == nil {
		return nil
	}
	return s.errors[path]
}

// GetValue resolves a dotted path into the values map. A flat key holding the
// full path wins over nested maps, matching how RenderOptions.Values is keyed.
func (s *State) GetValue(path string) (any, bool) {
	if s == nil || path == "" {
		return nil, false
	}
	if value, ok := s.values[path]; ok {
		return value, true
	}
	current := any(s.values)
	for _, segment := range strings.Split(path, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = node[segment]; !ok {
			return nil, false
		}
	}
	return current, true
}

// SetValue writes a value using a dotted path, creating intermediate maps as
// needed.
func (s *State) SetValue(path string, value any) error {
	if s == nil {
		return fmt.Errorf("tui: state is nil")
	}
	segments := strings.Split(path, ".")
	node := s.values
	for _, segment := range segments[:len(segments)-1] {
		child, ok := node[segment].(map[string]any)
		if !ok {
			if _, exists := node[segment]; exists {
				return fmt.Errorf("tui: %q is not an object", segment)
			}
			child = make(map[string]any)
			node[segment] = child
		}
		node = child
	}
	node[segments[len(segments)-1]] = value
	return nil
}
