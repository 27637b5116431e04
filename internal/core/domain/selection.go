package domain

import "log/slog"

// A Selection is the buyer's in-progress choice of option values,
// keyed by option name. Updates are immutable: With returns a copy.
type Selection map[string]string

func (s Selection) With(name, value string) Selection {
	next := make(Selection, len(s)+1)
	for k, v := range s {
		next[k] = v
	}
	next[name] = value
	return next
}

func (s Selection) Value(name string) (string, bool) {
	v, ok := s[name]
	return v, ok
}

// SelectionComplete reports whether every declared option has a value.
func SelectionComplete(p Product, sel Selection) bool {
	for _, opt := range p.Options {
		if v, ok := sel[opt.Name]; !ok || v == "" {
			return false
		}
	}
	return true
}

// declared drops selection keys that are not declared option names.
// A stray key is a data-integrity warning, not a failure.
func (s Selection) declared(p Product) Selection {
	const op = "Selection.declared"

	stray := false
	for k := range s {
		if !p.hasOption(k) {
			slog.Warn("stray selection key",
				"op", op, "product", p.Slug, "key", k)
			stray = true
		}
	}
	if !stray {
		return s
	}

	next := make(Selection, len(s))
	for k, v := range s {
		if p.hasOption(k) {
			next[k] = v
		}
	}
	return next
}

func (p Product) hasOption(name string) bool {
	for _, opt := range p.Options {
		if opt.Name == name {
			return true
		}
	}
	return false
}
