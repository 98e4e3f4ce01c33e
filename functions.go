package rxselect

// Match is Default().Match.
func Match(pattern, subject string, opts ...Option) (Selection[*Capture], error) {
	return Default().Match(pattern, subject, opts...)
}

// MatchAll is Default().MatchAll.
func MatchAll(pattern, subject string, opts ...Option) (Selection[[]*Capture], error) {
	return Default().MatchAll(pattern, subject, opts...)
}

// MatchReplace is Default().MatchReplace.
func MatchReplace(pattern, replacement string, subject *string, opts ...Option) (Selection[*Capture], error) {
	return Default().MatchReplace(pattern, replacement, subject, opts...)
}
