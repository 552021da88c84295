package domain

import (
	"labgrade.dev/pkg/labgrade/internal/domain/lexer"
	m "labgrade.dev/pkg/labgrade/internal/model"
)

// Snapshot is the immutable, comment-stripped view of a submission that every
// requirement set is evaluated against.
type Snapshot struct {
	texts map[m.Role]string
	paths map[m.Role]m.Path
}

// NewSnapshot strips comments from every available source. Sources whose
// cleaned text is empty are recorded by path only so missing-file messages
// can name them. Whitespace left behind by comments still counts as content.
func NewSnapshot(sources []m.Source) Snapshot {
	snap := Snapshot{
		texts: make(map[m.Role]string, len(sources)),
		paths: make(map[m.Role]m.Path, len(sources)),
	}

	for _, src := range sources {
		if src.Found() {
			snap.paths[src.Role] = src.Path
		}

		if !src.Available() {
			continue
		}

		cleaned := lexer.StripComments(*src.Content)
		if cleaned == "" {
			continue
		}

		snap.texts[src.Role] = cleaned
	}

	return snap
}

// Text returns the cleaned text for role, if any.
func (s Snapshot) Text(role m.Role) (string, bool) {
	text, ok := s.texts[role]
	return text, ok
}

// Path returns the located path for role, even when it was unreadable.
func (s Snapshot) Path(role m.Role) (m.Path, bool) {
	path, ok := s.paths[role]
	return path, ok
}
