package labs

import (
	"sort"

	m "labgrade.dev/pkg/labgrade/internal/model"
)

var builtin = map[string]func() m.Lab{
	ReactStarterName: ReactStarter,
}

// Lookup returns the built-in lab registered under name.
func Lookup(name string) (m.Lab, bool) {
	build, ok := builtin[name]
	if !ok {
		return m.Lab{}, false
	}

	return build(), true
}

// Names lists the built-in labs in lexical order.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
