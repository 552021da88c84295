// Package checks builds requirement predicates over comment-stripped source.
//
// Predicates are lenient pattern matches, not verification: they look for
// the presence of a construct and accept common equivalents.
package checks

import (
	"fmt"
	"regexp"

	m "labgrade.dev/pkg/labgrade/internal/model"
)

// Compile turns a regular expression into a predicate. Matching is
// case-insensitive unless caseSensitive is set.
func Compile(expr string, caseSensitive bool) (m.Predicate, error) {
	re, err := compile(expr, caseSensitive)
	if err != nil {
		return nil, err
	}

	return re.MatchString, nil
}

// Pattern is Compile for built-in expressions; it panics on an invalid
// expression. Matching is case-insensitive.
func Pattern(expr string) m.Predicate {
	return mustCompile(expr).MatchString
}

// CompileAtLeast returns a predicate that holds when expr matches at least n
// non-overlapping times.
func CompileAtLeast(expr string, n int, caseSensitive bool) (m.Predicate, error) {
	re, err := compile(expr, caseSensitive)
	if err != nil {
		return nil, err
	}

	return atLeast(re, n), nil
}

// AtLeast is CompileAtLeast for built-in expressions.
func AtLeast(expr string, n int) m.Predicate {
	return atLeast(mustCompile(expr), n)
}

func atLeast(re *regexp.Regexp, n int) m.Predicate {
	return func(cleaned string) bool {
		if n <= 0 {
			return true
		}

		return len(re.FindAllStringIndex(cleaned, n)) >= n
	}
}

// AnyOf holds when at least one alternative holds. Evaluation stops at the
// first match; the result is a single pass/fail, not a tally.
func AnyOf(alternatives ...m.Predicate) m.Predicate {
	return func(cleaned string) bool {
		for _, alt := range alternatives {
			if alt(cleaned) {
				return true
			}
		}

		return false
	}
}

// AnyPattern is AnyOf over case-insensitive expressions.
func AnyPattern(exprs ...string) m.Predicate {
	alternatives := make([]m.Predicate, 0, len(exprs))
	for _, expr := range exprs {
		alternatives = append(alternatives, Pattern(expr))
	}

	return AnyOf(alternatives...)
}

// AllOf holds when every predicate holds. An empty list holds.
func AllOf(preds ...m.Predicate) m.Predicate {
	return func(cleaned string) bool {
		for _, p := range preds {
			if !p(cleaned) {
				return false
			}
		}

		return true
	}
}

// Not inverts a predicate.
func Not(p m.Predicate) m.Predicate {
	return func(cleaned string) bool {
		return !p(cleaned)
	}
}

func compile(expr string, caseSensitive bool) (*regexp.Regexp, error) {
	if !caseSensitive {
		expr = "(?i)" + expr
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", expr, err)
	}

	return re, nil
}

func mustCompile(expr string) *regexp.Regexp {
	re, err := compile(expr, false)
	if err != nil {
		panic(err)
	}

	return re
}
