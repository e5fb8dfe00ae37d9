// Package lookup resolves short user-typed names against a fixed
// candidate list. Resolution is case-insensitive and runs in two
// passes: exact match against every name and alias, then prefix match
// against canonical names only.
package lookup

import (
	"fmt"
	"strings"
)

// Entry is one named candidate in a lookup table.
type Entry[T any] struct {
	Value   T
	Name    string   // canonical name, also matched by prefix
	Aliases []string // exact-match alternates
}

// NotFoundError reports a query that matched nothing.
type NotFoundError struct {
	Query string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no match for %q", e.Query)
}

// AmbiguousError reports a prefix that matched more than one
// candidate. Candidates appear in table order.
type AmbiguousError struct {
	Query      string
	Candidates []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("%q is ambiguous: matches %s", e.Query, strings.Join(e.Candidates, ", "))
}

// Find resolves query against entries. An exact match on a name or
// alias wins outright; otherwise the query must be a prefix of exactly
// one canonical name.
func Find[T any](query string, entries []Entry[T]) (T, error) {
	var zero T
	q := strings.ToLower(query)
	for _, e := range entries {
		if q == e.Name {
			return e.Value, nil
		}
		for _, a := range e.Aliases {
			if q == a {
				return e.Value, nil
			}
		}
	}
	var matched []Entry[T]
	for _, e := range entries {
		if strings.HasPrefix(e.Name, q) {
			matched = append(matched, e)
		}
	}
	switch len(matched) {
	case 1:
		return matched[0].Value, nil
	case 0:
		return zero, &NotFoundError{Query: query}
	default:
		names := make([]string, len(matched))
		for i, m := range matched {
			names[i] = m.Name
		}
		return zero, &AmbiguousError{Query: query, Candidates: names}
	}
}
