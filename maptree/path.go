// Package maptree implements the path-directed map tree (spec.md
// §4.11): a tree keyed by JSON/XML path segments whose nodes link to
// destination cells or range-field columns. The package builds and
// queries the tree only; it has no walker that consumes a parser's
// event stream and emits values.
package maptree

import (
	"fmt"
	"strconv"
	"strings"
)

// tokenKind discriminates one parsed path segment.
type tokenKind int

const (
	tokenArrayPos tokenKind = iota // [n]
	tokenAnyPos                    // [] — any array position
	tokenObjectKey                 // ['key']
)

type pathToken struct {
	kind tokenKind
	pos  int
	key  string
}

// AnyPosition is the child slot a bare "[]" token addresses: "this
// array's elements share one destination regardless of index."
const AnyPosition = -1

// parsePath splits a "$"-rooted path into its sequence of tokens. Paths
// must start with "$"; every following token is either "[n]", "[]", or
// "['key']".
func parsePath(path string) ([]pathToken, error) {
	if !strings.HasPrefix(path, "$") {
		return nil, fmt.Errorf("maptree: path must start with '$': %q", path)
	}
	s := path[1:]
	var tokens []pathToken
	for len(s) > 0 {
		if s[0] != '[' {
			return nil, fmt.Errorf("maptree: expected '[' in path %q", path)
		}
		end := strings.IndexByte(s, ']')
		if end < 0 {
			return nil, fmt.Errorf("maptree: unterminated '[' in path %q", path)
		}
		inner := s[1:end]
		s = s[end+1:]

		switch {
		case inner == "":
			tokens = append(tokens, pathToken{kind: tokenAnyPos})
		case len(inner) >= 2 && inner[0] == '\'' && inner[len(inner)-1] == '\'':
			tokens = append(tokens, pathToken{kind: tokenObjectKey, key: inner[1 : len(inner)-1]})
		default:
			n, err := strconv.Atoi(inner)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("maptree: invalid array position %q in path %q", inner, path)
			}
			tokens = append(tokens, pathToken{kind: tokenArrayPos, pos: n})
		}
	}
	return tokens, nil
}
