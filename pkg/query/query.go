// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query holds small parsers for URL query values.
package query

import (
	"strings"
)

// StringSlice parses one or more comma-separated query values into a single
// trimmed slice. Empty entries are dropped.
//
//	StringSlice("name, city")         -> [name city]
//	StringSlice("a,b", "c")           -> [a b c]
func StringSlice(vals ...string) []string {
	var res []string
	for _, val := range vals {
		for _, v := range strings.Split(val, ",") {
			if clean := strings.TrimSpace(v); clean != "" {
				res = append(res, clean)
			}
		}
	}
	return res
}

// Brackets splits a key of the form `root[a][b][c]` into its root and the
// bracketed segments. A key without brackets returns no segments; a
// malformed key returns ok=false.
//
//	Brackets("filters[name][$eq]") -> "filters", [name $eq], true
func Brackets(key string) (root string, segments []string, ok bool) {
	open := strings.IndexByte(key, '[')
	if open < 0 {
		return key, nil, true
	}

	root, rest := key[:open], key[open:]
	for rest != "" {
		if rest[0] != '[' {
			return "", nil, false
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return "", nil, false
		}
		segments = append(segments, rest[1:end])
		rest = rest[end+1:]
	}
	return root, segments, true
}
