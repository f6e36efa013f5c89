// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides fault-tolerant conversions for query parameters.

Do not use this package where a malformed value must be reported; the
helpers here silently fall back.
*/
package convert

import (
	"strconv"
	"strings"
)

// ToIntD converts a string to an int, returning def if it is empty or malformed.
func ToIntD(str string, def int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(str)); err == nil {
		return v
	}
	return def
}

// ToBoolPtr parses "true"/"false"/"1"/"0". It returns nil when the value is
// empty or malformed so that "not given" stays distinguishable from false.
func ToBoolPtr(str string) *bool {
	v, err := strconv.ParseBool(strings.TrimSpace(str))
	if err != nil {
		return nil
	}
	return &v
}
