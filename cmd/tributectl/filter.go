// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"strings"

	"github.com/taibuivan/tributestream/pkg/cmsquery"
)

// parseFilter reads "field=value" or "field:$op=value".
func parseFilter(raw string) (field, operator, value string, err error) {
	left, value, ok := strings.Cut(raw, "=")
	if !ok || left == "" {
		return "", "", "", fmt.Errorf("invalid filter %q: want field=value or field:$op=value", raw)
	}

	field, operator, ok = strings.Cut(left, ":")
	if !ok {
		return field, cmsquery.OpEqual, value, nil
	}
	if field == "" || !strings.HasPrefix(operator, "$") {
		return "", "", "", fmt.Errorf("invalid filter %q: operator must start with $", raw)
	}
	return field, operator, value, nil
}
