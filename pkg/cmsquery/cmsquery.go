// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cmsquery converts list/read query descriptors between the gateway's
inbound form and the CMS's bracketed upstream form.

Forms:

  - Inbound:  page=2&pageSize=10&sort=name:asc&filters[name][$eq]=Acme&populate=directors
  - Upstream: pagination[page]=2&pagination[pageSize]=10&sort[0]=name:asc&filters[name][$eq]=Acme&populate[0]=directors

The gateway never filters or sorts locally. A descriptor is parsed, and then
re-emitted for the upstream untouched in meaning.
*/
package cmsquery

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/taibuivan/tributestream/pkg/convert"
	"github.com/taibuivan/tributestream/pkg/query"
)

// OpEqual is the operator assumed for a bare `filters[field]=value`.
const OpEqual = "$eq"

// Pagination selects a page. Zero values mean "not requested".
type Pagination struct {
	Page      int
	PageSize  int
	WithCount *bool
	Start     int
	Limit     int
}

// Query is the descriptor for list and read operations.
type Query struct {
	Pagination Pagination

	// Sort entries look like "name:asc".
	Sort []string

	// Filters maps a dotted field path ("owner.id") to operator → value.
	Filters map[string]map[string]string

	Fields   []string
	Populate []string

	// Extra carries parameters the descriptor does not model. Values are
	// string, []string, or anything JSON-encodable.
	Extra map[string]any
}

// IsZero reports whether nothing was requested.
func (q Query) IsZero() bool {
	return q.Pagination == (Pagination{}) && len(q.Sort) == 0 && len(q.Filters) == 0 &&
		len(q.Fields) == 0 && len(q.Populate) == 0 && len(q.Extra) == 0
}

// Where adds a filter and returns q for chaining.
func (q *Query) Where(field, operator, value string) *Query {
	if q.Filters == nil {
		q.Filters = map[string]map[string]string{}
	}
	if q.Filters[field] == nil {
		q.Filters[field] = map[string]string{}
	}
	q.Filters[field][operator] = value
	return q
}

// # Parsing

// Parse reads an inbound query string. Unknown keys land in Extra; malformed
// bracket keys are ignored.
func Parse(values url.Values) Query {
	var q Query

	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		last := vals[len(vals)-1]

		root, segments, ok := query.Brackets(key)
		if !ok {
			continue
		}

		switch {
		case key == "page":
			q.Pagination.Page = convert.ToIntD(last, 0)
		case key == "pageSize":
			q.Pagination.PageSize = convert.ToIntD(last, 0)
		case root == "pagination" && len(segments) == 1:
			q.parsePagination(segments[0], last)
		case root == "sort":
			q.Sort = append(q.Sort, indexedOrList(segments, vals)...)
		case root == "fields":
			q.Fields = append(q.Fields, indexedOrList(segments, vals)...)
		case root == "populate":
			q.Populate = append(q.Populate, indexedOrList(segments, vals)...)
		case root == "filters" && len(segments) > 0:
			field, operator := filterPath(segments)
			q.Where(field, operator, last)
		default:
			q.addExtra(key, vals)
		}
	}

	// Indexed keys arrive in map order; restore their declared order.
	q.Sort = orderIndexed(values, "sort", q.Sort)
	q.Fields = orderIndexed(values, "fields", q.Fields)
	q.Populate = orderIndexed(values, "populate", q.Populate)

	return q
}

func (q *Query) parsePagination(name, value string) {
	switch name {
	case "page":
		q.Pagination.Page = convert.ToIntD(value, 0)
	case "pageSize":
		q.Pagination.PageSize = convert.ToIntD(value, 0)
	case "start":
		q.Pagination.Start = convert.ToIntD(value, 0)
	case "limit":
		q.Pagination.Limit = convert.ToIntD(value, 0)
	case "withCount":
		q.Pagination.WithCount = convert.ToBoolPtr(value)
	}
}

func (q *Query) addExtra(key string, vals []string) {
	if q.Extra == nil {
		q.Extra = map[string]any{}
	}
	key = strings.TrimSuffix(key, "[]")
	if len(vals) == 1 {
		q.Extra[key] = vals[0]
		return
	}
	q.Extra[key] = append([]string(nil), vals...)
}

// filterPath splits bracket segments into a dotted field path and operator.
// The last segment is the operator when it starts with "$".
func filterPath(segments []string) (field, operator string) {
	last := segments[len(segments)-1]
	if strings.HasPrefix(last, "$") && len(segments) > 1 {
		return strings.Join(segments[:len(segments)-1], "."), last
	}
	return strings.Join(segments, "."), OpEqual
}

// indexedOrList handles both `sort=a,b` and `sort[0]=a`.
func indexedOrList(segments []string, vals []string) []string {
	if len(segments) == 0 || segments[0] == "" {
		return query.StringSlice(vals...)
	}
	return query.StringSlice(vals[len(vals)-1])
}

// orderIndexed reorders entries collected from `root[i]` keys by i. Comma
// lists under the bare root keep their position ahead of indexed entries.
func orderIndexed(values url.Values, root string, collected []string) []string {
	type entry struct {
		index int
		value string
	}

	var indexed []entry
	for key, vals := range values {
		r, segments, ok := query.Brackets(key)
		if !ok || r != root || len(segments) != 1 || len(vals) == 0 {
			continue
		}
		i, err := strconv.Atoi(segments[0])
		if err != nil {
			continue
		}
		indexed = append(indexed, entry{index: i, value: strings.TrimSpace(vals[len(vals)-1])})
	}
	if len(indexed) == 0 {
		return collected
	}

	sort.Slice(indexed, func(a, b int) bool { return indexed[a].index < indexed[b].index })

	ordered := query.StringSlice(append(values[root], values[root+"[]"]...)...)
	for _, e := range indexed {
		if e.value != "" {
			ordered = append(ordered, e.value)
		}
	}
	return ordered
}

// # Emission

// Inbound renders the descriptor in the gateway's own query form.
// Parse(q.Inbound()) reproduces q.
func (q Query) Inbound() url.Values {
	values := url.Values{}

	if q.Pagination.Page > 0 {
		values.Set("page", strconv.Itoa(q.Pagination.Page))
	}
	if q.Pagination.PageSize > 0 {
		values.Set("pageSize", strconv.Itoa(q.Pagination.PageSize))
	}
	q.Pagination.setOffset(values)

	setList(values, "sort", q.Sort)
	setList(values, "fields", q.Fields)
	setList(values, "populate", q.Populate)
	q.setFilters(values)
	q.setExtra(values, false)

	return values
}

// Upstream renders the descriptor in the CMS's bracketed form.
func (q Query) Upstream() url.Values {
	values := url.Values{}

	if q.Pagination.Page > 0 {
		values.Set("pagination[page]", strconv.Itoa(q.Pagination.Page))
	}
	if q.Pagination.PageSize > 0 {
		values.Set("pagination[pageSize]", strconv.Itoa(q.Pagination.PageSize))
	}
	q.Pagination.setOffset(values)

	setIndexed(values, "sort", q.Sort)
	setIndexed(values, "fields", q.Fields)
	if len(q.Populate) == 1 && q.Populate[0] == "*" {
		values.Set("populate", "*")
	} else {
		setIndexed(values, "populate", q.Populate)
	}
	q.setFilters(values)
	q.setExtra(values, true)

	return values
}

func (p Pagination) setOffset(values url.Values) {
	if p.Start > 0 {
		values.Set("pagination[start]", strconv.Itoa(p.Start))
	}
	if p.Limit > 0 {
		values.Set("pagination[limit]", strconv.Itoa(p.Limit))
	}
	if p.WithCount != nil {
		values.Set("pagination[withCount]", strconv.FormatBool(*p.WithCount))
	}
}

func (q Query) setFilters(values url.Values) {
	for field, operators := range q.Filters {
		path := "filters[" + strings.ReplaceAll(field, ".", "][") + "]"
		for operator, value := range operators {
			values.Set(path+"["+operator+"]", value)
		}
	}
}

// setExtra emits unmodelled parameters. In upstream form, lists become
// repeated `key[]` values and structured values are JSON-stringified.
func (q Query) setExtra(values url.Values, upstream bool) {
	for key, raw := range q.Extra {
		switch v := raw.(type) {
		case string:
			values.Set(key, v)
		case []string:
			if upstream {
				values[key+"[]"] = append([]string(nil), v...)
			} else {
				values[key] = append([]string(nil), v...)
			}
		case fmt.Stringer:
			values.Set(key, v.String())
		case int, int64, float64, bool:
			values.Set(key, fmt.Sprint(v))
		default:
			encoded, err := json.Marshal(v)
			if err != nil {
				continue
			}
			values.Set(key, string(encoded))
		}
	}
}

func setList(values url.Values, key string, list []string) {
	if len(list) > 0 {
		values.Set(key, strings.Join(list, ","))
	}
}

func setIndexed(values url.Values, key string, list []string) {
	for i, item := range list {
		values.Set(key+"["+strconv.Itoa(i)+"]", item)
	}
}
