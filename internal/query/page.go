package query

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Envelope wraps one page of rows into the uniform list response:
// success flag, the rows under key, and next/previous page links.
//
// next exists iff offset+limit < total and limit <= total; previous exists
// iff offset-limit >= 0 and limit <= total. With total == 0 the limit guard
// fails and neither link is produced. Query parameters other than limit and
// offset are carried over into both links.
func Envelope[T any](path, rawQuery, key string, rows []T, total int64, limit, offset int) map[string]any {
	data := map[string]any{
		"success":  len(rows) > 0,
		"next":     nil,
		"previous": nil,
		key:        rows,
	}

	passthrough := passthroughParams(rawQuery)

	if int64(offset+limit) < total && int64(limit) <= total {
		data["next"] = pageLink(path, limit, offset+limit, passthrough)
	}
	if offset-limit >= 0 && int64(limit) <= total {
		data["previous"] = pageLink(path, limit, offset-limit, passthrough)
	}
	return data
}

// passthroughParams re-encodes the original query string with the limit and
// offset parameters stripped.
func passthroughParams(rawQuery string) string {
	if rawQuery == "" {
		return ""
	}
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return ""
	}
	values.Del("limit")
	values.Del("offset")
	return values.Encode()
}

func pageLink(path string, limit, offset int, passthrough string) string {
	link := fmt.Sprintf("%s?limit=%d&offset=%d", path, limit, offset)
	if passthrough != "" {
		link += "&" + passthrough
	}
	return link
}

var multiSpace = regexp.MustCompile(`\s{2,}`)

// NormalizeSpaces trims the string and collapses runs of whitespace into a
// single space. Applied to free-text fields before length validation and
// persistence.
func NormalizeSpaces(s string) string {
	return multiSpace.ReplaceAllString(strings.TrimSpace(s), " ")
}
