package utils

import (
	"fmt"
	"net/url"
	"strconv"
)

// ParseIntParam retrieves an integer value from the provided URL query
// parameters. If the key is absent it returns fallback; an unparsable value
// is recorded in the fieldErrors map.
func ParseIntParam(params url.Values, key string, fallback int, fieldErrors map[string][]string) (int, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}

	val := params.Get(key)
	if val == "" {
		return fallback, fieldErrors
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		fieldErrors[key] = append(fieldErrors[key], fmt.Sprintf("Invalid field value for field %q.", key))
		return fallback, fieldErrors
	}
	return n, fieldErrors
}

// ParseDurationMSParam reads a millisecond count from the query parameters,
// returning fallback when absent.
func ParseDurationMSParam(params url.Values, key string, fallback int64, fieldErrors map[string][]string) (int64, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}

	val := params.Get(key)
	if val == "" {
		return fallback, fieldErrors
	}

	ms, err := strconv.ParseInt(val, 10, 64)
	if err != nil || ms < 0 {
		fieldErrors[key] = append(fieldErrors[key], fmt.Sprintf("Invalid field value for field %q.", key))
		return fallback, fieldErrors
	}
	return ms, fieldErrors
}
