// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides quick type-conversion utilities.

It wraps [strconv] to provide fault-tolerant conversions for query parameters,
where a malformed value should simply fall back to a default.

Do not use this package if distinguishing between malformed data and zero values
is important in your domain logic; use explicit standard libraries instead.
*/
package convert

import (
	"strconv"
)

// ToIntD converts a string to an int, returning the provided default if parsing fails or string is empty.
func ToIntD(str string, def int) int {

	// If the string is empty, return the default value
	if str == "" {
		return def
	}

	// Try to parse the string as an integer
	if v, err := strconv.Atoi(str); err == nil {
		return v
	}

	// If parsing fails, return the default value
	return def
}

// ToIntPtr converts a string to *int, returning nil on empty or malformed input.
// Used for optional numeric filters where "absent" and "0" differ.
func ToIntPtr(str string) *int {
	if str == "" {
		return nil
	}

	v, err := strconv.Atoi(str)
	if err != nil {
		return nil
	}
	return &v
}
