package utils

import "strconv"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// TotalPages is ceil(total/limit); zero rows means zero pages.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}

	return (total + limit - 1) / limit
}

// ParsePageParam parses a 1-indexed page query value, falling back to the
// first page on garbage input.
func ParsePageParam(raw string) int {
	page, err := strconv.Atoi(raw)

	if err != nil || page < 1 {
		return DefaultPage
	}

	return page
}

// ParseLimitParam parses a page-size query value, clamped to MaxLimit.
func ParseLimitParam(raw string) int {
	limit, err := strconv.Atoi(raw)

	if err != nil || limit < 1 {
		return DefaultLimit
	}

	if limit > MaxLimit {
		return MaxLimit
	}

	return limit
}
