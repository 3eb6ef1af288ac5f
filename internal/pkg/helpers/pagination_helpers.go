package helpers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1 // pages are 1-based
	MaxPageLimit = 100
)

// ParsePagination extracts 1-based page and limit query parameters,
// falling back to page 1 and defaultLimit on missing or invalid values.
func ParsePagination(c *gin.Context, defaultLimit int) (page, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit <= 0 || limit > MaxPageLimit {
		limit = defaultLimit
	}

	return page, limit
}

// OffsetLimit converts a 1-based page number into a skip offset.
func OffsetLimit(page, limit int) (offset int64, lim int64) {
	if page < 1 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = 1
	}
	return int64((page - 1) * limit), int64(limit)
}

// TotalPages returns ceil(total/limit). A page request beyond this range
// yields an empty item list, never an error.
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}

// Percent returns part/whole as a percentage, 0 when the whole is 0.
// Every rate in the application goes through here so the zero-denominator
// behavior is uniform.
func Percent(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// Round1 rounds a float to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
