package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, 10},
		{"explicit", "page=3&limit=25", 3, 25},
		{"zero page falls back", "page=0", 1, 10},
		{"negative page falls back", "page=-2", 1, 10},
		{"garbage falls back", "page=x&limit=y", 1, 10},
		{"limit above cap falls back", "limit=1000", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/?"+tt.query, nil)

			page, limit := ParsePagination(c, 10)
			if page != tt.wantPage || limit != tt.wantLimit {
				t.Errorf("got page=%d limit=%d, want page=%d limit=%d", page, limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestOffsetLimit(t *testing.T) {
	if offset, limit := OffsetLimit(3, 10); offset != 20 || limit != 10 {
		t.Errorf("got offset=%d limit=%d, want 20 and 10", offset, limit)
	}
	if offset, _ := OffsetLimit(1, 10); offset != 0 {
		t.Errorf("first page should have offset 0, got %d", offset)
	}
	if offset, _ := OffsetLimit(0, 10); offset != 0 {
		t.Errorf("invalid page should clamp to offset 0, got %d", offset)
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
		{5, 0, 0},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.limit); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}

func TestPercentZeroDenominator(t *testing.T) {
	if got := Percent(5, 0); got != 0 {
		t.Errorf("Percent with zero whole should be 0, got %v", got)
	}
	if got := Percent(0, 0); got != 0 {
		t.Errorf("Percent(0, 0) should be 0, got %v", got)
	}
	if got := Percent(3, 8); got != 37.5 {
		t.Errorf("Percent(3, 8) = %v, want 37.5", got)
	}
}

func TestRound1(t *testing.T) {
	if got := Round1(66.66666); got != 66.7 {
		t.Errorf("Round1(66.66666) = %v, want 66.7", got)
	}
	if got := Round1(0); got != 0 {
		t.Errorf("Round1(0) = %v, want 0", got)
	}
}
