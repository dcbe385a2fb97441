package shared_test

import (
	"strings"
	"testing"

	"cottage/shared"
	"cottage/shared/constant"
	"cottage/shared/dto"
)

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{"zero total", 0, 10, 1},
		{"zero limit", 25, 0, 1},
		{"exact division", 20, 10, 2},
		{"with remainder", 21, 10, 3},
		{"single page", 5, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shared.CalculateTotalPage(tt.total, tt.limit); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestTransformFields(t *testing.T) {
	name := "Deluxe AC"

	data := struct {
		Name     *string  `db:"name"`
		Price    float64  `db:"price_per_night"`
		Guests   int      `db:"max_guests"`
		Untagged string
		Skipped  *float64 `db:"description"`
	}{
		Name:   &name,
		Price:  3000,
		Guests: 0,
	}

	fields := shared.TransformFields(data)

	if fields["name"] != "Deluxe AC" {
		t.Errorf("expected pointer field to be dereferenced, got %v", fields["name"])
	}

	if fields["price_per_night"] != 3000.0 {
		t.Errorf("expected price to be set, got %v", fields["price_per_night"])
	}

	if _, ok := fields["max_guests"]; ok {
		t.Error("expected zero field to be skipped")
	}

	if _, ok := fields["description"]; ok {
		t.Error("expected nil pointer field to be skipped")
	}

	if _, ok := fields[constant.FieldUpdatedAt]; !ok {
		t.Error("expected updated_at to always be set")
	}
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("abc-123", "id", "rooms")

	clause, args := group.GetWhereClause()

	if clause != "(rooms.id = :id)" {
		t.Errorf("expected id equality clause, got %q", clause)
	}

	if args["id"] != "abc-123" {
		t.Errorf("expected id arg, got %+v", args)
	}
}

func TestBuildCacheKey(t *testing.T) {
	key := shared.BuildCacheKey("room:get", "abc-123")

	if key != "room:get:abc-123" {
		t.Errorf("expected colon-joined key, got %s", key)
	}
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}

	filterA := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "status", Value: "pending", Operator: dto.FilterOperatorEq},
		},
	}
	filterB := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "status", Value: "confirmed", Operator: dto.FilterOperatorEq},
		},
	}

	keyA := shared.BuildCacheKeyWithQuery("booking:gets", params, filterA)
	keyB := shared.BuildCacheKeyWithQuery("booking:gets", params, filterB)

	if !strings.HasPrefix(keyA, "booking:gets:") {
		t.Errorf("expected key to keep the prefix, got %s", keyA)
	}

	if keyA == keyB {
		t.Error("expected distinct filters to produce distinct keys")
	}

	keyA2 := shared.BuildCacheKeyWithQuery("booking:gets", params, filterA)
	if keyA != keyA2 {
		t.Error("expected the same query to produce a stable key")
	}
}
