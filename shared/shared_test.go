package shared_test

import (
	"context"
	"errors"
	"reflect"
	"sparkle/shared"
	cacheMocks "sparkle/shared/cache/mocks"
	"sparkle/shared/constant"
	"sparkle/shared/dto"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"
)

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total returns 1", total: 0, limit: 10, expected: 1},
		{name: "zero limit returns 1", total: 100, limit: 0, expected: 1},
		{name: "exact division", total: 100, limit: 10, expected: 10},
		{name: "division with remainder", total: 101, limit: 10, expected: 11},
		{name: "limit greater than total", total: 5, limit: 10, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := shared.CalculateTotalPage(tt.total, tt.limit); result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestTransformFields(t *testing.T) {
	type transition struct {
		Status          string `db:"status"`
		ResponseMessage string `db:"response_message"`
		Reason          string `db:"cancellation_reason"`
		Ignored         string
	}

	result := shared.TransformFields(transition{Status: "accepted", ResponseMessage: "see you then", Ignored: "x"}, "biz-owner")

	expected := map[string]any{
		"status":           "accepted",
		"response_message": "see you then",
	}

	for key, value := range expected {
		if !reflect.DeepEqual(result[key], value) {
			t.Errorf("expected %s to be %v, got %v", key, value, result[key])
		}
	}

	if _, ok := result["cancellation_reason"]; ok {
		t.Error("expected zero field to be skipped")
	}

	if _, ok := result[constant.FieldModifiedAt].(time.Time); !ok {
		t.Error("expected modified_at to be a time.Time")
	}

	if result[constant.FieldModifiedBy] != "biz-owner" {
		t.Errorf("expected modified_by to be biz-owner, got %v", result[constant.FieldModifiedBy])
	}

	if len(result) != 4 {
		t.Errorf("expected 4 fields, got %d: %+v", len(result), result)
	}
}

func TestFilterByID(t *testing.T) {
	result := shared.FilterByID("bk-1", "id", "booking_requests")

	expected := dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    "id",
				Value:    "bk-1",
				Operator: dto.FilterOperatorEq,
				Table:    "booking_requests",
			},
		},
	}

	if !reflect.DeepEqual(result, expected) {
		t.Errorf("expected %+v, got %+v", expected, result)
	}
}

func TestBuildCacheKey(t *testing.T) {
	if key := shared.BuildCacheKey("booking:get", "bk-1"); key != "booking:get:bk-1" {
		t.Errorf("unexpected key %s", key)
	}

	if key := shared.BuildCacheKey("limiter"); key != "limiter" {
		t.Errorf("unexpected key %s", key)
	}
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	mine := dto.And(dto.Eq("booking_requests", "customer_id", "cus-1"))
	theirs := dto.And(dto.Eq("booking_requests", "customer_id", "cus-2"))

	first := shared.BuildCacheKeyWithQuery("booking:gets", params, mine)
	again := shared.BuildCacheKeyWithQuery("booking:gets", params, mine)
	other := shared.BuildCacheKeyWithQuery("booking:gets", params, theirs)

	if first != again {
		t.Errorf("expected stable key, got %s and %s", first, again)
	}

	if first == other {
		t.Error("expected different filters to produce different keys")
	}

	if !strings.HasPrefix(first, "booking:gets:") {
		t.Errorf("expected prefix, got %s", first)
	}
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Clear(gomock.Any(), "booking:gets*").Return(errors.New("redis down"))

	shared.InvalidateCaches(context.Background(), mockCache, "booking:gets")
}

func TestActorFromContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1")
	if got := shared.ActorFromContext(ctx); got != "user-1" {
		t.Errorf("expected user-1, got %s", got)
	}

	ctx = context.WithValue(context.Background(), constant.ContextKeyInternal, true)
	if got := shared.ActorFromContext(ctx); got != "internal" {
		t.Errorf("expected internal, got %s", got)
	}

	if got := shared.ActorFromContext(context.Background()); got != "system" {
		t.Errorf("expected system, got %s", got)
	}
}
