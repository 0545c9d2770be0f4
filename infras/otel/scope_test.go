package otel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestToAttribute(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected attribute.Value
	}{
		{name: "bool", value: true, expected: attribute.BoolValue(true)},
		{name: "string", value: "pi_123", expected: attribute.StringValue("pi_123")},
		{name: "int", value: 3, expected: attribute.IntValue(3)},
		{name: "int64", value: int64(1125), expected: attribute.Int64Value(1125)},
		{name: "float", value: 11.25, expected: attribute.Float64Value(11.25)},
		{name: "slice", value: []string{"a", "b"}, expected: attribute.StringSliceValue([]string{"a", "b"})},
		{name: "stringer", value: time.Second, expected: attribute.StringValue("1s")},
		{name: "fallback", value: struct{ A int }{1}, expected: attribute.StringValue("{1}")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := toAttribute("key", tt.value)

			assert.Equal(t, attribute.Key("key"), kv.Key)
			assert.Equal(t, tt.expected, kv.Value)
		})
	}
}
