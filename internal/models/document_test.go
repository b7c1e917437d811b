package models

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_JSONFlattensID(t *testing.T) {
	doc := NewDocument("abc", map[string]any{"name": "Ann"})

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"abc","name":"Ann"}`, string(data))

	var decoded Document
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "abc", decoded.ID)
	assert.Equal(t, map[string]any{"name": "Ann"}, decoded.Fields)
}

func TestDocument_UnmarshalWithoutID(t *testing.T) {
	var d Document
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Bob"}`), &d))
	assert.Empty(t, d.ID)
	assert.Equal(t, "Bob", d.Get("name"))
}

func TestDocument_GetOnNilFields(t *testing.T) {
	var d Document
	assert.Nil(t, d.Get("anything"))
}

func TestTime_AcceptedShapes(t *testing.T) {
	want := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)

	tests := []struct {
		name string
		in   any
	}{
		{"time value", want},
		{"time pointer", &want},
		{"rfc3339 string", "2026-02-03T04:05:06Z"},
		{"millisecond string", "2026-02-03T04:05:06.000Z"},
		{"firestore export", map[string]any{"_seconds": float64(want.Unix()), "_nanoseconds": float64(0)}},
		{"seconds object", map[string]any{"seconds": float64(want.Unix())}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Time(tt.in)
			require.True(t, ok)
			assert.True(t, want.Equal(got))
		})
	}

	_, ok := Time("yesterday")
	assert.False(t, ok)
	_, ok = Time(nil)
	assert.False(t, ok)
}

func TestLooseValues(t *testing.T) {
	assert.Equal(t, "3", String(float64(3)))
	assert.Equal(t, "x", String("x"))
	assert.Equal(t, "", String(nil))
	assert.True(t, Bool("true"))
	assert.False(t, Bool(nil))
	assert.Equal(t, 12.5, Float("12.5"))
	assert.Equal(t, float64(7), Float(int64(7)))
	assert.Equal(t, []string{"a", "b"}, Strings([]any{"a", "b"}))
	assert.Nil(t, Strings(nil))
	assert.Len(t, Maps([]any{map[string]any{"a": 1}, "skip"}), 1)
}

func TestFormatISO(t *testing.T) {
	ts := time.Date(2026, 2, 3, 4, 5, 6, 789000000, time.FixedZone("X", 3600))
	assert.Equal(t, "2026-02-03T03:05:06.789Z", FormatISO(ts))
}
