package dataset

import (
	"testing"

	"github.com/YuminosukeSato/ridgereg/pkg/errors"
)

func TestEncoding_Encode(t *testing.T) {
	enc := Encoding{
		"district": {"north": 0, "south": 1},
	}

	code, err := enc.Encode("district", "south")
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if code != 1 {
		t.Errorf("Expected code 1, got %f", code)
	}

	var invalid *errors.InvalidInputError
	if _, err := enc.Encode("district", "west"); !errors.As(err, &invalid) {
		t.Fatalf("Expected InvalidInputError for unknown category, got %v", err)
	}
	if _, err := enc.Encode("city", "north"); !errors.As(err, &invalid) {
		t.Fatalf("Expected InvalidInputError for unmapped column, got %v", err)
	}
}

func TestFromMixedRecords(t *testing.T) {
	columns := []string{"area", "rooms", "district"}
	enc := Encoding{
		"district": {"north": 0, "south": 1},
	}

	table, err := FromMixedRecords(columns, []map[string]any{
		{"area": 52.5, "rooms": 2, "district": "north"},
		{"area": 60.0, "rooms": int64(3), "district": "south"},
	}, enc)
	if err != nil {
		t.Fatalf("FromMixedRecords failed: %v", err)
	}

	d, err := table.Column("district")
	if err != nil {
		t.Fatalf("Column failed: %v", err)
	}
	if d[0] != 0 || d[1] != 1 {
		t.Errorf("Expected encoded district [0 1], got %v", d)
	}
	rooms, err := table.Column("rooms")
	if err != nil {
		t.Fatalf("Column failed: %v", err)
	}
	if rooms[0] != 2 || rooms[1] != 3 {
		t.Errorf("Expected rooms [2 3], got %v", rooms)
	}
}

func TestFromMixedRecords_Invalid(t *testing.T) {
	columns := []string{"district"}
	enc := Encoding{"district": {"north": 0}}

	tests := []struct {
		name   string
		record map[string]any
	}{
		{name: "unknown category", record: map[string]any{"district": "east"}},
		{name: "unsupported kind", record: map[string]any{"district": true}},
		{name: "nil value", record: map[string]any{"district": nil}},
		{name: "missing covariate", record: map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromMixedRecords(columns, []map[string]any{tt.record}, enc)
			var invalid *errors.InvalidInputError
			if !errors.As(err, &invalid) {
				t.Fatalf("Expected InvalidInputError, got %v", err)
			}
		})
	}
}
