package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDLess(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"numeric by value not text", "9", "10", true},
		{"numeric by value not text reversed", "10", "9", false},
		{"equal numeric", "42", "42", false},
		{"leading zeros compare numerically", "007", "10", true},
		{"plain strings", "CS101", "CS102", true},
		{"digit ids sort before non-digit ids", "9999", "ABC", true},
		{"non-digit id after digit id", "ABC", "1", false},
		{"empty string is not numeric", "", "1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IDLess(tt.a, tt.b))
		})
	}
}

func TestRawSlotRowKey(t *testing.T) {
	row := RawSlotRow{RCID: "101", SlotID: "S1", SlotCode: "A", DayTime: "Mon 09:00", SegName: "2"}
	assert.Equal(t, SlotKey{RCID: "101", SlotID: "S1", SlotCode: "A"}, row.Key())
}
