package format

import (
	"math"
	"testing"
	"time"
)

func TestFiletimeToTime(t *testing.T) {
	tests := []struct {
		name  string
		ticks int64
		want  string
	}{
		{"unix epoch", 116444736000000000, "1970-01-01T00:00:00Z"},
		{"filetime epoch", 0, "1601-01-01T00:00:00Z"},
		{"sub-second truncated", 116444736000000000 + 9_999_999, "1970-01-01T00:00:00Z"},
		{"2019 timestamp", 132000000000000000, "2019-04-17T18:40:00Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FiletimeToTime(tt.ticks).Format(time.RFC3339)
			if got != tt.want {
				t.Fatalf("FiletimeToTime(%d) = %s, want %s", tt.ticks, got, tt.want)
			}
		})
	}
}

func TestOLEDateToTime(t *testing.T) {
	tests := []struct {
		name string
		date float64
		want string
	}{
		{"unix epoch", 25569.0, "1970-01-01T00:00:00Z"},
		{"ole epoch", 0, "1899-12-30T00:00:00Z"},
		{"noon", 25569.5, "1970-01-01T12:00:00Z"},
		{"before ole epoch", -1.0, "1899-12-29T00:00:00Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := OLEDateToTime(tt.date)
			if !ok {
				t.Fatalf("OLEDateToTime(%v) reported failure", tt.date)
			}
			if s := got.Format(time.RFC3339); s != tt.want {
				t.Fatalf("OLEDateToTime(%v) = %s, want %s", tt.date, s, tt.want)
			}
		})
	}

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), math.MaxFloat64} {
		if _, ok := OLEDateToTime(bad); ok {
			t.Fatalf("OLEDateToTime(%v) should fail", bad)
		}
	}
}

func TestPad4(t *testing.T) {
	for n, want := range map[int]int{0: 0, 1: 3, 2: 2, 3: 1, 4: 0, 5: 3, 8: 0, 10: 2} {
		if got := Pad4(n); got != want {
			t.Fatalf("Pad4(%d) = %d, want %d", n, got, want)
		}
	}
}
