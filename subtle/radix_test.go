package subtle

import (
	"errors"
	"testing"
)

// Expected min_len values mirror the reference radix() unit test from the
// upstream Rust FF1 implementation this engine is ported from.
func TestNewRadix(t *testing.T) {
	cases := []struct {
		r       uint32
		wantErr bool
		minLen  uint32
	}{
		{r: 1, wantErr: true},
		{r: 2, minLen: 20},
		{r: 3, minLen: 13},
		{r: 4, minLen: 10},
		{r: 5, minLen: 9},
		{r: 6, minLen: 8},
		{r: 7, minLen: 8},
		{r: 8, minLen: 7},
		{r: 10, minLen: 6},
		{r: 32768, minLen: 2},
		{r: 65535, minLen: 2},
		{r: 65536, minLen: 2},
		{r: 65537, wantErr: true},
	}

	for _, tc := range cases {
		rad, err := newRadix(tc.r)
		if tc.wantErr {
			var invalid *InvalidRadixError
			if !errors.As(err, &invalid) {
				t.Errorf("newRadix(%d): error = %v, want *InvalidRadixError", tc.r, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("newRadix(%d): unexpected error: %v", tc.r, err)
		}
		if rad.minLen != tc.minLen {
			t.Errorf("newRadix(%d).minLen = %d, want %d", tc.r, rad.minLen, tc.minLen)
		}
	}
}

func TestRadixPowerTwoClassification(t *testing.T) {
	for _, r := range []uint32{2, 4, 8, 16, 32768, 65536} {
		rad, err := newRadix(r)
		if err != nil {
			t.Fatalf("newRadix(%d): %v", r, err)
		}
		if !rad.powerTwo {
			t.Errorf("radix %d should classify as PowerTwo", r)
		}
	}
	for _, r := range []uint32{3, 10, 36, 62, 100} {
		rad, err := newRadix(r)
		if err != nil {
			t.Fatalf("newRadix(%d): %v", r, err)
		}
		if rad.powerTwo {
			t.Errorf("radix %d should not classify as PowerTwo", r)
		}
	}
}

func TestCheckNSLength(t *testing.T) {
	rad, err := newRadix(10)
	if err != nil {
		t.Fatalf("newRadix: %v", err)
	}

	if err := rad.checkNSLength(5); err == nil {
		t.Error("expected TooShortError for length below min_len")
	}
	if err := rad.checkNSLength(6); err != nil {
		t.Errorf("length at min_len should be accepted, got: %v", err)
	}
	if err := rad.checkNSLength(20); err != nil {
		t.Errorf("typical length should be accepted, got: %v", err)
	}
}

func TestCalculateB(t *testing.T) {
	// PowerTwo branch: exact integer arithmetic.
	rad, err := newRadix(16) // logRadix = 4
	if err != nil {
		t.Fatalf("newRadix: %v", err)
	}
	if got := rad.calculateB(4); got != 2 { // (4*4+7)/8 = 2
		t.Errorf("calculateB(4) = %d, want 2", got)
	}

	// Any branch: matches ceil(v*log2(radix)/8).
	rad10, err := newRadix(10)
	if err != nil {
		t.Fatalf("newRadix: %v", err)
	}
	if got := rad10.calculateB(3); got != 2 { // ceil(3*log2(10)/8) = ceil(1.2457...) = 2
		t.Errorf("calculateB(3) for radix 10 = %d, want 2", got)
	}
}
