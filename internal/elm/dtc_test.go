package elm

import (
	"testing"

	"github.com/anodyne74/obdlink/internal/notifier"
)

func TestDecodeDTC(t *testing.T) {
	cases := []struct {
		raw  uint16
		want string
	}{
		{0x0143, "P0143"},
		{0x4021, "C0021"},
		{0x8103, "B0103"},
		{0xC210, "U0210"},
	}
	for _, c := range cases {
		if got := DecodeDTC(c.raw); got != c.want {
			t.Errorf("DecodeDTC(0x%04X) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestDecodeDTCPayloadSkipsZeroPadding(t *testing.T) {
	// CAN segment: mode-echo(43), count(02), then three DTC pairs with
	// the middle one zero-padding to be skipped.
	payload := []string{"43", "02", "01", "43", "00", "00", "02", "21"}
	dtcs, err := decodeDTCPayload(notifier.Discard{}, "7E8", payload, Active, true, 2, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dtcs) != 2 {
		t.Fatalf("got %d dtcs, want 2: %v", len(dtcs), dtcs)
	}
	if dtcs[0].Code != "P0143" {
		t.Errorf("got %q, want P0143", dtcs[0].Code)
	}
	if dtcs[1].Code != "P0221" {
		t.Errorf("got %q, want P0221", dtcs[1].Code)
	}
}

func TestDecodeDTCPayloadRejectsWrongResponseByte(t *testing.T) {
	payload := []string{"41", "02", "01", "43"}
	dtcs, err := decodeDTCPayload(notifier.Discard{}, "7E8", payload, Active, true, 0, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dtcs) != 0 {
		t.Fatalf("got %d dtcs, want 0 for a segment with the wrong mode-echo byte", len(dtcs))
	}
}

func TestDecodeDTCPayloadNonCANMultiSegment(t *testing.T) {
	// Two non-CAN segments of 7 bytes each: response byte, then 6
	// payload bytes (three DTC pairs) per segment.
	payload := []string{
		"43", "01", "43", "00", "00", "00", "00",
		"43", "02", "21", "00", "00", "00", "00",
	}
	dtcs, err := decodeDTCPayload(notifier.Discard{}, "48", payload, Active, false, 0, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dtcs) != 2 {
		t.Fatalf("got %d dtcs, want 2: %v", len(dtcs), dtcs)
	}
	if dtcs[0].Code != "P0143" || dtcs[1].Code != "P0221" {
		t.Fatalf("got %v", dtcs)
	}
}
