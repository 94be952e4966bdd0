package elm

import (
	"reflect"
	"testing"
)

func TestParseBytesCANSingleFrame(t *testing.T) {
	lines := []string{"7E8 06 41 00 BE 3F B8 13"}
	got := parseBytes(lines, true)
	want := FrameSet{"7E8": {"41", "00", "BE", "3F", "B8", "13"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseBytesCANMultiFrameVIN(t *testing.T) {
	lines := []string{
		"7E8 10 14 49 02 01 31 47 31",
		"7E8 21 4A 43 35 34 34 34 52",
		"7E8 22 37 32 35 32 33 36 37",
	}
	got := parseBytes(lines, true)
	ecuFrame, ok := got["7E8"]
	if !ok {
		t.Fatalf("expected ECU 7E8 in result: %v", got)
	}
	if len(ecuFrame) != 0x14 {
		t.Fatalf("got length %d, want %d", len(ecuFrame), 0x14)
	}
	decoded, err := hexTokensToASCII(ecuFrame[3:])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded != "1G1JC5444R7252367" {
		t.Fatalf("got %q", decoded)
	}
}

func TestParseBytesNonCAN(t *testing.T) {
	lines := []string{"48 6B 10 41 00 BE 3F B8 13"}
	got := parseBytes(lines, false)
	want := FrameSet{"10": {"41", "00", "BE", "3F", "B8", "13"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestInterpretResultCAN(t *testing.T) {
	lines := []string{"7E8 04 41 0C 1A F8"}
	got, err := interpretResult(lines, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["7E8"] != "1AF8" {
		t.Fatalf("got %q, want %q", got["7E8"], "1AF8")
	}
}

func TestInterpretResultNoData(t *testing.T) {
	lines := []string{"NODATA"}
	if _, err := interpretResult(lines, true); err != ErrNoData {
		t.Fatalf("got %v, want ErrNoData", err)
	}
}

func TestInterpretResultNonCAN(t *testing.T) {
	lines := []string{"48 6B 10 41 0C 1A F8"}
	got, err := interpretResult(lines, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["10"] != "1AF8" {
		t.Fatalf("got %v", got)
	}
}
