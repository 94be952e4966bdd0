package capture

import (
	"testing"

	"github.com/anodyne74/obdlink/internal/elm"
)

func TestFrameFromReadingRPM(t *testing.T) {
	r := elm.Reading{ECU: "7E8", PID: "0C", Name: "Engine RPM", Value: "1726", Unit: "RPM", Raw: "1AF8"}
	frame := FrameFromReading(r)

	decoded, ok := frame.Decoded.(map[string]interface{})
	if !ok {
		t.Fatalf("expected decoded map, got %T", frame.Decoded)
	}
	if decoded["ecu"] != "7E8" {
		t.Errorf("got ecu %v, want 7E8", decoded["ecu"])
	}
	if decoded["rpm"] != 1726.0 {
		t.Errorf("got rpm %v, want 1726", decoded["rpm"])
	}
}

func TestFrameFromDTCs(t *testing.T) {
	dtcs := []elm.DTC{{Code: "P0143"}, {Code: "P0221"}}
	frame := FrameFromDTCs("7E8", dtcs)

	decoded, ok := frame.Decoded.(map[string]interface{})
	if !ok {
		t.Fatalf("expected decoded map, got %T", frame.Decoded)
	}
	codes, ok := decoded["dtcs"].([]string)
	if !ok || len(codes) != 2 {
		t.Fatalf("got dtcs %v", decoded["dtcs"])
	}
}
