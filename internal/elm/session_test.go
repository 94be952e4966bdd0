package elm

import (
	"bytes"
	"strings"
	"testing"
)

// fakeInterface is an io.ReadWriteCloser that answers canned ELM327
// responses keyed by the command it receives, terminating every block
// with the '>' prompt the way a real adapter does.
type fakeInterface struct {
	responses map[string]string
	out       bytes.Buffer
	pending   *strings.Reader
	closed    bool
}

func newFakeInterface(responses map[string]string) *fakeInterface {
	return &fakeInterface{responses: responses}
}

func (f *fakeInterface) Write(p []byte) (int, error) {
	cmd := strings.TrimSpace(string(p))
	resp, ok := f.responses[cmd]
	if !ok {
		resp = "NODATA"
	}
	f.pending = strings.NewReader(resp + "\r\r>")
	return len(p), nil
}

func (f *fakeInterface) Read(p []byte) (int, error) {
	if f.pending == nil {
		return 0, nil
	}
	return f.pending.Read(p)
}

func (f *fakeInterface) Close() error {
	f.closed = true
	return nil
}

func newReadySession(t *testing.T, responses map[string]string) *Session {
	t.Helper()
	fi := newFakeInterface(responses)
	s := NewSession(fi, Options{ReconnAttempts: 1})
	if err := s.Open(); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return s
}

func baseCANResponses() map[string]string {
	return map[string]string{
		"ATZ":  "ELM327 v1.5",
		"ATE0": "OK",
		"ATDP": "ISO 15765-4 (CAN 11/500)",
		"ATH1": "OK",
		"0100": "7E8 06 41 00 BE 3F B8 13",
	}
}

func TestSessionOpenEnumeratesECU(t *testing.T) {
	s := newReadySession(t, baseCANResponses())
	if s.State() != Ready {
		t.Fatalf("got state %v, want Ready", s.State())
	}
	if !s.IsCAN() {
		t.Fatal("expected CAN protocol")
	}
	ecus := s.ECUs()
	if len(ecus) != 1 || ecus[0] != "7E8" {
		t.Fatalf("got ecus %v, want [7E8]", ecus)
	}
}

func TestSessionSensorOneRPM(t *testing.T) {
	responses := baseCANResponses()
	responses["010C"] = "7E8 04 41 0C 1A F8"
	s := newReadySession(t, responses)

	readings, err := s.SensorOne("0C")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(readings) != 1 {
		t.Fatalf("got %d readings, want 1", len(readings))
	}
	if readings[0].Value != "1726" {
		t.Fatalf("got %q, want 1726", readings[0].Value)
	}
	if readings[0].Unit != "RPM" {
		t.Fatalf("got unit %q, want RPM", readings[0].Unit)
	}
}

func TestSessionGetDTCs(t *testing.T) {
	responses := baseCANResponses()
	responses["03"] = "7E8 05 43 01 01 43 00 00"
	responses["07"] = "NODATA"
	s := newReadySession(t, responses)

	dtcs, err := s.GetDTCs()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dtcs) != 1 {
		t.Fatalf("got %d dtcs, want 1: %v", len(dtcs), dtcs)
	}
	if dtcs[0].Code != "P0143" {
		t.Fatalf("got %q, want P0143", dtcs[0].Code)
	}
	if dtcs[0].Class != Active {
		t.Fatalf("got class %v, want Active", dtcs[0].Class)
	}
}

func TestSessionOpenFailsWithoutHandshake(t *testing.T) {
	s := NewSession(newFakeInterface(nil), Options{ReconnAttempts: 1})
	if err := s.Open(); err == nil {
		t.Fatal("expected bring-up failure with no responses configured")
	}
}

func baseNonCANResponses() map[string]string {
	return map[string]string{
		"ATZ":  "ELM327 v1.5",
		"ATE0": "OK",
		"ATDP": "ISO 9141-2",
		"ATH1": "OK",
		"0100": "48 6B 10 41 00 BE 3F B8 13",
	}
}

func TestSessionOpenEnumeratesECUNonCAN(t *testing.T) {
	s := newReadySession(t, baseNonCANResponses())
	if s.IsCAN() {
		t.Fatal("expected non-CAN protocol")
	}
	ecus := s.ECUs()
	if len(ecus) != 1 || ecus[0] != "10" {
		t.Fatalf("got ecus %v, want [10]", ecus)
	}
}

func TestSessionSensorAllBatchedCAN(t *testing.T) {
	responses := baseCANResponses()
	responses["010C0D"] = "7E8 06 41 0C 1A F8 0D 3C"
	s := newReadySession(t, responses)

	readings, err := s.SensorAll([]string{"0C", "0D"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(readings) != 2 {
		t.Fatalf("got %d readings, want 2: %v", len(readings), readings)
	}
	if readings[0].PID != "0C" || readings[0].Value != "1726" {
		t.Fatalf("got %+v, want PID 0C value 1726", readings[0])
	}
	if readings[1].PID != "0D" || readings[1].Value != "37.3" {
		t.Fatalf("got %+v, want PID 0D value 37.3", readings[1])
	}
}
