// Package simulator implements a minimal ELM327 interpreter over a
// serial port or TCP socket, for exercising internal/elm without real
// hardware.
package simulator

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// state holds the simulated vehicle's current sensor values and
// active DTCs, updated once per tick by a background goroutine.
type state struct {
	rpm   float64
	speed float64
	temp  float64
	dtcs  []uint16
}

// TestDTCs are injected at random into a running simulation.
var TestDTCs = []string{
	"P0087",
	"P0088",
	"P0191",
	"P0401",
	"P0234",
}

// Emulator answers ELM327 AT commands and mode-01/03/04/07/09 OBD
// requests the way a single-ECU, CAN-bus interface would, at ECU
// address 7E8.
type Emulator struct {
	ecu   string
	vin   string
	state state
}

// NewEmulator returns an Emulator seeded with idle engine values.
func NewEmulator() *Emulator {
	e := &Emulator{
		ecu: "7E8",
		vin: "1G1JC5444R7252367",
		state: state{
			rpm:   800,
			speed: 0,
			temp:  85,
		},
	}
	go e.run()
	return e
}

func (e *Emulator) run() {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for range ticker.C {
		e.state.rpm = 800 + rand.Float64()*2200
		e.state.speed = rand.Float64() * 120
		e.state.temp = 80 + rand.Float64()*15

		if rand.Float64() < 0.02 && len(e.state.dtcs) < 2 {
			code := TestDTCs[rand.Intn(len(TestDTCs))]
			raw, err := encodeDTC(code)
			if err == nil && !hasDTC(e.state.dtcs, raw) {
				e.state.dtcs = append(e.state.dtcs, raw)
			}
		}
	}
}

func hasDTC(dtcs []uint16, code uint16) bool {
	for _, d := range dtcs {
		if d == code {
			return true
		}
	}
	return false
}

// encodeDTC is the inverse of elm.DecodeDTC: it packs a "P0087"-style
// string back into the 16-bit SAE J2012 code an ECU would report.
func encodeDTC(code string) (uint16, error) {
	if len(code) != 5 {
		return 0, fmt.Errorf("invalid DTC %q", code)
	}
	letters := map[byte]uint16{'P': 0, 'C': 1, 'B': 2, 'U': 3}
	class, ok := letters[code[0]]
	if !ok {
		return 0, fmt.Errorf("invalid DTC class %q", code[0])
	}
	firstDigit, err := strconv.ParseUint(code[1:2], 10, 8)
	if err != nil {
		return 0, err
	}
	rest, err := strconv.ParseUint(code[2:], 16, 16)
	if err != nil {
		return 0, err
	}
	return class<<14 | uint16(firstDigit)<<12 | uint16(rest), nil
}

// Serve reads CR-terminated ELM327 commands from rw until the
// connection closes, answering each with the matching response lines
// and a trailing prompt, matching the framing internal/elm's
// lineReader expects.
func (e *Emulator) Serve(rw io.ReadWriter) error {
	r := bufio.NewReader(rw)
	for {
		line, err := r.ReadString('\r')
		if err != nil {
			return err
		}
		cmd := strings.ToUpper(strings.TrimSpace(line))
		if cmd == "" {
			continue
		}
		for _, resp := range e.handle(cmd) {
			if _, err := io.WriteString(rw, resp+"\r"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(rw, "\r>"); err != nil {
			return err
		}
	}
}

func (e *Emulator) handle(cmd string) []string {
	switch {
	case cmd == "ATZ":
		return []string{"ELM327 v1.5"}
	case cmd == "ATE0" || cmd == "ATL0" || cmd == "ATH1" || cmd == "ATS0":
		return []string{"OK"}
	case strings.HasPrefix(cmd, "ATDP"):
		return []string{"ISO 15765-4 (CAN 11/500)"}
	case cmd == "0100":
		return []string{e.ecu + " 06 41 00 BE 3F B8 13"}
	case len(cmd) == 4 && strings.HasPrefix(cmd, "01"):
		return e.sensorResponse(cmd[2:])
	case cmd == "03":
		return e.dtcResponse(0x43)
	case cmd == "07":
		return []string{"NODATA"}
	case cmd == "04":
		e.state.dtcs = nil
		return []string{"OK"}
	case cmd == "0902":
		return e.vinResponse()
	default:
		return []string{"NODATA"}
	}
}

func (e *Emulator) sensorResponse(pid string) []string {
	switch pid {
	case "0C":
		raw := uint16(e.state.rpm * 4)
		return []string{fmt.Sprintf("%s 04 41 0C %02X %02X", e.ecu, byte(raw>>8), byte(raw))}
	case "0D":
		return []string{fmt.Sprintf("%s 03 41 0D %02X", e.ecu, byte(e.state.speed))}
	case "05":
		return []string{fmt.Sprintf("%s 03 41 05 %02X", e.ecu, byte(e.state.temp+40))}
	default:
		return []string{"NODATA"}
	}
}

func (e *Emulator) dtcResponse(modeEcho byte) []string {
	if len(e.state.dtcs) == 0 {
		return []string{"NODATA"}
	}
	payloadLen := 2 + 2*len(e.state.dtcs) // mode-echo + count + 2 bytes/DTC
	tokens := []string{e.ecu, fmt.Sprintf("0%X", payloadLen), fmt.Sprintf("%02X", modeEcho), fmt.Sprintf("%02X", len(e.state.dtcs))}
	for _, d := range e.state.dtcs {
		tokens = append(tokens, fmt.Sprintf("%02X", byte(d>>8)), fmt.Sprintf("%02X", byte(d)))
	}
	return []string{strings.Join(tokens, " ")}
}

// vinResponse splits the 20-byte payload (49 02 01 plus the
// 17-character VIN) across an ISO-TP first frame carrying six bytes
// and two 7-byte consecutive frames the way a real ECU would, so a
// multi-frame read exercises internal/elm's reassembly.
func (e *Emulator) vinResponse() []string {
	header := []byte{0x49, 0x02, 0x01}
	payload := append(header, []byte(e.vin)...)

	first := payload[:6]
	rest := payload[6:]

	lines := []string{
		fmt.Sprintf("%s 10 %02X %s", e.ecu, len(payload), hexJoin(first)),
	}
	seq := 1
	for len(rest) > 0 {
		n := 7
		if n > len(rest) {
			n = len(rest)
		}
		lines = append(lines, fmt.Sprintf("%s 2%X %s", e.ecu, seq, hexJoin(rest[:n])))
		rest = rest[n:]
		seq++
	}
	return lines
}

func hexJoin(b []byte) string {
	parts := make([]string, len(b))
	for i, c := range b {
		parts[i] = fmt.Sprintf("%02X", c)
	}
	return strings.Join(parts, " ")
}
