package elm

import (
	"fmt"

	"github.com/anodyne74/obdlink/internal/notifier"
)

var dtcLetters = [4]byte{'P', 'C', 'B', 'U'}

// DecodeDTC turns a 16-bit packed DTC value into its SAE J2012 string
// form, e.g. 0x0143 -> "P0143". The top two bits select the letter
// class, the next two bits are the first digit, and the remaining
// twelve bits are rendered as three hex digits.
//
// The original pyobd implementation rendered the low twelve bits in
// decimal, which desyncs from the hex-digit code whenever any nibble
// exceeds 9; this renders them as %03X per SPEC_FULL.md §9 item 1.
func DecodeDTC(code uint16) string {
	letter := dtcLetters[(code&0xC000)>>14]
	firstDigit := (code & 0x3000) >> 12
	rest := code & 0x0FFF
	return fmt.Sprintf("%c%d%03X", letter, firstDigit, rest)
}

// DTC pairs a decoded trouble code with the raw 16-bit value it came
// from, so callers can log or compare on the packed form too.
type DTC struct {
	Code  string
	Raw   uint16
	ECU   string
	Class DTCClass // Active or Pending
}

// DTCClass distinguishes mode 03 (active/confirmed) codes from mode 07
// (pending) codes.
type DTCClass int

const (
	Active DTCClass = iota
	Pending
)

func (c DTCClass) String() string {
	if c == Pending {
		return "pending"
	}
	return "active"
}

// responseByte is the mode-echo byte a DTC segment must begin with:
// 0x43 for mode 03 (confirmed) reads, 0x47 for mode 07 (pending) reads.
func responseByte(class DTCClass) string {
	if class == Pending {
		return "47"
	}
	return "43"
}

// decodeDTCPayload walks a raw per-ECU payload (as produced by
// parseBytes, i.e. still carrying its mode-echo/count bytes) into
// decoded DTCs. Every segment must start with the class's response
// byte; a segment that doesn't is logged and the rest of the payload
// is abandoned. Over CAN there is exactly one segment, prefixed by a
// DTC count that is cross-checked against expectedCount when haveCount
// is true. Over non-CAN framing, a fresh segment (response byte, no
// count byte) starts every 7 bytes, one per physical response line.
func decodeDTCPayload(note notifier.Notifier, ecu string, payload []string, class DTCClass, canMode bool, expectedCount int, haveCount bool) ([]DTC, error) {
	var out []DTC
	want := responseByte(class)

	i := 0
	for i < len(payload) {
		segmentStart := (canMode && i == 0) || (!canMode && i%7 == 0)
		if segmentStart {
			if payload[i] != want {
				note.Debug(notifier.LevelSession, fmt.Sprintf("unexpected response to DTC read from ECU %s: %q", ecu, payload[i]))
				break
			}
			i++
		}

		if canMode && i == 1 {
			if i < len(payload) {
				n, err := hexToInt(payload[i])
				if err == nil {
					i++
					if haveCount && int(n) != expectedCount {
						note.Debug(notifier.LevelSession, fmt.Sprintf("ECU %s: expected %d DTCs, response carries %d", ecu, expectedCount, n))
					}
				}
			}
		}

		if i+1 >= len(payload) {
			break
		}

		hi, err := hexToUint(payload[i])
		if err != nil {
			return nil, fmt.Errorf("%w: dtc byte %q", ErrUnexpectedResponse, payload[i])
		}
		lo, err := hexToUint(payload[i+1])
		if err != nil {
			return nil, fmt.Errorf("%w: dtc byte %q", ErrUnexpectedResponse, payload[i+1])
		}
		i += 2

		raw := uint16(hi<<8 | lo)
		if raw == 0 {
			continue
		}
		out = append(out, DTC{Code: DecodeDTC(raw), Raw: raw, ECU: ecu, Class: class})
	}
	return out, nil
}
