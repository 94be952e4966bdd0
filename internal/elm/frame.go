package elm

import "strings"

// FrameSet maps an ECU address to its ordered payload bytes, each held
// as a 2-char hex token. The mode/PID prefix the ECU echoed back is
// retained at the head of the sequence.
type FrameSet map[string][]string

// parseBytes splits a response block into per-ECU payloads, handling
// both the header-per-line non-CAN form and the ISO-TP single/first/
// consecutive frame form used over CAN.
//
// The parser is defensive about frame order: a consecutive frame
// arriving before its first frame zero-fills up through that frame's
// end rather than failing.
func parseBytes(lines []string, canMode bool) FrameSet {
	result := FrameSet{}
	byteCount := map[string]int{}

	for _, line := range lines {
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}

		if !canMode {
			if len(tokens) < 3 {
				continue
			}
			ecu := tokens[2]
			result[ecu] = append(result[ecu], tokens[3:]...)
			continue
		}

		if len(tokens) < 2 {
			continue
		}
		ecu := tokens[0]
		pci := tokens[1]
		if len(pci) < 2 {
			continue
		}
		rest := tokens[2:]

		switch pci[0] {
		case '0': // single frame: low nibble is payload length
			n, err := hexToInt(pci[1:2])
			if err != nil {
				continue
			}
			take := int(n)
			if take > len(rest) {
				take = len(rest)
			}
			result[ecu] = append(result[ecu], rest[:take]...)

		case '1': // first frame of a multi-frame response
			if len(rest) == 0 {
				continue
			}
			total, err := hexToInt(pci[1:2] + rest[0])
			if err != nil {
				continue
			}
			byteCount[ecu] = int(total)
			payload := make([]string, int(total))
			for i := range payload {
				payload[i] = "00"
			}
			for i, tok := range rest[1:] {
				if i >= len(payload) {
					break
				}
				payload[i] = tok
			}
			result[ecu] = payload

		case '2': // consecutive frame, index K in the low nibble
			k, err := hexToInt(pci[1:2])
			if err != nil {
				continue
			}
			offset := int(k)*7 - 1
			if offset < 0 {
				continue
			}
			if _, seen := byteCount[ecu]; !seen {
				need := offset + len(rest)
				for len(result[ecu]) < need {
					result[ecu] = append(result[ecu], "00")
				}
			}
			for i, tok := range rest {
				idx := offset + i
				if idx >= len(result[ecu]) {
					break
				}
				result[ecu][idx] = tok
			}
		}
	}

	return result
}

// InterpretedResult is the outcome of interpret_result: either a
// per-ECU hex payload string, or ErrNoData if the whole block collapsed
// to "NODATA".
type InterpretedResult map[string]string

// interpretResult implements the simpler single-response path used for
// non-batched sensor reads: the header (and, for CAN, the PCI byte) is
// stripped from each line, the remaining bytes are concatenated per ECU
// into one hex string, and the leading 4 hex chars (mode-echo + PID) are
// dropped. Lines shorter than 7 characters, or a line beginning with the
// literal "NODATA", collapse the whole block to ErrNoData.
func interpretResult(lines []string, canMode bool) (InterpretedResult, error) {
	result := InterpretedResult{}

	for _, line := range lines {
		if len(line) < 7 {
			return nil, ErrNoData
		}
		if strings.HasPrefix(line, "NODATA") {
			return nil, ErrNoData
		}

		tokens := strings.Fields(line)
		if !canMode {
			if len(tokens) < 3 {
				return nil, ErrNoData
			}
			tokens = tokens[2:] // drop header bytes, keep ECU + payload
		}
		if len(tokens) < 2 {
			return nil, ErrNoData
		}

		ecu := tokens[0]
		payload := tokens[1:]
		if canMode {
			payload = payload[1:] // also drop the PCI byte
		}

		code := strings.Join(payload, "")
		if len(code) < 4 {
			continue
		}
		result[ecu] = code[4:]
	}

	if len(result) == 0 {
		return nil, ErrNoData
	}
	return result, nil
}
