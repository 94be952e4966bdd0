package elm

import (
	"fmt"
	"strconv"
)

// hexToInt parses a hex-digit string into an integer using the standard
// library, never dynamic evaluation (original_source/obd_sensors.py's
// hex_to_int used a language eval builtin in one revision; that path is
// not reproduced here).
func hexToInt(hexstr string) (int64, error) {
	v, err := strconv.ParseInt(hexstr, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("parse hex %q: %w", hexstr, err)
	}
	return v, nil
}

// hexToUint parses a hex-digit string into an unsigned integer.
func hexToUint(hexstr string) (uint64, error) {
	v, err := strconv.ParseUint(hexstr, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("parse hex %q: %w", hexstr, err)
	}
	return v, nil
}

// hexToBitString renders a hex-digit string as its binary expansion,
// zero-padded to 4 bits per hex digit so the result always has length
// 4*len(hexstr).
func hexToBitString(hexstr string) string {
	v, err := hexToUint(hexstr)
	if err != nil {
		v = 0
	}
	bits := strconv.FormatUint(v, 2)
	width := len(hexstr) * 4
	if len(bits) < width {
		bits = zeroPad(bits, width)
	}
	return bits
}

func zeroPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	pad := make([]byte, width-len(s))
	for i := range pad {
		pad[i] = '0'
	}
	return string(pad) + s
}
