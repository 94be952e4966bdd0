package capture

import (
	"strconv"
	"time"

	"github.com/anodyne74/obdlink/internal/elm"
)

// FrameFromReading converts a decoded elm.Reading into a capture Frame
// carrying the fields the analysis package's key-based lookups expect
// (rpm/speed/temp/ecu), alongside the full reading for anything else.
func FrameFromReading(r elm.Reading) Frame {
	decoded := map[string]interface{}{
		"ecu":   r.ECU,
		"pid":   r.PID,
		"name":  r.Name,
		"value": r.Value,
		"unit":  r.Unit,
	}
	switch r.PID {
	case "0C":
		if v, ok := parseFloat(r.Value); ok {
			decoded["rpm"] = v
		}
	case "0D":
		// PID 0D decodes to MPH; the analysis thresholds and the
		// cmd/analyze report work in km/h.
		if v, ok := parseFloat(r.Value); ok {
			decoded["speed"] = v * 1.609
		}
	case "05":
		if v, ok := parseFloat(r.Value); ok {
			decoded["temp"] = v
		}
	}

	return Frame{
		Timestamp: time.Now(),
		Type:      "OBD2",
		Data:      []byte(r.Raw),
		Decoded:   decoded,
	}
}

// FrameFromDTCs packages a batch of DTC reads from one ECU into a
// single frame carrying the "dtcs" key analyzeDiagnostics looks for.
func FrameFromDTCs(ecu string, dtcs []elm.DTC) Frame {
	codes := make([]string, 0, len(dtcs))
	for _, d := range dtcs {
		codes = append(codes, d.Code)
	}
	return Frame{
		Timestamp: time.Now(),
		Type:      "OBD2",
		Decoded: map[string]interface{}{
			"ecu":  ecu,
			"dtcs": codes,
		},
	}
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}
