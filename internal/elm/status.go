package elm

import "fmt"

// TestResults is the decoded form of PID 0101 ("status since DTCs
// cleared"): the MIL state, how many confirmed DTCs are stored, and
// the completeness of the continuous/non-continuous monitor tests.
//
// This is a typed replacement for the original dtc_decrypt's ad-hoc
// tri-state string building; see the redesign flags in SPEC_FULL.md §9.
type TestResults struct {
	MIL      bool
	DTCCount int
	Tests    map[string]bool // true = test complete, false = incomplete
}

var nonContinuousTests = []string{
	"Misfire",
	"FuelSystem",
	"Components",
}

var sparkTests = []string{
	"Catalyst",
	"HeatedCatalyst",
	"EvapSystem",
	"SecondaryAir",
	"ACRefrigerant",
	"O2Sensor",
	"O2SensorHeater",
	"EGRSystem",
}

var compressionTests = []string{
	"NMHCCatalyst",
	"NOxSCRMonitor",
	"Reserved",
	"BoostPressure",
	"Reserved2",
	"ExhaustGasSensor",
	"PMFilterMonitor",
	"EGRVVTSystem",
}

// DecodeStatus parses the 4-byte payload of PID 0101 into TestResults.
// Byte A's high bit is the MIL state and low 7 bits are the DTC count.
// Byte B's bit 3 selects whether bytes C/D describe spark-ignition or
// compression-ignition monitors.
func DecodeStatus(code string) (TestResults, error) {
	if len(code) < 8 {
		return TestResults{}, fmt.Errorf("%w: status payload %q too short", ErrUnexpectedResponse, code)
	}

	a, err := hexToUint(code[0:2])
	if err != nil {
		return TestResults{}, fmt.Errorf("%w: status byte A", ErrUnexpectedResponse)
	}
	b, err := hexToUint(code[2:4])
	if err != nil {
		return TestResults{}, fmt.Errorf("%w: status byte B", ErrUnexpectedResponse)
	}
	c, err := hexToUint(code[4:6])
	if err != nil {
		return TestResults{}, fmt.Errorf("%w: status byte C", ErrUnexpectedResponse)
	}
	d, err := hexToUint(code[6:8])
	if err != nil {
		return TestResults{}, fmt.Errorf("%w: status byte D", ErrUnexpectedResponse)
	}

	ts := TestResults{
		MIL:      a&0x80 != 0,
		DTCCount: int(a & 0x7F),
		Tests:    map[string]bool{},
	}

	for i, name := range nonContinuousTests {
		supported := b&(1<<uint(i)) != 0
		if !supported {
			continue
		}
		complete := b&(1<<uint(i+4)) == 0
		ts.Tests[name] = complete
	}

	group := sparkTests
	if b&0x08 != 0 {
		group = compressionTests
	}
	for i, name := range group {
		supported := c&(1<<uint(i)) != 0
		if !supported {
			continue
		}
		complete := d&(1<<uint(i)) == 0
		ts.Tests[name] = complete
	}

	return ts, nil
}
