package elm

import "errors"

// Sentinel errors surfaced by Session operations. Callers distinguish
// them with errors.Is rather than matching on sentinel strings the way
// the original pyobd implementation did ("NODATA" / "NORESPONSE").
var (
	// ErrNoData means a command produced no lines, a known ECU did not
	// respond within the block, or a response collapsed to the ELM327
	// "NODATA" line.
	ErrNoData = errors.New("elm: no data")

	// ErrNoResponse names the case of a read that returned nothing at
	// all, as opposed to a well-formed empty/NODATA response. No Session
	// operation returns it; an empty read is reported as ErrNoData.
	ErrNoResponse = errors.New("elm: no response from interface")

	// ErrConnectionLost means an I/O failure occurred while talking to
	// the interface.
	ErrConnectionLost = errors.New("elm: connection lost")

	// ErrUnexpectedResponse means a frame lacked the expected mode-echo
	// byte, a DTC count mismatched, or a VIN/info header was malformed.
	ErrUnexpectedResponse = errors.New("elm: unexpected response")

	// ErrBringUpFailed means the bring-up retry budget was exhausted.
	ErrBringUpFailed = errors.New("elm: bring-up failed")

	// ErrDisconnected means the session is in the Disconnected state and
	// the requested operation is a no-op.
	ErrDisconnected = errors.New("elm: session disconnected")
)
