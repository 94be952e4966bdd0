package elm

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/anodyne74/obdlink/internal/notifier"
)

// State tracks where a Session is in its bring-up lifecycle.
type State int

const (
	Disconnected State = iota
	Opening
	Ready
)

func (s State) String() string {
	switch s {
	case Opening:
		return "opening"
	case Ready:
		return "ready"
	default:
		return "disconnected"
	}
}

// Options configures a Session's bring-up behavior.
type Options struct {
	// ReconnAttempts bounds how many bring-up attempts (the first one
	// included) are made before giving up with ErrBringUpFailed.
	ReconnAttempts int

	// ReconnDelay is how long bring-up sleeps between attempts.
	ReconnDelay time.Duration

	// Notifier receives bring-up and trace events. Defaults to a
	// Discard notifier if nil.
	Notifier notifier.Notifier
}

// DefaultOptions mirrors the original implementation's bring-up budget:
// two attempts, five seconds apart.
func DefaultOptions() Options {
	return Options{ReconnAttempts: 2, ReconnDelay: 5 * time.Second}
}

// Session is an ELM327 service client: it drives interface bring-up,
// enumerates responding ECUs, and issues OBD-II service requests over
// whatever transport it was given.
type Session struct {
	rw    io.ReadWriteCloser
	r     *lineReader
	note  notifier.Notifier
	opts  Options
	state State

	elmVersion string
	protocol   string
	isCAN      bool
	ecus       []string

	// lengthOverride holds per-session PID payload-length widenings
	// (the O2-sensor-position bank 3/4 quirk) without mutating the
	// shared catalog table.
	lengthOverride map[string]int
}

// NewSession wraps a transport without performing bring-up; call Open
// to run the handshake.
func NewSession(rw io.ReadWriteCloser, opts Options) *Session {
	if opts.Notifier == nil {
		opts.Notifier = notifier.Discard{}
	}
	return &Session{
		rw:             rw,
		r:              newLineReader(rw, opts.Notifier),
		note:           opts.Notifier,
		opts:           opts,
		state:          Disconnected,
		lengthOverride: map[string]int{},
	}
}

// State reports the session's current lifecycle state.
func (s *Session) State() State { return s.state }

// ECUs returns the addresses enumerated during bring-up, sorted.
func (s *Session) ECUs() []string {
	out := make([]string, len(s.ecus))
	copy(out, s.ecus)
	return out
}

// IsCAN reports whether the negotiated protocol is ISO 15765-4 CAN.
func (s *Session) IsCAN() bool { return s.isCAN }

// Open runs the ATZ/ATE0/ATDP/ATH1/0100 handshake, making up to
// ReconnAttempts attempts with ReconnDelay between attempts. On success
// it enumerates the responding ECU addresses and transitions to Ready.
func (s *Session) Open() error {
	s.state = Opening
	s.note.Debug(notifier.LevelSession, "opening session")

	var lastErr error
	attempts := s.opts.ReconnAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			s.note.Debug(notifier.LevelBringup, fmt.Sprintf("retrying bring-up (attempt %d)", attempt+1))
			time.Sleep(s.opts.ReconnDelay)
		}

		if err := s.bringUp(); err != nil {
			lastErr = err
			s.note.Debug(notifier.LevelBringup, "bring-up attempt failed: "+err.Error())
			continue
		}

		s.state = Ready
		s.note.Debug(notifier.LevelSession, fmt.Sprintf("session ready: protocol=%s can=%v ecus=%v", s.protocol, s.isCAN, s.ecus))
		return nil
	}

	s.state = Disconnected
	return fmt.Errorf("%w: %v", ErrBringUpFailed, lastErr)
}

func (s *Session) bringUp() error {
	if _, err := s.command("ATZ"); err != nil {
		return err
	}
	if _, err := s.command("ATE0"); err != nil {
		return err
	}

	protoLines, err := s.command("ATDP")
	if err != nil {
		return err
	}
	s.protocol = strings.TrimSpace(strings.Join(protoLines, " "))
	s.isCAN = strings.Contains(strings.ToUpper(s.protocol), "CAN")

	if _, err := s.command("ATH1"); err != nil {
		return err
	}

	lines, err := s.command("0100")
	if err != nil {
		return err
	}

	ecus, err := enumerateECUs(lines, s.isCAN)
	if err != nil {
		return err
	}
	sort.Strings(ecus)
	s.ecus = ecus
	return nil
}

// enumerateECUs extracts the responding ECU addresses from the "0100"
// bring-up response. For CAN, each line's first token is the ECU
// address, the second is the PCI byte, and the third/fourth tokens
// must echo mode 01 PID 00. For
// non-CAN, the header's third token is the ECU id and the payload
// must start with the 41 00 mode echo.
func enumerateECUs(lines []string, canMode bool) ([]string, error) {
	seen := map[string]bool{}
	var ecus []string

	for _, line := range lines {
		tokens := strings.Fields(line)
		if canMode {
			// ecu, PCI, mode-echo, PID-echo, ...
			if len(tokens) < 4 {
				continue
			}
			if tokens[2] != "41" || tokens[3] != "00" {
				continue
			}
			ecu := tokens[0]
			if !seen[ecu] {
				seen[ecu] = true
				ecus = append(ecus, ecu)
			}
			continue
		}

		// non-CAN: header, header, ecu, mode-echo, PID-echo, ...
		if len(tokens) < 5 {
			continue
		}
		if tokens[3] != "41" || tokens[4] != "00" {
			continue
		}
		ecu := tokens[2]
		if !seen[ecu] {
			seen[ecu] = true
			ecus = append(ecus, ecu)
		}
	}

	if len(ecus) == 0 {
		return nil, fmt.Errorf("%w: no ECU responded to 0100", ErrUnexpectedResponse)
	}
	return ecus, nil
}

// command sends cmd and reads the response block, translating I/O
// failures into ErrConnectionLost.
func (s *Session) command(cmd string) ([]string, error) {
	if err := s.r.send(cmd); err != nil {
		return nil, err
	}
	return s.r.readBlock()
}

// Close sends ATZ to reset the interface and releases the transport.
func (s *Session) Close() error {
	if s.state == Disconnected {
		return s.rw.Close()
	}
	_, _ = s.command("ATZ")
	s.state = Disconnected
	s.note.Debug(notifier.LevelSession, "session closed")
	return s.rw.Close()
}

// Reading is one decoded sensor value from a single ECU.
type Reading struct {
	ECU    string
	PID    string
	Name   string
	Value  string
	Unit   string
	Raw    string
}

// SensorOne issues a single mode 01 PID request and returns the
// decoded reading from every ECU that answered.
func (s *Session) SensorOne(pid string) ([]Reading, error) {
	if s.state != Ready {
		return nil, ErrDisconnected
	}
	sensor, ok := lookupPID(pid)
	if !ok {
		return nil, fmt.Errorf("%w: unknown PID %q", ErrUnexpectedResponse, pid)
	}

	lines, err := s.command(sensor.Cmd)
	if err != nil {
		return nil, err
	}
	parsed, err := interpretResult(lines, s.isCAN)
	if err != nil {
		return nil, err
	}

	length := s.payloadLength(pid, sensor.Length)
	var out []Reading
	for ecu, code := range parsed {
		if len(code) > length*2 {
			code = code[:length*2]
		}
		out = append(out, Reading{
			ECU:   ecu,
			PID:   pid,
			Name:  sensor.Name,
			Value: sensor.Decode(code),
			Unit:  sensor.Unit,
			Raw:   code,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ECU < out[j].ECU })
	return out, nil
}

// SensorAll reads every PID in pids. Over CAN, once bring-up has
// enumerated at least one ECU, it batches up to six PIDs per ELM327
// command line and walks the combined response payload (PID byte
// followed by that PID's length bytes, repeated) to minimize round
// trips. Otherwise it falls back to one SensorOne call per PID.
func (s *Session) SensorAll(pids []string) ([]Reading, error) {
	if s.state != Ready {
		return nil, ErrDisconnected
	}
	if s.isCAN && len(s.ecus) > 0 {
		return s.sensorAllBatched(pids)
	}
	return s.sensorAllSequential(pids)
}

func (s *Session) sensorAllSequential(pids []string) ([]Reading, error) {
	var out []Reading
	for _, pid := range pids {
		readings, err := s.SensorOne(pid)
		if err != nil {
			if err == ErrNoData {
				continue
			}
			return out, err
		}
		out = append(out, readings...)
	}
	return out, nil
}

func (s *Session) sensorAllBatched(pids []string) ([]Reading, error) {
	const batchSize = 6
	const mode = "01"
	modeEcho := "4" + mode[1:]

	var out []Reading
	for i := 0; i < len(pids); i += batchSize {
		end := i + batchSize
		if end > len(pids) {
			end = len(pids)
		}
		batch := pids[i:end]

		cmd := mode
		for _, pid := range batch {
			cmd += pid
		}

		lines, err := s.command(cmd)
		if err != nil {
			return out, err
		}
		frames := parseBytes(lines, true)

		for _, ecu := range s.ecus {
			res, ok := frames[ecu]
			if !ok || len(res) == 0 || res[0] != modeEcho {
				continue
			}
			res = res[1:]
			for len(res) > 0 {
				pid := res[0]
				res = res[1:]
				sensor, ok := lookupPID(pid)
				if !ok {
					break
				}
				numBytes := s.payloadLength(pid, sensor.Length)
				if numBytes > len(res) {
					numBytes = len(res)
				}
				code := strings.Join(res[:numBytes], "")
				out = append(out, Reading{
					ECU:   ecu,
					PID:   pid,
					Name:  sensor.Name,
					Value: sensor.Decode(code),
					Unit:  sensor.Unit,
					Raw:   code,
				})
				res = res[numBytes:]
			}
		}
	}
	return out, nil
}

func (s *Session) payloadLength(pid string, fallback int) int {
	if n, ok := s.lengthOverride[pid]; ok {
		return n
	}
	return fallback
}

// GetSupported reads the supported-PID bitmaps (mode 01, PIDs 00, 20,
// 40, 60, 80) and applies the O2-sensor-position fuel-trim widening
// quirk: when PID 0x1D reports bank 3 present, PIDs 0x06/0x07 widen
// from one byte to two for the remainder of the session, and when it
// reports bank 4 present, PIDs 0x08/0x09 do.
func (s *Session) GetSupported() (string, error) {
	ranges := []string{"00", "20", "40", "60", "80"}
	var bits strings.Builder
	for _, pid := range ranges {
		readings, err := s.SensorOne(pid)
		if err != nil || len(readings) == 0 {
			bits.WriteString(strings.Repeat("0", 32))
			continue
		}
		bits.WriteString(readings[0].Value)
	}
	supported := bits.String()

	if len(supported) > 0x1D && supported[0x1D-1] == '1' {
		res, err := s.SensorOne("1D")
		if err == nil && len(res) > 0 {
			bits := res[0].Value
			if len(bits) >= 2 && (bits[0] == '1' || bits[1] == '1') {
				s.lengthOverride["08"] = 2
				s.lengthOverride["09"] = 2
			}
			if len(bits) >= 4 && (bits[2] == '1' || bits[3] == '1') {
				s.lengthOverride["06"] = 2
				s.lengthOverride["07"] = 2
			}
		}
	}

	return supported, nil
}

// readASCIIInfo generalizes mode-09 ASCII-field reads (VIN, calibration
// ID, ECU name) across the CAN and non-CAN framing rules, concatenating
// the per-ECU payload and decoding it as ASCII text.
func (s *Session) readASCIIInfo(pid string) (map[string]string, error) {
	if s.state != Ready {
		return nil, ErrDisconnected
	}
	if err := s.r.send("09" + pid); err != nil {
		return nil, err
	}
	lines, err := s.r.readBlock()
	if err != nil {
		return nil, err
	}

	frames := parseBytes(lines, s.isCAN)
	out := map[string]string{}
	for ecu, tokens := range frames {
		var decoded string
		var err error
		if s.isCAN {
			payload := tokens
			// CAN multi-frame responses carry "49 <pid> 01" (mode
			// echo, PID echo, single-message count) before the
			// ASCII field.
			if len(payload) >= 3 && payload[0] == "49" && payload[2] == "01" {
				payload = payload[3:]
			}
			decoded, err = hexTokensToASCII(payload)
		} else {
			decoded, err = decodeNonCANASCIIInfo(s.note, ecu, pid, tokens)
		}
		if err != nil {
			continue
		}
		out[ecu] = strings.TrimRight(decoded, "\x00 ")
	}
	if len(out) == 0 {
		return nil, ErrNoData
	}
	return out, nil
}

// decodeNonCANASCIIInfo walks a non-CAN mode-09 payload in 7-byte
// messages: mode echo, PID echo, a 1-based message counter, then 4
// data bytes. The first message's data bytes are three 0x00 pad bytes
// followed by a single ASCII byte; every later message carries four.
func decodeNonCANASCIIInfo(note notifier.Notifier, ecu, pid string, payload []string) (string, error) {
	var sb strings.Builder
	for msg := 1; len(payload) > 0; msg++ {
		if len(payload) < 7 {
			note.Debug(notifier.LevelSession, fmt.Sprintf("ECU %s: short mode 09 message (%d bytes left)", ecu, len(payload)))
			break
		}
		chunk := payload[:7]
		counter := fmt.Sprintf("%02X", msg)
		if chunk[0] != "49" || chunk[1] != pid || chunk[2] != counter {
			note.Debug(notifier.LevelSession, fmt.Sprintf("unexpected response to mode 09 PID %s from ECU %s (%s %s %s)", pid, ecu, chunk[0], chunk[1], chunk[2]))
			break
		}

		var data []string
		if msg == 1 {
			if chunk[3] != "00" || chunk[4] != "00" || chunk[5] != "00" {
				note.Debug(notifier.LevelSession, fmt.Sprintf("unexpected pad bytes in mode 09 PID %s from ECU %s", pid, ecu))
				break
			}
			data = chunk[6:7]
		} else {
			data = chunk[3:7]
		}

		decoded, err := hexTokensToASCII(data)
		if err != nil {
			return "", err
		}
		sb.WriteString(decoded)
		payload = payload[7:]
	}
	return sb.String(), nil
}

func hexTokensToASCII(tokens []string) (string, error) {
	var sb strings.Builder
	for _, tok := range tokens {
		v, err := hexToUint(tok)
		if err != nil {
			return "", err
		}
		if v == 0 {
			continue
		}
		sb.WriteByte(byte(v))
	}
	return sb.String(), nil
}

// GetVIN reads mode 09 PID 02 (vehicle identification number).
func (s *Session) GetVIN() (map[string]string, error) { return s.readASCIIInfo("02") }

// CalibrationID reads mode 09 PID 04.
func (s *Session) CalibrationID() (map[string]string, error) { return s.readASCIIInfo("04") }

// ECUName reads mode 09 PID 0A.
func (s *Session) ECUName() (map[string]string, error) { return s.readASCIIInfo("0A") }

// GetDTCs reads both confirmed (mode 03) and pending (mode 07) codes
// from every enumerated ECU. It first reads mode 01 PID 01 to learn
// each ECU's expected confirmed-DTC count, used only to cross-check
// (and log a mismatch for) the count the mode 03 response itself
// carries.
func (s *Session) GetDTCs() ([]DTC, error) {
	if s.state != Ready {
		return nil, ErrDisconnected
	}

	expectedCounts := map[string]int{}
	if statusReadings, err := s.SensorOne("01"); err == nil {
		for _, r := range statusReadings {
			if ts, err := DecodeStatus(r.Raw); err == nil {
				expectedCounts[r.ECU] = ts.DTCCount
			}
		}
	}

	var out []DTC
	for mode, class := range map[string]DTCClass{"03": Active, "07": Pending} {
		if err := s.r.send(mode); err != nil {
			return out, err
		}
		lines, err := s.r.readBlock()
		if err != nil {
			if err == ErrNoData {
				continue
			}
			return out, err
		}
		frames := parseBytes(lines, s.isCAN)
		for ecu, payload := range frames {
			expected, haveCount := expectedCounts[ecu]
			haveCount = haveCount && class == Active
			dtcs, err := decodeDTCPayload(s.note, ecu, payload, class, s.isCAN, expected, haveCount)
			if err != nil {
				return out, err
			}
			out = append(out, dtcs...)
		}
	}
	return out, nil
}

// ClearDTCs sends mode 04 to clear stored codes and reset the MIL.
func (s *Session) ClearDTCs() error {
	if s.state != Ready {
		return ErrDisconnected
	}
	_, err := s.command("04")
	return err
}
