package elm

import (
	"bufio"
	"fmt"
	"io"

	"github.com/anodyne74/obdlink/internal/notifier"
)

// flusher is implemented by transports (serial ports) that buffer
// unread/unwritten bytes that must be discarded before a new command is
// sent. TCP simulators and plain net.Conn don't need this and simply
// don't implement it.
type flusher interface {
	Flush() error
}

// lineReader reads single bytes off the interface, splitting on CR/LF
// and terminating a response block on the ELM327 prompt character '>'.
type lineReader struct {
	rw   io.ReadWriter
	r    *bufio.Reader
	note notifier.Notifier
}

func newLineReader(rw io.ReadWriter, note notifier.Notifier) *lineReader {
	return &lineReader{rw: rw, r: bufio.NewReaderSize(rw, 256), note: note}
}

// send flushes any buffered input/output, appends CR+LF, and writes cmd
// as ASCII.
func (l *lineReader) send(cmd string) error {
	if f, ok := l.rw.(flusher); ok {
		_ = f.Flush()
	}
	l.r.Reset(l.rw)

	l.note.Debug(notifier.LevelTrace, "send: "+cmd)
	if _, err := io.WriteString(l.rw, cmd+"\r\n"); err != nil {
		return fmt.Errorf("%w: send %q: %v", ErrConnectionLost, cmd, err)
	}
	return nil
}

// readBlock reads bytes until the ELM327 prompt '>' or an empty read,
// returning the accumulated non-empty lines. It returns ErrNoData if the
// block contained zero lines and ErrConnectionLost if the underlying
// read failed outright.
func (l *lineReader) readBlock() ([]string, error) {
	var (
		buf   []byte
		lines []string
	)

readLoop:
	for {
		b, err := l.r.ReadByte()
		if err != nil {
			if len(lines) > 0 || len(buf) > 0 {
				break readLoop
			}
			return nil, fmt.Errorf("%w: %v", ErrConnectionLost, err)
		}

		switch {
		case b == '>':
			if len(buf) > 0 {
				lines = append(lines, string(buf))
			}
			break readLoop
		case b == '\r' || b == '\n':
			if len(buf) > 0 {
				lines = append(lines, string(buf))
				buf = buf[:0]
			}
		case b < 0x80:
			buf = append(buf, b)
		}
	}

	for _, line := range lines {
		l.note.Debug(notifier.LevelTrace, "recv: "+line)
	}

	if len(lines) == 0 {
		return nil, ErrNoData
	}
	return lines, nil
}
