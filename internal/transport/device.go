package transport

import (
	"fmt"
	"time"

	"github.com/tarm/serial"
)

// NewSerialConnection opens a serial port running an ELM327 adapter at
// cfg.Address (e.g. /dev/ttyUSB0 or COM3), using cfg.BaudRate (default
// 38400, the common ELM327 default) and cfg.Timeout seconds as the
// read deadline.
func NewSerialConnection(cfg *Config) (Transport, error) {
	baud := cfg.BaudRate
	if baud == 0 {
		baud = 38400
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5
	}

	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Address,
		Baud:        baud,
		ReadTimeout: time.Duration(timeout) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", cfg.Address, err)
	}
	return port, nil
}
