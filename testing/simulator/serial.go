package simulator

import (
	"log"

	"github.com/tarm/serial"
)

// ServeSerial opens portName and runs an Emulator over it until the
// connection fails or is closed.
func ServeSerial(portName string, baud int) error {
	port, err := serial.OpenPort(&serial.Config{Name: portName, Baud: baud})
	if err != nil {
		return err
	}
	defer port.Close()

	log.Printf("ELM327 simulator listening on %s", portName)
	return NewEmulator().Serve(port)
}
