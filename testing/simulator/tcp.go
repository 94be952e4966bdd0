package simulator

import (
	"log"
	"net"
)

// StartTCPServer accepts connections on addr, serving a fresh
// Emulator to each one so multiple clients can drive independent
// simulated vehicles.
func StartTCPServer(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	defer listener.Close()

	log.Printf("ELM327 simulator listening on %s", addr)

	for {
		conn, err := listener.Accept()
		if err != nil {
			log.Printf("Error accepting connection: %v", err)
			continue
		}

		go handleConnection(conn)
	}
}

func handleConnection(conn net.Conn) {
	defer conn.Close()
	log.Printf("New connection from %s", conn.RemoteAddr())
	if err := NewEmulator().Serve(conn); err != nil {
		log.Printf("connection %s closed: %v", conn.RemoteAddr(), err)
	}
}
