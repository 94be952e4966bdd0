package main

import (
	"log"

	"github.com/anodyne74/obdlink/testing/simulator"
)

func main() {
	if err := simulator.ServeSerial("COM10", 38400); err != nil {
		log.Fatal(err)
	}
}
