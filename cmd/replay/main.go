package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/anodyne74/obdlink/internal/capture"
)

func main() {
	var (
		captureFile string
		speed       float64
		list        bool
	)

	flag.StringVar(&captureFile, "file", "", "Capture file to replay")
	flag.Float64Var(&speed, "speed", 1.0, "Replay speed multiplier (1.0 = real-time)")
	flag.BoolVar(&list, "list", false, "List available capture files")
	flag.Parse()

	if list {
		listCaptureFiles()
		return
	}

	if captureFile == "" {
		fmt.Println("Please specify a capture file with -file")
		os.Exit(1)
	}

	session, err := capture.LoadSession(captureFile)
	if err != nil {
		log.Fatalf("Failed to load session: %v", err)
	}

	replayer := capture.NewReplayer(session)
	replayer.SetSpeed(speed)

	fmt.Printf("Replaying session from %s\n", session.StartTime)
	fmt.Printf("Vehicle Info: %s\n", session.VehicleInfo)
	fmt.Printf("Total frames: %d\n", len(session.Frames))

	err = replayer.Play(func(frame capture.Frame) {
		fmt.Printf("[%s] Type: %s, Decoded: %v\n",
			frame.Timestamp.Format("15:04:05.000"), frame.Type, frame.Decoded)
	})
	if err != nil {
		log.Fatalf("Replay failed: %v", err)
	}
}

func listCaptureFiles() {
	files, err := filepath.Glob("captures/*.json")
	if err != nil {
		log.Fatalf("Failed to list capture files: %v", err)
	}

	if len(files) == 0 {
		fmt.Println("No capture files found")
		return
	}

	fmt.Println("Available capture files:")
	for _, file := range files {
		session, err := capture.LoadSession(file)
		if err != nil {
			fmt.Printf("  %s (error: %v)\n", file, err)
			continue
		}

		duration := session.EndTime.Sub(session.StartTime)
		fmt.Printf("  %s:\n", filepath.Base(file))
		fmt.Printf("    Date: %s\n", session.StartTime)
		fmt.Printf("    Duration: %s\n", duration)
		fmt.Printf("    Vehicle: %s\n", session.VehicleInfo)
		fmt.Printf("    Frames: %d\n", len(session.Frames))
		fmt.Println()
	}
}
