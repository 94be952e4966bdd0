package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/anodyne74/obdlink/internal/analysis"
	"github.com/anodyne74/obdlink/internal/capture"
)

func main() {
	var (
		inputFile string
		exportCsv string
	)

	flag.StringVar(&inputFile, "file", "", "Capture file to analyze")
	flag.StringVar(&exportCsv, "export-csv", "", "Export per-frame RPM/speed/temp to CSV file")
	flag.Parse()

	if inputFile == "" {
		fmt.Println("Please specify a capture file with -file")
		os.Exit(1)
	}

	session, err := capture.LoadSession(inputFile)
	if err != nil {
		log.Fatalf("Failed to load session: %v", err)
	}

	analyzer := analysis.NewAnalyzer(session, analysis.DefaultOptions())
	result, err := analyzer.Analyze()
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	fmt.Printf("\nSession Analysis for %s\n", filepath.Base(inputFile))
	fmt.Printf("=================================\n")
	fmt.Printf("Duration: %s\n", result.SessionInfo.Duration)
	fmt.Printf("Total Frames: %d\n", result.SessionInfo.TotalFrames)
	fmt.Printf("Unique ECUs: %d\n", result.ECUActivity.UniqueECUs)
	fmt.Printf("\nPerformance Metrics:\n")
	fmt.Printf("- Max RPM: %.2f\n", result.Performance.RPM.Max)
	fmt.Printf("- Average RPM: %.2f\n", result.Performance.RPM.Mean)
	fmt.Printf("- Max Speed: %.2f km/h\n", result.Performance.Speed.Max)
	fmt.Printf("- Average Speed: %.2f km/h\n", result.Performance.Speed.Mean)
	fmt.Printf("- Data Rate: %.2f frames/sec\n", result.Performance.DataRate)
	fmt.Printf("\nDriving Behavior:\n")
	fmt.Printf("- Idle Time: %.1f%%\n", result.DrivingBehavior.IdleTime)
	fmt.Printf("- Rapid Accelerations: %d\n", result.DrivingBehavior.RapidAccel)
	fmt.Printf("- Rapid Decelerations: %d\n", result.DrivingBehavior.RapidDecel)
	fmt.Printf("- Phases: %d\n", len(result.DrivingBehavior.Phases))

	fmt.Printf("\nDiagnostics:\n")
	fmt.Printf("- DTC Count: %d\n", result.Diagnostics.DTCCount)
	for _, dtc := range result.Diagnostics.UniqueDTCs {
		fmt.Printf("  - %s\n", dtc)
	}

	if exportCsv != "" {
		fmt.Printf("\nExporting data to %s...\n", exportCsv)
		if err := exportFramesToCSV(session, exportCsv); err != nil {
			log.Fatalf("Failed to export CSV: %v", err)
		}
		fmt.Println("Export complete!")
	}
}

func exportFramesToCSV(session *capture.Session, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"timestamp", "ecu", "rpm", "speed", "temp"}); err != nil {
		return err
	}

	for _, frame := range session.Frames {
		decoded, ok := frame.Decoded.(map[string]interface{})
		if !ok {
			continue
		}
		row := []string{frame.Timestamp.Format("2006-01-02T15:04:05.000Z07:00")}
		row = append(row, fmt.Sprintf("%v", decoded["ecu"]))
		row = append(row, floatField(decoded, "rpm"))
		row = append(row, floatField(decoded, "speed"))
		row = append(row, floatField(decoded, "temp"))
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func floatField(decoded map[string]interface{}, key string) string {
	v, ok := decoded[key].(float64)
	if !ok {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
