package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/anodyne74/obdlink/internal/config"
	"github.com/anodyne74/obdlink/internal/elm"
	"github.com/anodyne74/obdlink/internal/notifier"
	"github.com/anodyne74/obdlink/internal/transport"
)

func main() {
	var (
		configFile string
		queryType  string
		outputFile string
		continuous bool
		formatJSON bool
	)

	flag.StringVar(&configFile, "config", "config.yaml", "path to configuration file")
	flag.StringVar(&queryType, "query", "all", "Type of query: all, ecu, dtc, vin, live")
	flag.StringVar(&outputFile, "output", "", "Output file for the query results")
	flag.BoolVar(&continuous, "continuous", false, "Enable continuous monitoring for -query=live")
	flag.BoolVar(&formatJSON, "json", false, "Output in JSON format")
	flag.Parse()

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	conn, err := transport.NewConnection(cfg.GetTransportConfig())
	if err != nil {
		log.Fatal(err)
	}

	attempts, delaySeconds := cfg.GetELMOptions()
	session := elm.NewSession(conn, elm.Options{
		ReconnAttempts: attempts,
		ReconnDelay:    time.Duration(delaySeconds) * time.Second,
		Notifier:       notifier.Discard{},
	})
	if err := session.Open(); err != nil {
		log.Fatalf("failed to bring up OBD interface: %v", err)
	}
	defer session.Close()

	switch queryType {
	case "all":
		data := queryAll(session)
		outputData(data, outputFile, formatJSON)

	case "ecu":
		outputData(map[string]interface{}{
			"ecus": session.ECUs(),
			"can":  session.IsCAN(),
		}, outputFile, formatJSON)

	case "vin":
		vins, err := session.GetVIN()
		if err != nil {
			log.Fatalf("Failed to query VIN: %v", err)
		}
		outputData(vins, outputFile, formatJSON)

	case "dtc":
		dtcs, err := session.GetDTCs()
		if err != nil {
			log.Fatalf("Failed to query DTCs: %v", err)
		}
		outputData(dtcs, outputFile, formatJSON)

	case "live":
		if continuous {
			fmt.Println("Starting continuous monitoring...")
			for {
				readings, err := session.SensorAll(livePIDs)
				if err != nil && err != elm.ErrNoData {
					log.Printf("poll error: %v", err)
					time.Sleep(time.Second)
					continue
				}
				printLive(readings, formatJSON)
				time.Sleep(time.Second)
			}
		}
		readings, err := session.SensorAll(livePIDs)
		if err != nil {
			log.Fatalf("Failed to query live data: %v", err)
		}
		outputData(readings, outputFile, formatJSON)

	default:
		log.Fatalf("unknown query type %q", queryType)
	}
}

var livePIDs = []string{"0C", "0D", "05"}

type allData struct {
	ECUs     []string          `json:"ecus"`
	VIN      map[string]string `json:"vin,omitempty"`
	Readings []elm.Reading     `json:"readings"`
	DTCs     []elm.DTC         `json:"dtcs"`
}

func queryAll(session *elm.Session) allData {
	data := allData{ECUs: session.ECUs()}
	if vin, err := session.GetVIN(); err == nil {
		data.VIN = vin
	}
	if readings, err := session.SensorAll(livePIDs); err == nil {
		data.Readings = readings
	}
	if dtcs, err := session.GetDTCs(); err == nil {
		data.DTCs = dtcs
	}
	return data
}

func printLive(readings []elm.Reading, formatJSON bool) {
	if formatJSON {
		b, _ := json.Marshal(readings)
		fmt.Println(string(b))
		return
	}
	for _, r := range readings {
		fmt.Printf("%s: %s %s  ", r.Name, r.Value, r.Unit)
	}
	fmt.Println()
}

func outputData(data interface{}, outputFile string, formatJSON bool) {
	if outputFile != "" {
		file, err := os.Create(outputFile)
		if err != nil {
			log.Fatalf("Failed to create output file: %v", err)
		}
		defer file.Close()

		encoder := json.NewEncoder(file)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(data); err != nil {
			log.Fatalf("Failed to write data: %v", err)
		}
		return
	}

	if formatJSON {
		b, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			log.Fatalf("Failed to marshal data: %v", err)
		}
		fmt.Println(string(b))
		return
	}

	fmt.Printf("%+v\n", data)
}
