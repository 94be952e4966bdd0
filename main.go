package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/anodyne74/obdlink/internal/capture"
	"github.com/anodyne74/obdlink/internal/config"
	"github.com/anodyne74/obdlink/internal/datastore"
	"github.com/anodyne74/obdlink/internal/elm"
	"github.com/anodyne74/obdlink/internal/notifier"
	"github.com/anodyne74/obdlink/internal/transport"
	"github.com/anodyne74/obdlink/internal/vehicle"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

// TelemetryData is the JSON payload broadcast to every connected
// websocket client once per poll tick.
type TelemetryData struct {
	ECUs     []string      `json:"ecus,omitempty"`
	Readings []elm.Reading `json:"readings,omitempty"`
	DTCs     []elm.DTC     `json:"dtcs,omitempty"`
	VIN      string        `json:"vin,omitempty"`
}

var (
	clients    = make(map[*websocket.Conn]bool)
	clientsMux sync.Mutex
)

func wsHandler(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	clientsMux.Lock()
	clients[ws] = true
	clientsMux.Unlock()

	defer func() {
		clientsMux.Lock()
		delete(clients, ws)
		clientsMux.Unlock()
		ws.Close()
	}()

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
}

func broadcastTelemetry(data TelemetryData) {
	clientsMux.Lock()
	defer clientsMux.Unlock()

	payload, err := json.Marshal(data)
	if err != nil {
		log.Printf("error marshaling telemetry: %v", err)
		return
	}

	for client := range clients {
		if err := client.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("error sending to client: %v", err)
			client.Close()
			delete(clients, client)
		}
	}
}

// pollPIDs is the default mode-01 sweep: the sensors a dashboard
// usually wants on every tick. Mode 09 (VIN) is read once at startup
// instead, since it never changes mid-session.
var pollPIDs = []string{"0C", "0D", "04", "05", "0F", "11"}

func main() {
	configFile := flag.String("config", "config.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	conn, err := transport.NewConnection(cfg.GetTransportConfig())
	if err != nil {
		log.Fatalf("failed to open transport: %v", err)
	}

	attempts, delaySeconds := cfg.GetELMOptions()
	session := elm.NewSession(conn, elm.Options{
		ReconnAttempts: attempts,
		ReconnDelay:    time.Duration(delaySeconds) * time.Second,
		Notifier:       notifier.NewLog(notifier.LevelBringup),
	})

	if err := session.Open(); err != nil {
		log.Fatalf("failed to bring up OBD interface: %v", err)
	}
	defer session.Close()
	log.Printf("session ready: ecus=%v can=%v", session.ECUs(), session.IsCAN())

	manager := vehicle.NewManager()
	var vin string
	if vins, err := session.GetVIN(); err == nil {
		for _, v := range vins {
			vin = v
			break
		}
	}
	if vin == "" {
		vin = "UNKNOWN"
	}
	if _, err := manager.RegisterVehicle(vin, "Unknown", "Unknown", 0); err != nil {
		log.Printf("vehicle registration: %v", err)
	}

	var store datastore.Store
	if cfg.Datastore.SQLite.Path != "" && cfg.Datastore.InfluxDB.URL != "" {
		s, err := datastore.NewStore(&datastore.Config{
			SQLitePath:     cfg.Datastore.SQLite.Path,
			InfluxDBURL:    cfg.Datastore.InfluxDB.URL,
			InfluxDBOrg:    cfg.Datastore.InfluxDB.Org,
			InfluxDBToken:  cfg.Datastore.InfluxDB.Token,
			InfluxDBBucket: cfg.Datastore.InfluxDB.Bucket,
		})
		if err != nil {
			log.Printf("datastore unavailable: %v", err)
		} else {
			store = s
			defer store.Close()
		}
	}

	var recorder *capture.Recorder
	if cfg.Capture.Enabled {
		recorder = capture.NewRecorder(vin)
		if err := recorder.Start(); err != nil {
			log.Printf("capture recorder: %v", err)
			recorder = nil
		} else {
			defer recorder.Stop()
		}
	}

	go pollLoop(session, manager, store, recorder, vin)

	router := mux.NewRouter()
	router.HandleFunc("/ws", wsHandler)
	router.HandleFunc("/api/vehicle/{vin}", func(w http.ResponseWriter, r *http.Request) {
		v, err := manager.GetVehicle(mux.Vars(r)["vin"])
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(v)
	})

	port := cfg.Server.Port
	if port == 0 {
		port = 8080
	}
	addr := cfg.Server.Host + ":" + strconv.Itoa(port)
	srv := &http.Server{Addr: addr, Handler: router}

	go func() {
		log.Printf("listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("shutting down")
	clientsMux.Lock()
	for client := range clients {
		client.Close()
		delete(clients, client)
	}
	clientsMux.Unlock()
}

func pollLoop(session *elm.Session, manager *vehicle.Manager, store datastore.Store, recorder *capture.Recorder, vin string) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		readings, err := session.SensorAll(pollPIDs)
		if err != nil && err != elm.ErrNoData {
			log.Printf("sensor poll error: %v", err)
			continue
		}

		dtcs, err := session.GetDTCs()
		if err != nil && err != elm.ErrNoData {
			log.Printf("dtc read error: %v", err)
		}

		if err := manager.UpdateVehicleState(vin, vehicle.StateFromReadings(readings, dtcs)); err != nil {
			log.Printf("vehicle state update: %v", err)
		}

		if store != nil {
			td := &datastore.TelemetryData{Timestamp: time.Now(), VIN: vin}
			if v, err := manager.GetVehicle(vin); err == nil {
				td.RPM = v.State.RPM
				td.Speed = v.State.Speed
				td.EngineLoad = v.State.EngineLoad
				td.CoolantTemp = v.State.CoolantTemp
			}
			if err := store.SaveTelemetry(vin, td); err != nil {
				log.Printf("telemetry save: %v", err)
			}
		}

		if recorder != nil {
			for _, r := range readings {
				if err := recorder.Record(capture.FrameFromReading(r)); err != nil {
					log.Printf("capture record: %v", err)
				}
			}
		}

		broadcastTelemetry(TelemetryData{
			ECUs:     session.ECUs(),
			Readings: readings,
			DTCs:     dtcs,
			VIN:      vin,
		})
	}
}
