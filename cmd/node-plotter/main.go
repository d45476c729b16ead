// Command node-plotter plots the node position calculated by the HOST
// controller. It reads "<x>,<y>" lines from a serial port and serves a live
// scatter view of the latest estimate.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/RicArch97/particle-filter-ips/internal/config"
	"github.com/RicArch97/particle-filter-ips/internal/plotter"
	"github.com/RicArch97/particle-filter-ips/internal/record"
	"github.com/RicArch97/particle-filter-ips/internal/serialmux"
	"github.com/RicArch97/particle-filter-ips/internal/web"
)

var (
	port       = flag.String("p", "", "serial port of the device, e.g. /dev/ttyUSB0")
	baud       = flag.Int("b", 115200, "baud rate to use for the serial port")
	size       = flag.String("s", "", "area size of the plot in format NUMxNUM")
	listen     = flag.String("listen", "127.0.0.1:8080", "address to serve the live plot page on")
	recordPath = flag.String("record", "", "optional SQLite file to record decoded telemetry to")
	devMode    = flag.Bool("dev", false, "replay built-in fixture lines instead of opening a serial port")
)

// devFixtures simulates a node wandering around a 10x8 area.
var devFixtures = []string{
	"5.0,4.0",
	"5.2,4.1",
	"5.5,4.4",
	"bad,data",
	"5.1,4.6",
	"4.8,4.2",
}

func main() {
	flag.Parse()

	cfg, err := config.Resolve(config.Args{
		Port:       *port,
		BaudRate:   *baud,
		Size:       *size,
		Listen:     *listen,
		RecordPath: *recordPath,
		Dev:        *devMode,
	}, false)
	if err != nil {
		log.Fatalf("invalid arguments: %v", err)
	}

	var mux serialmux.SerialMuxInterface
	if cfg.Dev {
		mux = serialmux.NewMockSerialMux(devFixtures, 100*time.Millisecond)
		log.Print("dev mode: replaying fixture lines")
	} else {
		mux, err = serialmux.NewRealSerialMux(cfg.Port, serialmux.PortOptions{BaudRate: cfg.BaudRate})
		if err != nil {
			log.Fatalf("%v", err)
		}
		log.Printf("Connected to %s", cfg.Port)
	}
	defer mux.Close()

	surface := web.NewServer(web.Config{
		Listen: cfg.Listen,
		Title:  "BLE-Tracking - node plotter",
		Width:  cfg.Width,
		Height: cfg.Height,
	})

	id, lines := mux.Subscribe()
	defer mux.Unsubscribe(id)

	opts := []plotter.Option{}
	if cfg.RecordPath != "" {
		rec, err := record.Open(cfg.RecordPath)
		if err != nil {
			log.Fatalf("failed to open recorder: %v", err)
		}
		defer rec.Close()
		opts = append(opts, plotter.WithRecorder(rec))
	}
	driver := plotter.NewNodeDriver(lines, surface, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := mux.Monitor(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("failed to monitor serial port: %v", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := surface.Start(ctx); err != nil {
			log.Printf("web server error: %v", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := driver.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("redraw driver error: %v", err)
		}
	}()

	<-ctx.Done()
	stop()
	mux.Close()
	wg.Wait()

	log.Print("interrupt received, closing")
	os.Exit(1)
}
