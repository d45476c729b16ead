// Command particle-plotter plots particles generated by the HOST controller
// alongside the estimated node position. It reads "<n|p>,<x>,<y>" lines from
// a serial port and serves a live scatter view of the particle cloud.
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
	"github.com/RicArch97/particle-filter-ips/internal/telemetry"
	"github.com/RicArch97/particle-filter-ips/internal/web"
)

var (
	port       = flag.String("p", "", "serial port of the device, e.g. /dev/ttyUSB0")
	baud       = flag.Int("b", 115200, "baud rate to use for the serial port")
	size       = flag.String("s", "", "area size of the plot in format NUMxNUM")
	amount     = flag.Int("a", 0, "amount of particles that are sampled")
	listen     = flag.String("listen", "127.0.0.1:8080", "address to serve the live plot page on")
	recordPath = flag.String("record", "", "optional SQLite file to record decoded telemetry to")
	devMode    = flag.Bool("dev", false, "replay built-in fixture lines instead of opening a serial port")
)

// devFixtures simulates a converging particle cloud around a node estimate.
var devFixtures = []string{
	"p,1.2,1.8",
	"p,4.6,6.1",
	"p,2.4,3.3",
	"n,3.1,3.9",
	"p,3.0,4.2",
	"p,2.8,3.6",
	"x,9,9",
	"p,3.3,4.0",
	"n,3.0,3.8",
}

func main() {
	flag.Parse()

	cfg, err := config.Resolve(config.Args{
		Port:       *port,
		BaudRate:   *baud,
		Size:       *size,
		Samples:    *amount,
		Listen:     *listen,
		RecordPath: *recordPath,
		Dev:        *devMode,
	}, true)
	if err != nil {
		log.Fatalf("invalid arguments: %v", err)
	}

	var mux serialmux.SerialMuxInterface
	if cfg.Dev {
		// particles come in fast on real hardware; replay quickly too
		mux = serialmux.NewMockSerialMux(devFixtures, 20*time.Millisecond)
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
		Listen:    cfg.Listen,
		Title:     "BLE-Tracking - particle plotter",
		Width:     cfg.Width,
		Height:    cfg.Height,
		ShowStats: true,
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

	center := telemetry.Point{X: cfg.Width / 2, Y: cfg.Height / 2}
	driver := plotter.NewParticleDriver(lines, cfg.Samples, center, surface, opts...)

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
