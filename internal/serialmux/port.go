package serialmux

import "io"

// SerialPorter defines the minimal interface needed for a serial port.
// The positioning controller is a passive telemetry source, so reads and
// close are all the mux requires. This abstraction enables unit testing
// without real serial hardware.
type SerialPorter interface {
	io.Reader
	io.Closer
}
