package serialmux

import (
	"io"
	"time"
)

// MockSerialPort implements SerialPorter for dev mode and testing.
type MockSerialPort struct {
	io.ReadCloser
}

// NewMockSerialMux creates a SerialMux instance backed by a mock serial port
// that replays the given lines on a fixed interval, cycling forever. Each
// line is written with a trailing newline, matching the wire framing of the
// real device.
func NewMockSerialMux(lines []string, interval time.Duration) *SerialMux[*MockSerialPort] {
	r, w := io.Pipe()

	mockPort := &MockSerialPort{ReadCloser: r}

	// generate data periodically to simulate serial port input
	go func() {
		defer w.Close()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		i := 0
		for range ticker.C {
			if len(lines) == 0 {
				return
			}
			line := lines[i%len(lines)]
			if _, err := w.Write([]byte(line + "\n")); err != nil {
				return
			}
			i++
		}
	}()

	return NewSerialMux(mockPort)
}
