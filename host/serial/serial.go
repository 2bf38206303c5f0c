package serial

import (
	"io"
)

// Port is the byte stream to the robot's command shell.
// Implementations:
// - Native serial (using github.com/tarm/serial)
// - In-memory pipes (for testing)
type Port interface {
	io.ReadWriteCloser

	// Flush flushes any buffered data
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyUSB0", "COM3")
	Device string `json:"device"`

	// Baud rate of the board's console UART
	Baud int `json:"baud"`

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int `json:"read_timeout_ms"`
}

// DefaultBaud is the console UART rate of the robot firmware.
const DefaultBaud = 115200

// DefaultConfig returns the console settings for device.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        DefaultBaud,
		ReadTimeout: 100,
	}
}
