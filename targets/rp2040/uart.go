//go:build rp2040

package main

import (
	"machine"
	"time"
)

const consoleBaud = 115200

// uartReader makes the console UART a blocking io.Reader for the shell.
type uartReader struct {
	uart *machine.UART
}

func (r uartReader) Read(p []byte) (int, error) {
	for r.uart.Buffered() == 0 {
		time.Sleep(time.Millisecond)
	}
	return r.uart.Read(p)
}

// InitConsole sets up UART0 (TX=GP0, RX=GP1).
func InitConsole() *machine.UART {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: consoleBaud,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})
	return uart
}
