package transport

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"go.bug.st/serial"
)

// OpenSerial opens the coordinator's USB console at 115200 baud, 8N1,
// asserts RTS, and returns a Transport backed by that port. No hardware
// flow control is configured.
func OpenSerial(portPath string) (Transport, error) {
	mode := &serial.Mode{
		BaudRate: 115200,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portPath, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", portPath, err)
	}

	if err := port.SetRTS(true); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("set RTS: %w", err)
	}

	log.Info().Str("port", portPath).Msg("Coordinator console connected")

	return newStreamTransport(port), nil
}
