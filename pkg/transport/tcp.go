package transport

import (
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog/log"
)

// OpenTCP dials the coordinator console over TCP (the reference harness
// exposes it on port 4900) and returns a Transport backed by that
// connection.
func OpenTCP(addr string) (Transport, error) {
	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("dial coordinator console at %s: %w", addr, err)
	}

	log.Info().Str("addr", addr).Msg("Coordinator console connected")

	return newStreamTransport(conn), nil
}
