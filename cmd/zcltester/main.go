package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/urmzd/zcl-harness/docs"
	"github.com/urmzd/zcl-harness/pkg/api"
	"github.com/urmzd/zcl-harness/pkg/coordinator"
	"github.com/urmzd/zcl-harness/pkg/mcpserver"
	"github.com/urmzd/zcl-harness/pkg/store"
	"github.com/urmzd/zcl-harness/pkg/transport"
	"github.com/urmzd/zcl-harness/pkg/zcl"
)

// @title       ZCL Test Harness API
// @version     1.0
// @description Read-only inspection API over the loaded ZCL schema and coordinator state
// @BasePath    /

// schemaPaths collects repeated -schema flags into an ordered slice.
type schemaPaths []string

func (p *schemaPaths) String() string { return strings.Join(*p, ",") }

func (p *schemaPaths) Set(value string) error {
	*p = append(*p, value)
	return nil
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var schemas schemaPaths
	flag.Var(&schemas, "schema", "Path to a ZCL schema XML file (repeatable)")
	addr := flag.String("addr", "", "Coordinator console address, host:port for TCP or a device path for serial (overrides the persisted address)")
	dbPath := flag.String("db", "", "Path to the harness store (default: ~/.config/zcl-harness/harness.db)")
	httpAddr := flag.String("http", ":8080", "Inspection API listen address")
	flag.Parse()

	if len(schemas) == 0 {
		log.Fatal().Msg("at least one -schema file is required")
	}

	ctx := context.Background()

	st, err := store.Open(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open harness store")
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close harness store")
		}
	}()
	log.Info().Str("path", st.Path()).Msg("harness store opened")

	priorConfig, err := st.Load(ctx)
	if err != nil && !errors.Is(err, store.ErrNoConfig) {
		log.Fatal().Err(err).Msg("failed to load persisted harness config")
	}

	controllerAddr := priorConfig.ControllerAddr
	if *addr != "" {
		controllerAddr = *addr
	}
	if controllerAddr == "" {
		log.Fatal().Msg("no coordinator address persisted or given; pass -addr")
	}

	schema, err := zcl.LoadSchema(schemas...)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load ZCL schema")
	}
	log.Info().Int("clusters", len(schema.Clusters)).Msg("ZCL schema loaded")

	tp, err := openTransport(controllerAddr)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open coordinator console")
	}
	defer tp.Close()

	session := coordinator.NewSession(coordinator.NewController(tp))

	router := api.NewRouter(schema, session, st)
	go func() {
		log.Info().Str("address", *httpAddr).Msg("starting inspection API")
		if err := router.Run(*httpAddr); err != nil {
			log.Error().Err(err).Msg("inspection API stopped")
		}
	}()

	mcpSrv := mcpserver.NewServer(schema, session)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info().Msg("shutting down, persisting harness config")
		cfg := store.Config{
			ControllerAddr: controllerAddr,
			DUTNodeID:      priorConfig.DUTNodeID,
			DUTIEEEAddress: priorConfig.DUTIEEEAddress,
		}
		if err := st.Save(context.Background(), cfg); err != nil {
			log.Error().Err(err).Msg("failed to persist harness config")
		}
		if err := tp.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close coordinator console")
		}
		os.Exit(0)
	}()

	log.Info().Msg("starting MCP tool server on stdio")
	if err := mcpSrv.ServeStdio(); err != nil {
		log.Fatal().Err(err).Msg("MCP tool server failed")
	}
}

// openTransport opens addr as a serial device path if it looks like one
// (starts with "/dev/" or "COM"), dials it over TCP if it parses as a
// host:port, and otherwise opens it as a serial device path.
func openTransport(addr string) (transport.Transport, error) {
	if strings.HasPrefix(addr, "/dev/") || strings.HasPrefix(strings.ToUpper(addr), "COM") {
		return transport.OpenSerial(addr)
	}
	if _, _, err := net.SplitHostPort(addr); err == nil {
		return transport.OpenTCP(addr)
	}
	return transport.OpenSerial(addr)
}
