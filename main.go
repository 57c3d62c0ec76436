package main

import (
	"flag"
	"io"
	"os"

	"github.com/cameroncuttingedge/tic/api"
	"github.com/cameroncuttingedge/tic/config"
	"github.com/cameroncuttingedge/tic/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var configPath = flag.String("config", os.Getenv("CONFIG_FILE"), "Path to a YAML config file")

func main() {
	flag.Parse()
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	closeLog := InitializeLogger(cfg)
	defer closeLog()

	websocket.StartEventListening()
	log.Info().Msg("Starting App")
	if err := api.StartAPI(cfg); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

// InitializeLogger points the global logger at stdout, or at stdout and the
// configured log file when file logging is on. The returned func closes the
// file.
func InitializeLogger(cfg config.Config) func() {
	closer := func() {}
	var out io.Writer = os.Stdout
	if cfg.Logging {
		runLogFile, err := os.OpenFile(
			cfg.LogFile,
			os.O_APPEND|os.O_CREATE|os.O_WRONLY,
			0664,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open log file")
		}
		out = zerolog.MultiLevelWriter(runLogFile, os.Stdout)
		closer = func() { runLogFile.Close() }
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		log.Warn().Str("logLevel", cfg.LogLevel).Msg("Unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	return closer
}
