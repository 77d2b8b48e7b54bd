package logger

import (
	"io"
	"os"

	"github.com/google/wire"
)

// ProviderSet binds the configured slog logger as the application Logger.
var ProviderSet = wire.NewSet(
	NewConfiguredLogger,
	wire.Bind(new(Logger), new(*SlogAdapter)),
)

// Config selects the handler and level of the application logger.
// A nil Output writes to stdout.
type Config struct {
	Environment string
	LogLevel    string
	Output      io.Writer
}

func NewConfiguredLogger(config Config) *SlogAdapter {
	out := config.Output
	if out == nil {
		out = os.Stdout
	}
	return newSlogAdapter(out, config.Environment, config.LogLevel)
}
