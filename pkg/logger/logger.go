package logx

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Debug        bool `split_words:"true" default:"false"`
	PrettyFormat bool `split_words:"true" default:"false"`
}

// Init configures the global logger. Stdout gets JSON (or console output when PrettyFormat is set);
// every sink receives a plain "time LEVEL message key=value" line per event.
func Init(conf Config, sinks ...io.Writer) {
	log.Logger = New(conf, os.Stdout, sinks...)
	zerolog.DefaultContextLogger = &log.Logger
}

func New(conf Config, stdout io.Writer, sinks ...io.Writer) zerolog.Logger {
	var primary io.Writer = stdout
	if conf.PrettyFormat {
		primary = zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.Out = stdout
		})
	}

	writers := []io.Writer{primary}
	for _, sink := range sinks {
		if sink == nil {
			continue
		}
		writers = append(writers, PlainWriter(sink))
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()

	if conf.Debug {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	return logger.With().Caller().Logger()
}

// PlainWriter renders events as single uncolored lines, matching what the log endpoints return.
func PlainWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    true,
		TimeFormat: time.RFC3339,
		PartsOrder: []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			zerolog.MessageFieldName,
		},
	}
}

// OpenFile opens path for appending, creating it when absent.
func OpenFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return f, nil
}
