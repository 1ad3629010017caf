package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	defaultLogger zerolog.Logger
	once          sync.Once
)

// Init initializes the default logger. Format "console" gives
// human-readable output for the CLI; anything else emits JSON lines.
// It ensures that the logger is initialized only once.
func Init() {
	InitWith("info", "json")
}

// InitWith initializes the default logger with an explicit level and format.
func InitWith(level, format string) {
	once.Do(func() {
		lvl, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil || lvl == zerolog.NoLevel {
			lvl = zerolog.InfoLevel
		}

		if format == "console" {
			defaultLogger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(lvl).With().Timestamp().Logger()
		} else {
			defaultLogger = zerolog.New(os.Stdout).
				Level(lvl).With().Timestamp().Logger()
		}
	})
}

// Get returns the initialized default logger.
// It calls Init() to ensure the logger is ready before returning it.
func Get() *zerolog.Logger {
	Init()
	return &defaultLogger
}

// Info logs an informational message with alternating key/value args.
func Info(msg string, args ...any) {
	withFields(Get().Info(), args).Msg(msg)
}

// Warn logs a warning message with alternating key/value args.
func Warn(msg string, args ...any) {
	withFields(Get().Warn(), args).Msg(msg)
}

// Error logs an error message, attaching err when non-nil.
func Error(msg string, err error, args ...any) {
	ev := Get().Error()
	if err != nil {
		ev = ev.Err(err)
	}
	withFields(ev, args).Msg(msg)
}

// Debug logs a debug message with alternating key/value args.
func Debug(msg string, args ...any) {
	withFields(Get().Debug(), args).Msg(msg)
}

// withFields folds ("key", value, "key", value, ...) pairs onto an event.
// A trailing unpaired arg is logged under "arg".
func withFields(ev *zerolog.Event, args []any) *zerolog.Event {
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", args[i])
		}
		ev = ev.Interface(key, args[i+1])
	}
	if len(args)%2 == 1 {
		ev = ev.Interface("arg", args[len(args)-1])
	}
	return ev
}
