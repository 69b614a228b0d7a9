// Package logging wires zerolog to a rotated file and an optional GELF endpoint
// The terminal owns stdout and stderr, so no writer ever targets them
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-racer/constants"
)

// Options selects where logs go
type Options struct {
	Debug    bool   // Write a log file
	Dir      string // Defaults to constants.LogDir
	Level    string // DEBUG, INFO, WARN, ERROR or TRACE
	GelfAddr string // host:port of a Graylog UDP input; empty disables
}

// Sink owns the log destinations
type Sink struct {
	Logger zerolog.Logger

	file *os.File
	gelf *gelf.Writer
}

// ParseLevel maps a level name to zerolog, defaulting to info
func ParseLevel(s string) zerolog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "TRACE":
		return zerolog.TraceLevel
	default:
		return zerolog.InfoLevel
	}
}

// Setup builds the logger
// With no debug file and no GELF address, everything is discarded
func Setup(opts Options) (*Sink, error) {
	s := &Sink{}
	var writers []io.Writer

	if opts.Debug {
		file, err := openLogFile(opts.Dir)
		if err != nil {
			return nil, err
		}
		s.file = file
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        file,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		})
		log.SetOutput(file)
		log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	} else {
		log.SetOutput(io.Discard)
	}

	if opts.GelfAddr != "" {
		gw, err := gelf.NewWriter(opts.GelfAddr)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("error creating gelf writer: %w", err)
		}
		s.gelf = gw
		writers = append(writers, gw)
	}

	if len(writers) == 0 {
		s.Logger = zerolog.Nop()
		return s, nil
	}

	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}
	level := ParseLevel(opts.Level)
	s.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().Timestamp().Logger()

	s.Logger.Info().Str("loglevel", level.String()).Msg("Logging set up")
	return s, nil
}

// openLogFile rotates an oversized log aside before opening a fresh one
func openLogFile(dir string) (*os.File, error) {
	if dir == "" {
		dir = constants.LogDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating log directory: %w", err)
	}

	path := filepath.Join(dir, constants.LogFileName)
	if info, err := os.Stat(path); err == nil && info.Size() > constants.MaxLogSize {
		stem := strings.TrimSuffix(constants.LogFileName, filepath.Ext(constants.LogFileName))
		rotated := filepath.Join(dir, fmt.Sprintf("%s-%s.log", stem, time.Now().Format("20060102-150405")))
		if err := os.Rename(path, rotated); err != nil {
			return nil, fmt.Errorf("error rotating log file: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("error opening log file: %w", err)
	}
	return file, nil
}

// Path returns the open log file path, empty when file logging is off
func (s *Sink) Path() string {
	if s.file == nil {
		return ""
	}
	return s.file.Name()
}

// Close releases the file and the GELF socket
func (s *Sink) Close() error {
	var err error
	if s.gelf != nil {
		err = s.gelf.Close()
		s.gelf = nil
	}
	if s.file != nil {
		log.SetOutput(io.Discard)
		if cerr := s.file.Close(); err == nil {
			err = cerr
		}
		s.file = nil
	}
	return err
}
