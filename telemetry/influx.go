// Package telemetry exports race events to InfluxDB
package telemetry

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-racer/engine"
)

// ErrDisabled is returned by Connect when telemetry is switched off
var ErrDisabled = errors.New("telemetry disabled")

// Measurement names
const (
	MeasurementLap       = "lap"
	MeasurementCollision = "collision"
)

// Config selects the InfluxDB target
type Config struct {
	Enabled    bool
	URL        string
	Token      string
	Org        string
	Bucket     string
	BackupPath string // Gzipped line protocol written when the server is unreachable
}

// Exporter is an engine.Observer that turns lap and collision events into points
// Points go to an async InfluxDB write API, or to a gzipped backup file when the server is down
type Exporter struct {
	session string
	log     zerolog.Logger

	client influxdb2.Client
	writer influxdb2_api.WriteAPI

	mu     sync.Mutex
	backup io.WriteCloser
	gz     *gzip.Writer
	points int64
	closed bool

	errWG sync.WaitGroup
}

// Connect builds an exporter for one race session
func Connect(cfg Config, session string, log zerolog.Logger) (*Exporter, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}

	e := &Exporter{session: session, log: log}

	client := influxdb2.NewClientWithOptions(cfg.URL, cfg.Token,
		influxdb2.DefaultOptions().
			SetBatchSize(100).
			SetFlushInterval(1000))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	running, err := client.Ping(ctx)
	cancel()

	if err == nil && running {
		e.client = client
		e.writer = client.WriteAPI(cfg.Org, cfg.Bucket)
		errorsCh := e.writer.Errors()
		e.errWG.Add(1)
		go func() {
			defer e.errWG.Done()
			for writeErr := range errorsCh {
				log.Error().Err(writeErr).Str("bucket", cfg.Bucket).Msg("Error sending data to InfluxDB")
			}
		}()
		log.Info().Str("url", cfg.URL).Str("bucket", cfg.Bucket).Msg("InfluxDB client initialized")
		return e, nil
	}
	client.Close()

	if cfg.BackupPath == "" {
		return nil, fmt.Errorf("influxdb unreachable at %s and no backup path: %v", cfg.URL, err)
	}
	file, ferr := os.OpenFile(cfg.BackupPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if ferr != nil {
		return nil, fmt.Errorf("error creating backup file: %w", ferr)
	}
	log.Warn().Str("backupPath", cfg.BackupPath).Msg("InfluxDB unreachable, writing to backup file")
	return newBackupExporter(file, session, log), nil
}

// newBackupExporter writes gzipped line protocol to w
func newBackupExporter(w io.WriteCloser, session string, log zerolog.Logger) *Exporter {
	return &Exporter{
		session: session,
		log:     log,
		backup:  w,
		gz:      gzip.NewWriter(w),
	}
}

// OnFrame exports the frame's events; runs on the tick goroutine and never blocks on the network
func (e *Exporter) OnFrame(f engine.Frame) {
	for _, ev := range f.Events {
		var p *influxdb2_write.Point
		switch ev.Type {
		case engine.EventLap:
			p = LapPoint(e.session, ev)
		case engine.EventWallHit, engine.EventCarHit:
			p = CollisionPoint(e.session, ev, f.Time)
		}
		if p == nil {
			continue
		}
		if err := e.write(p); err != nil {
			e.log.Error().Err(err).Msg("Failed to export point")
		}
	}
}

// LapPoint converts a timed lap event; opening crossings have no time and yield nil
func LapPoint(session string, ev engine.Event) *influxdb2_write.Point {
	if ev.Type != engine.EventLap || !ev.Lap.Timed {
		return nil
	}
	return influxdb2.NewPointWithMeasurement(MeasurementLap).
		AddTag("session", session).
		AddTag("vehicle", fmt.Sprint(ev.Vehicle)).
		AddTag("kind", ev.Kind.String()).
		AddField("lap", ev.Lap.Number).
		AddField("lap_time_s", ev.Lap.LapTime.Seconds()).
		AddField("personal_best", ev.Lap.PersonalBest).
		SetTime(ev.Lap.CompletedTime)
}

// CollisionPoint converts a wall or car hit; simTime is the offset from session start
func CollisionPoint(session string, ev engine.Event, simTime time.Duration) *influxdb2_write.Point {
	return influxdb2.NewPointWithMeasurement(MeasurementCollision).
		AddTag("session", session).
		AddTag("vehicle", fmt.Sprint(ev.Vehicle)).
		AddTag("kind", ev.Kind.String()).
		AddTag("type", ev.Type.String()).
		AddField("other", ev.Other).
		AddField("x", ev.Point.X()).
		AddField("y", ev.Point.Y()).
		AddField("sim_time_s", simTime.Seconds())
}

func (e *Exporter) write(p *influxdb2_write.Point) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.points++

	if e.writer != nil {
		e.writer.WritePoint(p)
		return nil
	}
	line := influxdb2_write.PointToLineProtocol(p, time.Nanosecond)
	if _, err := e.gz.Write([]byte(line)); err != nil {
		return fmt.Errorf("error writing to InfluxDB backup file: %w", err)
	}
	return nil
}

// Points returns how many points were exported
func (e *Exporter) Points() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.points
}

// Close flushes pending points and releases the client or backup file; idempotent
func (e *Exporter) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.mu.Unlock()

	if e.writer != nil {
		e.writer.Flush()
		e.client.Close()
		e.errWG.Wait()
		return nil
	}

	err := e.gz.Close()
	if cerr := e.backup.Close(); err == nil {
		err = cerr
	}
	return err
}
