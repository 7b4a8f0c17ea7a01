// Package logger provides structured JSON logging and run metrics for confgrab.
//
// Log entries are written one JSON object per line to any io.Writer. The CLI
// points the default logger at stderr so that progress output never mixes
// with data written to stdout.
//
// Example usage:
//
//	log := logger.New(logger.LevelDebug, os.Stderr).With(logger.Fields{
//	    "component": "details",
//	})
//	log.Info("loading from cache", logger.Fields{"url": u})
//
//	metrics.IncrCounter("details.cache_hit")
//	metrics.RecordTiming("details.fetch", elapsed)
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

var levelRank = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// ParseLevel converts a config or flag value into a Level.
func ParseLevel(s string) (Level, error) {
	level := Level(strings.ToUpper(strings.TrimSpace(s)))
	if level == "" {
		return LevelInfo, nil
	}
	if level == "WARNING" {
		return LevelWarn, nil
	}
	if _, ok := levelRank[level]; !ok {
		return "", fmt.Errorf("unknown log level: %q", s)
	}
	return level, nil
}

// Logger provides structured logging
type Logger struct {
	minLevel Level
	mu       *sync.Mutex
	output   io.Writer
	base     Fields
}

// Fields represents structured log fields
type Fields map[string]any

// LogEntry represents a single log entry
type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	Fields    Fields `json:"fields,omitempty"`
	Error     string `json:"error,omitempty"`
}

var defaultLogger = New(LevelInfo, os.Stderr)

// New creates a logger that discards messages below level.
func New(level Level, output io.Writer) *Logger {
	if output == nil {
		output = io.Discard
	}
	return &Logger{
		minLevel: level,
		mu:       &sync.Mutex{},
		output:   output,
	}
}

// Nop returns a logger that writes nothing.
func Nop() *Logger {
	return New(LevelError, io.Discard)
}

// Default returns the package-level logger.
func Default() *Logger {
	return defaultLogger
}

// SetDefault replaces the package-level logger used by Debug, Info, Warn and
// Error.
func SetDefault(logger *Logger) {
	if logger != nil {
		defaultLogger = logger
	}
}

// With returns a child logger that adds fields to every entry. Entry fields
// take precedence over fields given here.
func (l *Logger) With(fields Fields) *Logger {
	base := make(Fields, len(l.base)+len(fields))
	maps.Copy(base, l.base)
	maps.Copy(base, fields)
	return &Logger{
		minLevel: l.minLevel,
		mu:       l.mu,
		output:   l.output,
		base:     base,
	}
}

// Enabled reports whether messages at level would be written.
func (l *Logger) Enabled(level Level) bool {
	return levelRank[level] >= levelRank[l.minLevel]
}

func (l *Logger) log(level Level, message string, fields Fields, err error) {
	if !l.Enabled(level) {
		return
	}

	merged := fields
	if len(l.base) > 0 {
		merged = make(Fields, len(l.base)+len(fields))
		maps.Copy(merged, l.base)
		maps.Copy(merged, fields)
	}

	entry := LogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     string(level),
		Message:   message,
		Fields:    merged,
	}
	if err != nil {
		entry.Error = err.Error()
	}

	data, marshalErr := json.Marshal(entry)

	l.mu.Lock()
	defer l.mu.Unlock()

	if marshalErr != nil {
		fmt.Fprintf(l.output, "[%s] %s: %s (marshal error: %v)\n",
			entry.Timestamp, entry.Level, entry.Message, marshalErr)
		return
	}
	fmt.Fprintln(l.output, string(data))
}

// Debug logs a debug message with optional structured fields.
func (l *Logger) Debug(message string, fields Fields) {
	l.log(LevelDebug, message, fields, nil)
}

// Info logs an informational message with optional structured fields.
func (l *Logger) Info(message string, fields Fields) {
	l.log(LevelInfo, message, fields, nil)
}

// Warn logs a warning for a degraded but recoverable condition.
func (l *Logger) Warn(message string, fields Fields) {
	l.log(LevelWarn, message, fields, nil)
}

// Error logs an error message with optional structured fields and an error object.
func (l *Logger) Error(message string, fields Fields, err error) {
	l.log(LevelError, message, fields, err)
}

// Package-level convenience functions using default logger

// Debug logs a debug message with the default logger
func Debug(message string, fields Fields) {
	defaultLogger.Debug(message, fields)
}

// Info logs an info message with the default logger
func Info(message string, fields Fields) {
	defaultLogger.Info(message, fields)
}

// Warn logs a warning message with the default logger
func Warn(message string, fields Fields) {
	defaultLogger.Warn(message, fields)
}

// Error logs an error message with the default logger
func Error(message string, fields Fields, err error) {
	defaultLogger.Error(message, fields, err)
}

// Metrics counts what happened during a run: records emitted, detail pages
// served from cache or fetched, and how long fetches took.
// All operations are thread-safe.
type Metrics struct {
	mu       sync.Mutex
	counters map[string]int64
	timings  map[string][]time.Duration
}

// NewMetrics creates a new metrics tracker with empty counters and timings.
func NewMetrics() *Metrics {
	return &Metrics{
		counters: make(map[string]int64),
		timings:  make(map[string][]time.Duration),
	}
}

// IncrCounter increments a counter by 1.
func (m *Metrics) IncrCounter(name string) {
	m.AddCounter(name, 1)
}

// AddCounter adds delta to a counter.
func (m *Metrics) AddCounter(name string, delta int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name] += delta
}

// Counter returns the current value of a counter.
func (m *Metrics) Counter(name string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[name]
}

// RecordTiming records a duration measurement.
func (m *Metrics) RecordTiming(name string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timings[name] = append(m.timings[name], duration)
}

// TimingStats summarises the durations recorded under one name.
type TimingStats struct {
	Count   int           `json:"count"`
	Total   time.Duration `json:"total"`
	Average time.Duration `json:"average"`
	Min     time.Duration `json:"min"`
	Max     time.Duration `json:"max"`
}

// Snapshot is a point-in-time copy of all metrics.
type Snapshot struct {
	Counters map[string]int64       `json:"counters"`
	Timings  map[string]TimingStats `json:"timings"`
}

// CounterNames returns the counter names in sorted order.
func (s Snapshot) CounterNames() []string {
	names := make([]string, 0, len(s.Counters))
	for name := range s.Counters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetSnapshot returns a deep copy of all metrics, safe to use concurrently
// with metric updates.
func (m *Metrics) GetSnapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := Snapshot{
		Counters: maps.Clone(m.counters),
		Timings:  make(map[string]TimingStats, len(m.timings)),
	}

	for name, durations := range m.timings {
		if len(durations) == 0 {
			continue
		}

		stats := TimingStats{
			Count: len(durations),
			Min:   durations[0],
			Max:   durations[0],
		}
		for _, d := range durations {
			stats.Total += d
			stats.Min = min(stats.Min, d)
			stats.Max = max(stats.Max, d)
		}
		stats.Average = stats.Total / time.Duration(len(durations))

		snapshot.Timings[name] = stats
	}

	return snapshot
}
