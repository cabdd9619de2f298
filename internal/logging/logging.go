// Package logging configures the process-wide log sink.
package logging

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/hashicorp/go-hclog"

	"github.com/fivetwenty-io/canvas-client/pkg/canvas"
)

// TimeFormat matches "2006-01-02 15:04:05,000".
const TimeFormat = "2006-01-02 15:04:05,000"

// Options configure New.
type Options struct {
	Output io.Writer
	Debug  bool
	// Color forces colored level names; hclog only honors it on a terminal.
	Color bool
}

// New creates the process logger: timestamp, "p<pid>" name, caller location
// and level on every line. Debug lowers the level from INFO to DEBUG.
func New(opts Options) hclog.Logger {
	output := opts.Output
	if output == nil {
		output = os.Stderr
	}

	level := hclog.Info
	if opts.Debug {
		level = hclog.Debug
	}

	color := hclog.ColorOff
	if opts.Color {
		color = hclog.AutoColor
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:            fmt.Sprintf("p%d", os.Getpid()),
		Level:           level,
		Output:          output,
		TimeFormat:      TimeFormat,
		IncludeLocation: true,
		// Report the caller of Adapter, not the adapter itself.
		AdditionalLocationOffset: 1,
		Color:                    color,
	})
}

// Adapter exposes an hclog.Logger as a canvas.Logger.
type Adapter struct {
	logger hclog.Logger
}

// NewAdapter wraps logger.
func NewAdapter(logger hclog.Logger) *Adapter {
	return &Adapter{logger: logger}
}

// Debug implements canvas.Logger.
func (a *Adapter) Debug(msg string, fields map[string]interface{}) {
	a.logger.Debug(msg, flatten(fields)...)
}

// Info implements canvas.Logger.
func (a *Adapter) Info(msg string, fields map[string]interface{}) {
	a.logger.Info(msg, flatten(fields)...)
}

// Warn implements canvas.Logger.
func (a *Adapter) Warn(msg string, fields map[string]interface{}) {
	a.logger.Warn(msg, flatten(fields)...)
}

// Error implements canvas.Logger.
func (a *Adapter) Error(msg string, fields map[string]interface{}) {
	a.logger.Error(msg, flatten(fields)...)
}

var _ canvas.Logger = (*Adapter)(nil)

// flatten turns fields into hclog's alternating key/value form, keys sorted.
func flatten(fields map[string]interface{}) []interface{} {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	args := make([]interface{}, 0, len(fields)*2)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}

	return args
}
