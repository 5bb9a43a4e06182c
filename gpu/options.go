// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import "log/slog"

// Option configures a Context.
type Option func(*config)

type config struct {
	logger      *slog.Logger
	checkErrors bool
	label       string
}

// WithLogger sets the logger of a context. By default the package logger
// returned by Logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithErrorChecks makes resource constructors poll glGetError and fail
// with ErrResourceCreation when an error is pending.
func WithErrorChecks(enable bool) Option {
	return func(c *config) {
		c.checkErrors = enable
	}
}

// WithLabel names the context in log records.
func WithLabel(label string) Option {
	return func(c *config) {
		c.label = label
	}
}
