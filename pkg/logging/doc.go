// Package logging provides structured logging configuration for formd.
//
// This package wraps log/slog to provide consistent logging across all formd
// components. It supports configurable log levels, output formats, and an
// optional file destination for diagnostics.
//
// # Usage
//
// Create a logger with desired configuration:
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatText,
//	})
//
//	logger.Info("server started", "port", 8000)
//	logger.Error("failed to send email", "error", err)
//
// # Integration
//
// Components should accept a *slog.Logger in their constructor or via an
// option. If no logger is provided, use logging.Nop() for a no-op logger.
package logging
