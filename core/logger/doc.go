// Package logger provides structured logging built on zap.
//
// The logger is configured via Config (level and encoding) and shared
// across the application through dependency injection. WithRayID attaches
// the per-request ray id from the Fiber context so every log line emitted
// while serving a request can be correlated.
package logger
