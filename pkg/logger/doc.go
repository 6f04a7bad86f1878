// Package logger builds configured log/slog loggers for the toolkit's
// client subsystems.
//
// Defaults are production-safe (JSON handler, INFO level, stdout); options
// switch to text output, change the level or destination, and attach static
// attributes such as the emitting component. The attr helpers keep attribute
// keys consistent across packages.
package logger
