// Package logger provides leveled logging for Totara CLI commands.
//
// The logger supports two verbosity levels controlled by command-line
// flags:
//
//   - --verbose: Shows info messages
//   - --debug: Shows debug messages
//
// Warnings and errors are always shown, on stderr.
//
// Commands create a logger in their PersistentPreRun and pass it to
// internal functions:
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Tracking %s for environment %s", file, env)
package logger
