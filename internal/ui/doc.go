// Package ui provides semantic text formatting for CLI output.
//
// This package defines formatters for different types of content (code,
// paths, errors, etc.) that render appropriately based on terminal
// capabilities. When colors are available, content is colorized. When
// NO_COLOR is set or the terminal doesn't support colors, text-based
// decorations (backticks, quotes) are used instead.
//
// # Semantic Formatters
//
// Use the appropriate formatter for the content type:
//
//	ui.Code.Sprint("totara push prod")        // Commands and code
//	ui.Path.Sprint(".env.production")         // File paths
//	ui.Success.Sprint("✓")                    // Success indicators
//	ui.Error.Sprint("✗")                      // Error indicators
//	ui.Info.Sprint("→")                       // Informational hints
//	ui.Highlight.Sprint("prod")               // User values
//	ui.Muted.Sprint("no remote")              // De-emphasized text
//
// RenderDiff formats key-level env file diffs with the conventional
// +/-/~ markers, colored when the terminal supports it.
package ui
