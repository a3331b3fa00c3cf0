// Package output formats scan reports for display or machine consumption.
//
// Two formats are supported:
//   - json — full structured report, branch and commit order preserved (default)
//   - text — colored human-readable summary for terminal use
//
// Use [GetWriter] to obtain a [Writer] for a format string; [WriteReport]
// handles destination selection between a file path and stdout.
package output
