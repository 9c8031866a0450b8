// Package viz renders comparison charts for the terminal.
//
//   - [SolutionChart]: the analytical curve against every method at one step size
//   - [ErrorChart]: log10 of the absolute error per case
//   - [Theme]: series and accent colors shared with the TUI and text report
//
// Charts are plain strings built with asciigraph; legends and headings are
// styled with lipgloss.
package viz
