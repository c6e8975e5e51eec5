// SPDX-License-Identifier: MPL-2.0

package phase

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"fnbuild/internal/issue"
)

var (
	headerStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	warningTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	warningBodyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorTitleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	errorBodyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// Failure is the error returned by Logger.Error after the error block has
// been rendered. Its message is the title alone; callers terminate the
// phase with it and must not render it again. IssueID optionally names a
// catalog entry the CLI layer renders as remediation help.
type Failure struct {
	Title   string
	IssueID issue.Id
}

// Error implements the error interface.
func (f *Failure) Error() string { return f.Title }

// WithIssue attaches a catalog entry to the failure and returns it.
func (f *Failure) WithIssue(id issue.Id) *Failure {
	f.IssueID = id
	return f
}

// Logger writes the phase narrative. Info, Header, Debug, and Warning go
// to out; Error goes to errOut. Debug output is dropped unless the debug
// gate was enabled at construction.
type Logger struct {
	out    io.Writer
	errOut io.Writer
	debug  bool
	diag   *log.Logger
}

// NewLogger returns a Logger writing to out and errOut. The debug flag
// gates both Debug lines and the diagnostics logger's debug level.
func NewLogger(out, errOut io.Writer, debug bool) *Logger {
	diag := log.NewWithOptions(errOut, log.Options{
		Prefix: "fnbuild",
	})
	if debug {
		diag.SetLevel(log.DebugLevel)
	}
	return &Logger{out: out, errOut: errOut, debug: debug, diag: diag}
}

// NewDefaultLogger returns a Logger on the process's stdout and stderr.
func NewDefaultLogger(debug bool) *Logger {
	return NewLogger(os.Stdout, os.Stderr, debug)
}

// Header writes a section banner: a blank line, then the bracketed title.
func (l *Logger) Header(msg string) {
	fmt.Fprintf(l.out, "\n%s\n", headerStyle.Render("["+msg+"]"))
}

// Info writes a plain progress line.
func (l *Logger) Info(msg string) {
	fmt.Fprintf(l.out, "[INFO] %s\n", msg)
}

// Debug writes a diagnostic line when the debug gate is enabled and drops
// it otherwise. Enabling debug changes log output only, never behavior.
func (l *Logger) Debug(msg string) {
	if !l.debug {
		return
	}
	fmt.Fprintf(l.out, "[DEBUG] %s\n", msg)
}

// Warning writes a titled warning block. Warnings never terminate the
// phase.
func (l *Logger) Warning(title, body string) {
	fmt.Fprintf(l.out, "\n%s\n", warningTitleStyle.Render("[WARNING: "+title+"]"))
	fmt.Fprintf(l.out, "%s\n", warningBodyStyle.Render(body))
}

// Error writes a titled error block to the error stream and returns a
// *Failure carrying the title. Every call terminates the phase: the caller
// propagates the returned error and the CLI exits non-zero.
func (l *Logger) Error(title, body string) *Failure {
	fmt.Fprintf(l.errOut, "\n%s\n", errorTitleStyle.Render("[ERROR: "+title+"]"))
	fmt.Fprintf(l.errOut, "%s\n", errorBodyStyle.Render(body))
	return &Failure{Title: title}
}

// Out returns the narrative output stream. Subprocesses whose output
// belongs in the build narrative (the detector) inherit this writer.
func (l *Logger) Out() io.Writer { return l.out }

// ErrOut returns the error output stream.
func (l *Logger) ErrOut() io.Writer { return l.errOut }

// Diag returns the structured diagnostics logger. Its debug level follows
// the same gate as Debug.
func (l *Logger) Diag() *log.Logger { return l.diag }

// DebugEnabled reports whether the debug gate is open.
func (l *Logger) DebugEnabled() bool { return l.debug }
