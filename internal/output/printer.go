// Package output prints command results and errors for the deploy CLI in
// plain, styled or JSON form.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/serum-errors/go-serum"

	"deploykit/pkg/deploytypes"
)

// Mode selects how records are rendered.
type Mode int

const (
	// ModePlain writes messages unchanged.
	ModePlain Mode = iota
	// ModeStyled colors errors, notices and failed results.
	ModeStyled
	// ModeJSON writes one JSON object per record to the result writer.
	ModeJSON
)

// ParseFormat maps the output.format setting to a mode. "text" is plain,
// or styled when styled is true.
func ParseFormat(format string, styled bool) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		if styled {
			return ModeStyled, nil
		}
		return ModePlain, nil
	case "json":
		return ModeJSON, nil
	default:
		return ModePlain, deploytypes.ErrorInvalidValue("output.format", format, fmt.Errorf("expected text or json"))
	}
}

// Printer writes command output. It is safe for concurrent use.
type Printer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode

	errorStyle   lipgloss.Style
	warningStyle lipgloss.Style

	mu sync.Mutex
}

// NewPrinter creates a Printer writing to os.Stdout and os.Stderr in plain mode.
func NewPrinter(options ...Option) *Printer {
	p := &Printer{
		out:          os.Stdout,
		errOut:       os.Stderr,
		mode:         ModePlain,
		errorStyle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		warningStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

type resultRecord struct {
	Command  string `json:"command"`
	ExitCode int    `json:"exit_code"`
	Message  string `json:"message,omitempty"`
}

type errorRecord struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type noticeRecord struct {
	Notice string `json:"notice"`
}

// Result prints the outcome of the named command. Empty messages print
// nothing outside JSON mode.
func (p *Printer) Result(command string, res deploytypes.Result) {
	if p.mode == ModeJSON {
		p.writeJSON(resultRecord{Command: command, ExitCode: res.ExitCode, Message: res.Message})
		return
	}
	if res.Message == "" {
		return
	}

	text := res.Message
	if p.mode == ModeStyled && res.ExitCode != 0 {
		text = p.warningStyle.Render(text)
	}
	p.write(p.out, text)
}

// Error prints err prefixed with "Error:".
func (p *Printer) Error(err error) {
	if err == nil {
		return
	}
	if p.mode == ModeJSON {
		p.writeJSON(errorRecord{Error: err.Error(), Code: serum.Code(err)})
		return
	}

	label := "Error:"
	if p.mode == ModeStyled {
		label = p.errorStyle.Render(label)
	}
	p.write(p.errOut, label+" "+err.Error())
}

// Notice prints an informational line that is not part of a command result.
func (p *Printer) Notice(text string) {
	if p.mode == ModeJSON {
		p.writeJSON(noticeRecord{Notice: text})
		return
	}
	if p.mode == ModeStyled {
		text = p.warningStyle.Render(text)
	}
	p.write(p.errOut, text)
}

func (p *Printer) write(w io.Writer, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, _ = io.WriteString(w, text) // Ignore write errors for output operations
}

func (p *Printer) writeJSON(record interface{}) {
	data, err := json.Marshal(record)
	if err != nil {
		p.write(p.errOut, fmt.Sprintf("Error: encoding output: %v", err))
		return
	}
	p.write(p.out, string(data))
}
