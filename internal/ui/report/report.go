package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/imamik/lambdeploy/internal/provisioning"
)

// IsInteractive reports whether f is a terminal that can show colors.
func IsInteractive(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Printer writes human-readable run summaries.
type Printer struct {
	w      io.Writer
	styled bool
}

// NewPrinter creates a printer. Styles are applied only when styled is true.
func NewPrinter(w io.Writer, styled bool) *Printer {
	return &Printer{w: w, styled: styled}
}

func (p *Printer) paint(style lipgloss.Style, s string) string {
	if !p.styled {
		return s
	}
	return style.Render(s)
}

// Summary prints what a run did. runErr is the error the run ended with, if any.
func (p *Printer) Summary(title string, state *provisioning.State, runErr error) {
	var b strings.Builder

	b.WriteString("  " + p.paint(titleStyle, title) + "\n")
	if state != nil {
		b.WriteString("  " + p.paint(dimStyle, "run "+state.RunID) + "\n")
		p.renderCredentials(&b, state)
		p.renderArtifact(&b, state)
		p.renderBucket(&b, state)
		p.renderFunction(&b, state)
	}

	b.WriteString("\n")
	if runErr != nil {
		b.WriteString("  " + p.paint(failedStyle, "Failed: "+runErr.Error()) + "\n")
	} else {
		b.WriteString("  " + p.paint(okStyle, "Done") + "\n")
	}

	_, _ = io.WriteString(p.w, b.String())
}

func (p *Printer) section(b *strings.Builder, name string) {
	b.WriteString("\n  " + p.paint(sectionStyle, name) + "\n")
}

func (p *Printer) row(b *strings.Builder, mark string, style lipgloss.Style, name, detail string) {
	line := fmt.Sprintf("  %s %-24s", p.paint(style, mark), name)
	if detail != "" {
		line += " " + p.paint(dimStyle, detail)
	}
	b.WriteString(strings.TrimRight(line, " ") + "\n")
}

func (p *Printer) renderCredentials(b *strings.Builder, state *provisioning.State) {
	if state.Identity == nil {
		return
	}
	p.section(b, "Credentials")
	p.row(b, checkMark, okStyle, "account "+state.Identity.Account, state.Identity.ARN)
}

func (p *Printer) renderArtifact(b *strings.Builder, state *provisioning.State) {
	art := state.Artifact
	if art == nil {
		return
	}
	p.section(b, "Artifact")
	detail := fmt.Sprintf("%d files, %s, sha256 %s", art.Files, humanBytes(art.Size), shortHash(art.SHA256))
	p.row(b, checkMark, okStyle, art.Name, detail)
	if state.ArtifactRemoved {
		p.row(b, skipMark, dimStyle, "local copy removed", "")
	} else {
		p.row(b, skipMark, dimStyle, "local copy kept", art.Path)
	}
}

func (p *Printer) renderBucket(b *strings.Builder, state *provisioning.State) {
	if state.BucketOutcome == provisioning.OutcomeUnknown {
		return
	}
	p.section(b, "Storage")
	mark, style := outcomeMark(state.BucketOutcome)
	p.row(b, mark, style, "bucket", state.BucketOutcome.String())
	if state.ObjectURI != "" {
		p.row(b, checkMark, okStyle, "object", state.ObjectURI)
	}
}

func (p *Printer) renderFunction(b *strings.Builder, state *provisioning.State) {
	if state.FunctionOutcome == provisioning.OutcomeUnknown {
		return
	}
	p.section(b, "Function")
	mark, style := outcomeMark(state.FunctionOutcome)
	detail := state.FunctionOutcome.String()
	if state.FunctionOutcome == provisioning.OutcomeFailed {
		detail += " (lookup " + state.Lookup.String() + ")"
	}
	name := "function"
	if fn := state.Function; fn != nil {
		name = fn.Name
		detail += " version " + fn.Version
	}
	p.row(b, mark, style, name, detail)
	if fn := state.Function; fn != nil && fn.ARN != "" {
		p.row(b, skipMark, dimStyle, "arn", fn.ARN)
	}
}

func outcomeMark(o provisioning.Outcome) (string, lipgloss.Style) {
	switch o {
	case provisioning.OutcomeFailed:
		return crossMark, failedStyle
	case provisioning.OutcomeCreated, provisioning.OutcomeUpdated:
		return checkMark, changedStyle
	default:
		return checkMark, okStyle
	}
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// Result is the machine-readable form of a run.
type Result struct {
	Success bool                 `json:"success"`
	Error   string               `json:"error,omitempty"`
	State   *provisioning.State  `json:"state,omitempty"`
	Events  []provisioning.Event `json:"events,omitempty"`
}

// WriteJSON writes the run as a single indented JSON document.
func WriteJSON(w io.Writer, state *provisioning.State, events []provisioning.Event, runErr error) error {
	res := Result{Success: runErr == nil, State: state, Events: events}
	if runErr != nil {
		res.Error = runErr.Error()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}
