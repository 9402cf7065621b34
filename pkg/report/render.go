package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lerenn/push-issues/pkg/plan"
	"gopkg.in/yaml.v3"
)

// Format is an output format for a report.
type Format string

const (
	// FormatText renders a human-readable summary.
	FormatText Format = "text"
	// FormatYAML renders the full report as YAML.
	FormatYAML Format = "yaml"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true)
	createdStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	existingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999"))
	plannedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	failedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	errorTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case FormatText:
		return FormatText, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Render writes the report in the given format.
func Render(w io.Writer, r *Report, format Format) error {
	switch format {
	case FormatYAML:
		return renderYAML(w, r)
	case FormatText, "":
		return renderText(w, r)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

type yamlDocument struct {
	Report  `yaml:",inline"`
	Summary Counts `yaml:"summary"`
}

func renderYAML(w io.Writer, r *Report) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(yamlDocument{Report: *r, Summary: r.Counts()}); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return encoder.Close()
}

func renderText(w io.Writer, r *Report) error {
	var b strings.Builder

	title := "Pushed to " + r.Repository
	if r.DryRun {
		title = "Dry run against " + r.Repository
	}
	b.WriteString(headerStyle.Render(title) + "\n")

	for _, o := range r.Outcomes {
		line := fmt.Sprintf("  %s %s %s", statusLabel(o.Status), o.Kind, itemLabel(o))
		if o.Status == StatusFailed && o.Error != "" {
			line += ": " + errorTextStyle.Render(o.Error)
		}
		b.WriteString(line + "\n")
	}

	c := r.Counts()
	summary := fmt.Sprintf("%d created, %d existing, %d failed", c.Created, c.Existing+c.Duplicate, c.Failed)
	if r.DryRun {
		summary = fmt.Sprintf("%d to create, %d existing", c.Planned, c.Existing+c.Duplicate)
	}
	b.WriteString(headerStyle.Render(summary) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func statusLabel(s Status) string {
	label := fmt.Sprintf("%-9s", s)
	switch s {
	case StatusCreated:
		return createdStyle.Render(label)
	case StatusPlanned:
		return plannedStyle.Render(label)
	case StatusFailed:
		return failedStyle.Render(label)
	default:
		return existingStyle.Render(label)
	}
}

func itemLabel(o Outcome) string {
	label := fmt.Sprintf("%q", o.Title)
	if o.Kind == plan.KindCreateIssue {
		label += fmt.Sprintf(" (milestone %q)", o.MilestoneTitle)
	}
	if o.Number > 0 {
		label += fmt.Sprintf(" #%d", o.Number)
	}
	return label
}
