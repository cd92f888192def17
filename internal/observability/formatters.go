// Package observability provides formatted summaries of the CV state for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/cv-builder/internal/fields"
	"github.com/jonathan/cv-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// valueWidth is where field values are cut inside a box
	valueWidth = 36
)

// Printer handles formatted output for the show command
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// oneLine collapses a multi-line value for display
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// PrintFields outputs the simple and skill field values in registry order.
// Empty fields are shown as "-".
func (p *Printer) PrintFields(reg *fields.Registry, snap *types.Snapshot) {
	if reg == nil || snap == nil {
		return
	}

	var sb strings.Builder
	filled := 0
	for _, id := range reg.FieldIDs() {
		value := oneLine(snap.SimpleInputs[id])
		if value == "" {
			value = "-"
		} else {
			filled++
		}
		sb.WriteString(fmt.Sprintf("%-16s %s\n", id, truncate(value, valueWidth)))
	}
	sb.WriteString(fmt.Sprintf("\n%d of %d fields filled", filled, len(reg.FieldIDs())))

	p.printBox("FIELDS", sb.String())
}

// PrintGroups outputs every entry group with the first sub-field of each entry.
func (p *Printer) PrintGroups(reg *fields.Registry, snap *types.Snapshot) {
	if reg == nil || snap == nil {
		return
	}

	var sb strings.Builder
	groups := reg.Groups()
	for gi, g := range groups {
		list := snap.DynamicLists[string(g.Name)]
		sb.WriteString(fmt.Sprintf("%s (%d)\n", g.Name, len(list)))

		count := min(len(list), maxItemsToShow)
		for i := 0; i < count; i++ {
			label := ""
			if len(g.SubFields) > 0 {
				label = oneLine(list[i][g.SubFields[0].Key])
			}
			if label == "" {
				label = "(empty)"
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", truncate(label, valueWidth+10)))
		}
		if len(list) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(list)-maxItemsToShow))
		}
		if gi < len(groups)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(fmt.Sprintf("ENTRIES (%d total)", snap.EntryCount()), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSnapshot outputs fields and entry groups of a saved snapshot.
func (p *Printer) PrintSnapshot(reg *fields.Registry, snap *types.Snapshot) {
	p.PrintFields(reg, snap)
	p.PrintGroups(reg, snap)
}

// PrintSession outputs zoom level, section list and progress.
func (p *Printer) PrintSession(view types.SessionView) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Zoom:      %d%%\n", view.Zoom))
	sb.WriteString(fmt.Sprintf("Progress:  %s\n\n", view.Progress.Text))

	for i, title := range view.Sections {
		marker := " "
		if i == view.ActiveSection {
			marker = "▶"
		}
		sb.WriteString(fmt.Sprintf("%s %d. %s\n", marker, i+1, title))
	}

	p.printBox("SESSION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExports lists files written by an export.
func (p *Printer) PrintExports(paths []string) {
	if len(paths) == 0 {
		return
	}
	p.printBox("EXPORTED", strings.Join(paths, "\n"))
}
