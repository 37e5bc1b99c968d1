package session

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/provide-io/erlc/pkg/calculator"
	"github.com/provide-io/erlc/pkg/hub"
	"github.com/provide-io/erlc/pkg/widgets"
)

// Region labels, shared with the HTML page.
const (
	LabelErrorReporting = "error_reporting expression"
	LabelPHPIni         = "ini-style expression"
	LabelRaw            = "raw numeric value"
)

// WriteVersions prints the version list, marking the active one.
func WriteVersions(w io.Writer, versions []widgets.VersionOption) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, v := range versions {
		mark := " "
		if v.Selected {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s %s\t%s\n", mark, v.Key, v.Label)
	}
	tw.Flush()
}

// WriteToggles prints one line per toggle with its checked state.
func WriteToggles(w io.Writer, toggles []widgets.Toggle, descriptions bool) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, t := range toggles {
		box := "[ ]"
		if t.Checked {
			box = "[x]"
		}
		if descriptions {
			fmt.Fprintf(tw, "%s %s\t%d\t%s\n", box, t.Name, t.Value, t.Description)
		} else {
			fmt.Fprintf(tw, "%s %s\t%d\n", box, t.Name, t.Value)
		}
	}
	tw.Flush()
}

// WriteSummary prints the three preview slots.
func WriteSummary(w io.Writer, s widgets.Summary) {
	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
	fmt.Fprintf(tw, "%s:\t%s\n", LabelErrorReporting, s.ErrorReporting)
	fmt.Fprintf(tw, "%s:\t%s\n", LabelPHPIni, s.PHPIni)
	fmt.Fprintf(tw, "%s:\t%s\n", LabelRaw, s.Raw)
	tw.Flush()
}

// WriteSnapshot prints every region.
func WriteSnapshot(w io.Writer, snap calculator.Snapshot) {
	fmt.Fprintf(w, "version: %s\n", snap.State.Version)
	WriteToggles(w, snap.Toggles, false)
	fmt.Fprintf(w, "level: %s\n", snap.LevelText)
	WriteSummary(w, snap.Summary)
}

// writeRendered prints only the regions a dispatch re-rendered.
func writeRendered(w io.Writer, snap calculator.Snapshot, rendered []hub.Origin) {
	for _, o := range rendered {
		switch o {
		case hub.OriginConstants:
			WriteToggles(w, snap.Toggles, false)
		case hub.OriginLevel:
			fmt.Fprintf(w, "level: %s\n", snap.LevelText)
		case hub.OriginSummary:
			WriteSummary(w, snap.Summary)
		}
	}
}
