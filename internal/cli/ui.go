package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/keebtools/grinarray/pkg/layout"
	"github.com/keebtools/grinarray/pkg/spacing"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleCommand     = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(14)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}

// =============================================================================
// Layout Summary
// =============================================================================

// printLayoutSummary prints the per-row section table of a laid-out array.
func printLayoutSummary(arr *layout.Array) {
	cfg := arr.Config()

	fmt.Println(StyleTitle.Render("Grin array layout"))
	printKeyValue("keys", fmt.Sprintf("%d", len(arr.Footprints())))
	printKeyValue("rows", fmt.Sprintf("%d", arr.Rows()))
	printKeyValue("base radius", fmt.Sprintf("%.1f mm", cfg.BaseRadius))
	printKeyValue("pitch", fmt.Sprintf("%.2f mm", cfg.BasePitch))
	if cfg.Arcs != nil {
		printKeyValue("arc mode", "three-center")
	} else {
		printKeyValue("arc mode", "single-center")
	}
	printNewline()

	for r, sections := range arr.Sections() {
		line := fmt.Sprintf("row %d  r=%.1f ", r, arr.RowRadius(r))
		for i, sec := range sections {
			if i > 0 {
				line += StyleDim.Render(" · ")
			}
			line += fmt.Sprintf("%s(%d)", sec.Type, len(sec.Cols))
		}
		printDetail("%s", line)
	}
}

// =============================================================================
// Spacing Summary
// =============================================================================

// printSpacingSummary prints the evaluation result, most severe first.
func printSpacingSummary(sum spacing.Summary) {
	fmt.Println(StyleTitle.Render("Spacing evaluation"))
	printKeyValue("pairs", fmt.Sprintf("%d", len(sum.Pairs)))
	printKeyValue("threshold", fmt.Sprintf("%.2f mm", sum.Threshold))

	if len(sum.Interferences) > 0 {
		printWarning("%d interfering pairs", len(sum.Interferences))
		for _, p := range sum.Interferences {
			printDetail("%v ↔ %v penetration %.3f mm", p.A, p.B, p.Penetration)
		}
	} else {
		printSuccess("no interference")
	}

	if len(sum.SmallGaps) > 0 {
		printWarning("%d pairs under the gap threshold", len(sum.SmallGaps))
		for _, p := range sum.SmallGaps {
			printDetail("%v ↔ %v gap %.3f mm", p.A, p.B, p.Gap)
		}
	}

	if sum.Min != nil {
		printKeyValue("min gap", fmt.Sprintf("%.3f mm (%v ↔ %v)",
			sum.Min.Gap, sum.Min.Pair.A, sum.Min.Pair.B))
	}
}
