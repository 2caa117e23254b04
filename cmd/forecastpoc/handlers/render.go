package handlers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/apac-ml-tfc/forecast-poc/internal/config"
	"github.com/apac-ml-tfc/forecast-poc/internal/platform/cloudformation"
	"github.com/apac-ml-tfc/forecast-poc/internal/provisioning"
)

var (
	colorGreen  = lipgloss.Color("#22c55e")
	colorRed    = lipgloss.Color("#ef4444")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorYellow = lipgloss.Color("#eab308")
	colorDim    = lipgloss.Color("#6b7280")
	colorWhite  = lipgloss.Color("#f9fafb")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	greenStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	redStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	yellowStyle = lipgloss.NewStyle().
			Foreground(colorYellow)
)

// renderDeploySummary produces a styled summary after a successful deploy.
func renderDeploySummary(cfg *config.Config, state *provisioning.State) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("  forecastpoc deploy: %s", cfg.StackName)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("═", 30)))
	b.WriteString("\n\n")

	switch state.Operation {
	case cloudformation.OpUnchanged:
		b.WriteString(dimStyle.Render("  Environment already up to date; nothing to do."))
		b.WriteString("\n")
	case cloudformation.OpCreated:
		b.WriteString(greenStyle.Render("  Environment created."))
		b.WriteString("\n")
	case cloudformation.OpUpdated:
		b.WriteString(greenStyle.Render("  Environment updated."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("  Environment"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 35)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "    Region:    %s\n", cfg.Region)
	if state.NotebookName != "" {
		fmt.Fprintf(&b, "    Notebook:  %s\n", state.NotebookName)
	}
	if state.DomainID != "" {
		fmt.Fprintf(&b, "    Domain:    %s\n", state.DomainID)
	}
	if state.RoleArn != "" {
		fmt.Fprintf(&b, "    Role:      %s\n", state.RoleArn)
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("  Next Steps"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 35)))
	b.WriteString("\n")
	if state.DomainID != "" {
		b.WriteString("    1. Open the Studio domain in the SageMaker console\n")
		b.WriteString("       and create a user profile\n")
		b.WriteString("    2. Clone the POC repository and start with\n")
		b.WriteString("       1-Getting-Data-Ready.ipynb\n")
	} else {
		b.WriteString("    1. Wait for the notebook to come up:\n")
		b.WriteString("         forecastpoc status\n")
		b.WriteString("    2. Open the notebook in the SageMaker console and\n")
		b.WriteString("       start with 1-Getting-Data-Ready.ipynb\n")
	}
	b.WriteString("\n")

	return b.String()
}

// renderStatus produces a styled status report for interactive terminals.
func renderStatus(status *EnvironmentStatus) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("  forecastpoc status: %s", status.StackName)))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  (%s)", status.Region)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("═", 30)))
	b.WriteString("\n\n")

	if !status.Deployed {
		b.WriteString(dimStyle.Render("  Not deployed."))
		b.WriteString("\n\n")
		b.WriteString("  Run 'forecastpoc deploy' to create the environment.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "  %s  Stack %s\n", stackIndicator(status.StackStatus), status.StackStatus)
	if status.RoleArn != "" {
		fmt.Fprintf(&b, "      Role: %s\n", status.RoleArn)
	}

	if nb := status.Notebook; nb != nil {
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s  Notebook %s: %s\n", notebookIndicator(nb.Status), nb.Name, renderNotebookStatus(nb.Status))
		if nb.InstanceType != "" {
			fmt.Fprintf(&b, "      Instance: %s, %d GB\n", nb.InstanceType, nb.VolumeSizeGB)
		}
		if nb.URL != "" {
			fmt.Fprintf(&b, "      URL: https://%s\n", nb.URL)
		}
		if nb.FailureReason != "" {
			b.WriteString(redStyle.Render(fmt.Sprintf("      Failure: %s", nb.FailureReason)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	return b.String()
}

func stackIndicator(status string) string {
	switch {
	case strings.HasSuffix(status, "_COMPLETE") && !strings.Contains(status, "ROLLBACK"):
		return "✅" // green check
	case strings.Contains(status, "IN_PROGRESS"):
		return "⏳" // hourglass
	default:
		return "❌" // red X
	}
}

func notebookIndicator(status string) string {
	switch status {
	case "InService":
		return "✅"
	case "Pending", "Updating":
		return "⏳"
	case "Failed", "Unknown":
		return "❌"
	default:
		return "❓"
	}
}

func renderNotebookStatus(status string) string {
	switch status {
	case "InService":
		return greenStyle.Render(status)
	case "Failed":
		return redStyle.Render(status)
	case "Pending", "Updating":
		return yellowStyle.Render(status)
	default:
		return status
	}
}
