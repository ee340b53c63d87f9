package ui

import (
	"fmt"
	"io"
	"strings"

	pkgtypes "github.com/vietdv277/awsprof/pkg/types"
)

const detailLabelWidth = 18

// PrintProfileTable prints profiles in a styled table
func PrintProfileTable(w io.Writer, profiles []pkgtypes.AWSProfile, activeProfile string) {
	headers := []string{"", "Name", "Type", "Region", "Status"}

	// Calculate name column width
	nameWidth := len(headers[1])
	for _, p := range profiles {
		if len(p.Name) > nameWidth {
			nameWidth = len(p.Name)
		}
	}

	colWidths := []int{1, nameWidth, 17, 16, 12}

	var sb strings.Builder

	sb.WriteString(borderLine(colWidths, TopLeft, TopT, TopRight))

	// Header row
	sb.WriteString(BorderStyle.Render(Vertical))
	for i, h := range headers {
		cell := " " + padRight(h, colWidths[i]) + " "
		sb.WriteString(HeaderStyle.Render(cell))
		sb.WriteString(BorderStyle.Render(Vertical))
	}
	sb.WriteString("\n")

	sb.WriteString(borderLine(colWidths, LeftT, Cross, RightT))

	// Data rows
	for _, profile := range profiles {
		active := profile.Name == activeProfile
		sb.WriteString(BorderStyle.Render(Vertical))

		// Active indicator
		activeCell := " "
		if active {
			activeCell = ActiveMark
		}
		sb.WriteString(ValidStyle.Render(" " + padRight(activeCell, colWidths[0]) + " "))
		sb.WriteString(BorderStyle.Render(Vertical))

		// Name
		cell := " " + padRight(profile.Name, colWidths[1]) + " "
		if active {
			sb.WriteString(ValidStyle.Render(cell))
		} else {
			sb.WriteString(NameStyle.Render(cell))
		}
		sb.WriteString(BorderStyle.Render(Vertical))

		// Type
		cell = " " + padRight(profile.Type.String(), colWidths[2]) + " "
		sb.WriteString(TypeStyle.Render(cell))
		sb.WriteString(BorderStyle.Render(Vertical))

		// Region
		cell = " " + padRight(formatOptional(profile.Region), colWidths[3]) + " "
		sb.WriteString(MutedStyle.Render(cell))
		sb.WriteString(BorderStyle.Render(Vertical))

		// Status
		status, style := statusText(profile)
		cell = " " + padRight(status, colWidths[4]) + " "
		sb.WriteString(style.Render(cell))
		sb.WriteString(BorderStyle.Render(Vertical))

		sb.WriteString("\n")
	}

	sb.WriteString(borderLine(colWidths, BottomLeft, BottomT, BottomRight))

	fmt.Fprint(w, sb.String())
	fmt.Fprintln(w, summaryLine(profiles))
}

func borderLine(colWidths []int, left, join, right string) string {
	var sb strings.Builder
	sb.WriteString(BorderStyle.Render(left))
	for i, w := range colWidths {
		sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, w+2)))
		if i < len(colWidths)-1 {
			sb.WriteString(BorderStyle.Render(join))
		}
	}
	sb.WriteString(BorderStyle.Render(right))
	sb.WriteString("\n")
	return sb.String()
}

func summaryLine(profiles []pkgtypes.AWSProfile) string {
	valid := 0
	for _, p := range profiles {
		if p.IsValid {
			valid++
		}
	}
	invalid := len(profiles) - valid

	summary := fmt.Sprintf("  %d profiles", len(profiles))
	if len(profiles) == 0 {
		return summary
	}

	parts := []string{ValidStyle.Render(fmt.Sprintf("%d valid", valid))}
	if invalid > 0 {
		parts = append(parts, InvalidStyle.Render(fmt.Sprintf("%d invalid", invalid)))
	}
	return summary + " (" + strings.Join(parts, ", ") + ")"
}

// PrintProfileIssues prints the message of every profile that is invalid or could not be verified
func PrintProfileIssues(w io.Writer, profiles []pkgtypes.AWSProfile) {
	for _, p := range profiles {
		if p.ErrorMessage == "" {
			continue
		}
		status, style := statusText(p)
		fmt.Fprintf(w, "%s %s\n", style.Render(padRight(status, 12)), NameStyle.Render(p.Name))
		fmt.Fprintf(w, "    %s\n", MutedStyle.Render(p.ErrorMessage))
	}
}

// PrintProfileDetail prints every recorded field of a profile
func PrintProfileDetail(w io.Writer, p pkgtypes.AWSProfile, activeProfile string) {
	title := p.Name
	if p.Name == activeProfile {
		title += " " + ActiveMark
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, HeaderStyle.Render("AWS Profile: "+title))
	fmt.Fprintln(w, MutedStyle.Render(strings.Repeat(Horizontal, 40)))

	status, style := statusText(p)
	rows := []struct {
		label string
		value string
	}{
		{"Type", TypeStyle.Render(p.Type.String())},
		{"Status", style.Render(status)},
		{"Region", formatOptional(p.Region)},
		{"Static credentials", fmt.Sprintf("%t", p.HasStaticCredentials)},
	}

	optional := []struct {
		label string
		value string
	}{
		{"Role ARN", p.RoleARN},
		{"Source profile", p.SourceProfile},
		{"Credential source", p.CredentialSource},
		{"External ID", p.ExternalID},
		{"MFA serial", p.MFASerial},
		{"Role session name", p.RoleSessionName},
		{"SSO session", p.SSOSession},
		{"SSO start URL", p.SSOStartURL},
		{"SSO region", p.SSORegion},
		{"SSO account ID", p.SSOAccountID},
		{"SSO role name", p.SSORoleName},
	}
	for _, row := range optional {
		if row.value != "" {
			rows = append(rows, row)
		}
	}

	for _, row := range rows {
		fmt.Fprintf(w, "  %s %s\n", MutedStyle.Render(padRight(row.label+":", detailLabelWidth)), row.value)
	}

	if p.ErrorMessage != "" {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  %s\n", style.Render(p.ErrorMessage))
	}
}
