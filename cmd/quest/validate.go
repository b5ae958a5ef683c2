package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"portfolioquest/internal/config"
	"portfolioquest/internal/content"
	"portfolioquest/internal/nav"
)

var errInvalid = errors.New("navigation document has errors")

func validateCmd(cfg *config.Config) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "validate [navigation-file]",
		Short: "Check a navigation document against the content document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfg.NavigationFile
			if len(args) == 1 {
				path = args[0]
			}
			report := buildReport(path, cfg.ContentFile, cfg.Telescope.Trigger)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				printReport(cmd.OutOrStdout(), report)
			}
			if !report.Valid {
				return errInvalid
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

func buildReport(navPath, contentPath, trigger string) *nav.Report {
	g, err := nav.Load(navPath, zerolog.Nop())
	if err != nil {
		return nav.ReportLoadError(err)
	}
	lib, err := content.Load(contentPath)
	if err != nil {
		report := nav.Check(g, nil)
		report.AddWarning("content", fmt.Sprintf("content ids not checked: %v", err))
		return report
	}
	return nav.Check(g, lib, trigger)
}

var (
	styleHeading = lipgloss.NewStyle().Bold(true)
	styleError   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleOK      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
)

func printReport(w io.Writer, r *nav.Report) {
	section := func(title string, style lipgloss.Style, findings []nav.Finding) {
		if len(findings) == 0 {
			return
		}
		fmt.Fprintln(w, styleHeading.Render(fmt.Sprintf("%s (%d):", title, len(findings))))
		for _, f := range findings {
			fmt.Fprintf(w, "  %s %s\n", style.Render("["+string(f.Severity)+"]"), f.Message)
			if f.Path != "" {
				fmt.Fprintf(w, "    -> %s\n", f.Path)
			}
		}
		fmt.Fprintln(w)
	}
	section("ERRORS", styleError, r.Errors)
	section("WARNINGS", styleWarning, r.Warnings)
	section("INFO", styleInfo, r.Info)

	if r.Valid {
		fmt.Fprintln(w, styleOK.Render("valid")+" · "+r.Summary())
		return
	}
	fmt.Fprintln(w, styleError.Render("invalid")+" · "+r.Summary())
}
