package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <issue type>",
	Short: "Show what the knowledge base holds for an issue type",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	s, err := openService(cmd.Context())
	if err != nil {
		return err
	}

	result := s.Validate(strings.Join(args, " "))
	out := cmd.OutOrStdout()
	if !result.Exists {
		fmt.Fprintf(out, "Issue type %q not found. Known issue types:\n", result.IssueType)
		for _, name := range result.Suggestions {
			fmt.Fprintf(out, "  %s\n", name)
		}
		return fmt.Errorf("unknown issue type %q", result.IssueType)
	}

	fmt.Fprintf(out, "Issue type: %s\n", result.IssueType)
	if len(result.VOCExamples) > 0 {
		fmt.Fprintf(out, "VOC examples:\n")
		for _, ex := range result.VOCExamples {
			fmt.Fprintf(out, "  - %s\n", ex)
		}
	}
	rec, _ := s.Snapshot().Record(result.IssueType)
	if len(rec.Resolutions) > 0 {
		fmt.Fprintf(out, "Resolutions:\n")
		for _, res := range rec.Resolutions {
			fmt.Fprintf(out, "  %s: %s\n", res.Tier, res.Text)
		}
	}
	if result.SOPDetails != "" {
		fmt.Fprintf(out, "SOP:\n%s\n", result.SOPDetails)
	}
	return nil
}
