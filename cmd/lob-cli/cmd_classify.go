package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <text>",
	Short: "Suggest the issue type for a customer statement",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
	s, err := openService(cmd.Context())
	if err != nil {
		return err
	}

	m := s.Classify(strings.Join(args, " "))
	out := cmd.OutOrStdout()
	if !m.Found {
		fmt.Fprintln(out, "No match")
		return nil
	}
	fmt.Fprintf(out, "Issue type: %s\n", m.IssueType)
	fmt.Fprintf(out, "Score:      %d\n", m.Score)
	fmt.Fprintf(out, "Example:    %s\n", m.Example)
	return nil
}
