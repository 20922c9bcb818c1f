package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var issueTypesCmd = &cobra.Command{
	Use:   "issue-types",
	Short: "List the issue types in the knowledge base",
	RunE:  runIssueTypes,
}

func runIssueTypes(cmd *cobra.Command, _ []string) error {
	s, err := openService(cmd.Context())
	if err != nil {
		return err
	}

	types, kb := s.IssueTypes()
	out := cmd.OutOrStdout()
	for _, t := range types {
		fmt.Fprintln(out, t)
	}
	fmt.Fprintf(out, "\n%d issue types from %s\n", len(types), kb.Meta().Name)
	return nil
}
