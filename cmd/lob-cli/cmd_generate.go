package main

import (
	"fmt"

	"lob-summary/internal/models"

	"github.com/spf13/cobra"
)

var generateFlags struct {
	issue  string
	voc    string
	stock  string
	follow string
	dp     string
	tier   string
	debug  bool
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render a LOB summary for one customer statement",
	RunE:  runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&generateFlags.issue, "issue", "", "Issue type, e.g. 'Ordered by Mistake'")
	f.StringVar(&generateFlags.voc, "voc", "", "Customer statement / VOC (required)")
	f.StringVar(&generateFlags.stock, "stock", "", "Stock/slot availability, Yes or No (required)")
	f.StringVar(&generateFlags.follow, "follow", "", "Follow-up date, e.g. 2025-06-25")
	f.StringVar(&generateFlags.dp, "dp", "", "DP/SM call value (default NA)")
	f.StringVar(&generateFlags.tier, "tier", "", "Customer tier column to resolve against")
	f.BoolVar(&generateFlags.debug, "show-match", false, "Print the classification match after the summary")

	_ = generateCmd.MarkFlagRequired("voc")
	_ = generateCmd.MarkFlagRequired("stock")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	s, err := openService(cmd.Context())
	if err != nil {
		return err
	}

	result, err := s.Generate(models.GenerationRequest{
		IssueType:      generateFlags.issue,
		VOC:            generateFlags.voc,
		StockAvailable: generateFlags.stock,
		FollowUpDate:   generateFlags.follow,
		DPSMCall:       generateFlags.dp,
		Tier:           models.Tier(generateFlags.tier),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, result.Summary)
	if generateFlags.debug {
		fmt.Fprintf(out, "\nMatched: %s (score %d)\n", orDash(result.MatchedIssueType), result.Match.Score)
		if result.Match.Example != "" {
			fmt.Fprintf(out, "Example: %s\n", result.Match.Example)
		}
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
