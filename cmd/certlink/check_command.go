package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"certlink/internal/similarity"
	"certlink/internal/textnorm"
)

// newCheckCommand builds the pairwise diagnostic: it shows every signal the
// linkage engine would compute for two names, so threshold surprises can be
// inspected without running a full reconciliation.
func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check <name-a> <name-b>",
		Short: "Explain how two names score against each other",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			stopwords := textnorm.StopwordSet(cfg.Matching.Stopwords)

			normA := textnorm.Normalize(args[0])
			normB := textnorm.Normalize(args[1])

			ratio := similarity.Ratio(normA, normB)
			isSubset, subsetScore := similarity.SubsetMatch(normA, normB, stopwords)
			overlap := similarity.TokenOverlap(normA, normB, stopwords)
			best := similarity.BestScore(normA, normB, stopwords)
			similar := similarity.NamesSimilar(normA, normB, stopwords)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Normalized A:  %s\n", normA)
			fmt.Fprintf(out, "Normalized B:  %s\n", normB)
			fmt.Fprintf(out, "Direct ratio:  %.4f\n", ratio)
			if isSubset {
				fmt.Fprintf(out, "Subset match:  yes (%.4f)\n", subsetScore)
			} else {
				fmt.Fprintln(out, "Subset match:  no")
			}
			fmt.Fprintf(out, "Token overlap: %.4f\n", overlap)
			fmt.Fprintf(out, "Best score:    %.4f\n", best)
			fmt.Fprintf(out, "Similar:       %s\n", yesNo(similar))
			return nil
		},
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
