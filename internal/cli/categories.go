package cli

import (
	"fmt"
	"text/tabwriter"

	"codequiz-service/internal/content"
	"github.com/spf13/cobra"
)

// NewCategoriesCmd lists the bundled categories.
func NewCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List quiz categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := content.MustLoad().Categories(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tDIFFICULTY\tQUESTIONS\tTIME")
			for _, c := range categories {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", c.ID, c.Name, c.Difficulty, c.QuestionsCount, c.AvgTime)
			}
			return w.Flush()
		},
	}
}
