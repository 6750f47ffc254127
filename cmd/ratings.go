package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/malbuddy/malbuddy/dataset"
	"github.com/malbuddy/malbuddy/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(ratingsCmd)
}

var ratingsCmd = &cobra.Command{
	Use:   "ratings",
	Short: "Scrape and inspect per-anime user ratings",
}

func init() {
	ratingsCmd.AddCommand(ratingsScrapeCmd)
	addScrapeFlags(ratingsScrapeCmd)
	ratingsScrapeCmd.Flags().BoolP("combined", "c", false, "Also merge the ratings into the cross-anime dataset")
}

var ratingsScrapeCmd = &cobra.Command{
	Use:   "scrape <title>",
	Short: "Scrape the latest user scores of an anime and store them",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := parseScrapeArgs(cmd, args, where.Ratings)

		builder, err := newBuilder()
		handleErr(err)

		onPage, done := progress(a.pages)
		builder.OnPage = onPage

		ratings, err := builder.Ratings(cmd.Context(), a.id, a.pages)
		done()
		handleErr(err)

		saveDataset(dataset.Ratings, ratings, a.folder, a.title, a.append)

		if lo.Must(cmd.Flags().GetBool("combined")) {
			saveDataset(dataset.ItemRatings, dataset.StampRatings(a.id, ratings), where.ItemRatings(), combinedTitle, true)
		}
	},
}

func init() {
	ratingsCmd.AddCommand(ratingsShowCmd)
	ratingsShowCmd.Flags().IntP("limit", "l", 20, "Rows to print, 0 for all")
	ratingsShowCmd.Flags().StringP("folder", "f", "", "Dataset folder (default from config)")
}

var ratingsShowCmd = &cobra.Command{
	Use:   "show <title>",
	Short: "Print a stored ratings dataset",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		folder := lo.Must(cmd.Flags().GetString("folder"))
		if folder == "" {
			folder = where.Ratings()
		}

		ratings, err := dataset.Ratings.Load(folder, args[0])
		handleErr(err)

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"#", "User", "Rating"})
		for i, r := range limitRows(ratings, lo.Must(cmd.Flags().GetInt("limit"))) {
			t.AppendRow(table.Row{i, r.User, r.Rating})
		}
		t.AppendFooter(table.Row{"", "Users", len(ratings)})
		t.AppendFooter(table.Row{"", "Mean", meanRating(ratings)})
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}

func limitRows[T any](rows []T, limit int) []T {
	if limit <= 0 || limit >= len(rows) {
		return rows
	}
	return rows[:limit]
}

func meanRating(ratings []dataset.RatingRecord) string {
	if len(ratings) == 0 {
		return "-"
	}
	sum := lo.SumBy(ratings, func(r dataset.RatingRecord) int { return r.Rating })
	return fmt.Sprintf("%.2f", float64(sum)/float64(len(ratings)))
}
