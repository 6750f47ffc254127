package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/malbuddy/malbuddy/dataset"
	"github.com/malbuddy/malbuddy/key"
	"github.com/malbuddy/malbuddy/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().IntP("limit", "l", 0, fmt.Sprintf("Maximum entries to load (default from %s)", key.APIListLimit))
	listCmd.Flags().BoolP("save", "s", false, "Store the list in the lists folder")
	listCmd.Flags().BoolP("ratings", "r", false, "Merge the scored entries into the cross-anime ratings dataset")
	listCmd.Flags().BoolP("quiet", "q", false, "Do not print the list")
}

var listCmd = &cobra.Command{
	Use:   "list <user>",
	Short: "Fetch a user's anime list",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		user := args[0]

		limit := lo.Must(cmd.Flags().GetInt("limit"))
		if !cmd.Flags().Changed("limit") {
			limit = viper.GetInt(key.APIListLimit)
		}

		client, err := newAPIClient()
		handleErr(err)

		records, err := client.AnimeList(cmd.Context(), user, limit)
		handleErr(err)

		if !lo.Must(cmd.Flags().GetBool("quiet")) {
			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"ID", "Title", "Status", "Score", "Episodes"})
			for _, r := range records {
				t.AppendRow(table.Row{r["id"], r["title"], r["status"], r["score"], r["num_episodes_watched"]})
			}
			t.AppendFooter(table.Row{"", len(records)})
			t.SetStyle(table.StyleRounded)
			t.Render()
		}

		if lo.Must(cmd.Flags().GetBool("save")) {
			saveDataset(dataset.Lists, records, where.Lists(), user, viper.GetBool(key.DatasetAppend))
		}

		if lo.Must(cmd.Flags().GetBool("ratings")) {
			saveDataset(dataset.ItemRatings, dataset.FromList(user, records), where.ItemRatings(), combinedTitle, true)
		}
	},
}
