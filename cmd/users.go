package cmd

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/malbuddy/malbuddy/dataset"
	"github.com/malbuddy/malbuddy/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(usersCmd)
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Scrape and inspect the users listed for an anime",
}

func init() {
	usersCmd.AddCommand(usersScrapeCmd)
	addScrapeFlags(usersScrapeCmd)
}

var usersScrapeCmd = &cobra.Command{
	Use:   "scrape <title>",
	Short: "Scrape the users who recently updated an anime and store them",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := parseScrapeArgs(cmd, args, where.Users)

		builder, err := newBuilder()
		handleErr(err)

		onPage, done := progress(a.pages)
		builder.OnPage = onPage

		users, err := builder.Users(cmd.Context(), a.id, a.pages)
		done()
		handleErr(err)

		saveDataset(dataset.Users, users, a.folder, a.title, a.append)
	},
}

func init() {
	usersCmd.AddCommand(usersShowCmd)
	usersShowCmd.Flags().IntP("limit", "l", 20, "Rows to print, 0 for all")
	usersShowCmd.Flags().StringP("folder", "f", "", "Dataset folder (default from config)")
}

var usersShowCmd = &cobra.Command{
	Use:   "show <title>",
	Short: "Print a stored users dataset",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		folder := lo.Must(cmd.Flags().GetString("folder"))
		if folder == "" {
			folder = where.Users()
		}

		users, err := dataset.Users.Load(folder, args[0])
		handleErr(err)

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"#", "User"})
		for i, u := range limitRows(users, lo.Must(cmd.Flags().GetInt("limit"))) {
			t.AppendRow(table.Row{i, u.User})
		}
		t.AppendFooter(table.Row{"", len(users)})
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
