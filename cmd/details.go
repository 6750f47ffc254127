package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/malbuddy/malbuddy/color"
	"github.com/malbuddy/malbuddy/dataset"
	"github.com/malbuddy/malbuddy/icon"
	"github.com/malbuddy/malbuddy/key"
	"github.com/malbuddy/malbuddy/mal"
	"github.com/malbuddy/malbuddy/style"
	"github.com/malbuddy/malbuddy/util"
	"github.com/malbuddy/malbuddy/where"
	"github.com/muesli/reflow/wordwrap"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(detailsCmd)
	detailsCmd.Flags().StringP("save", "s", "", "Store the details under this dataset name")
	detailsCmd.Flags().BoolP("quiet", "q", false, "Do not print the details")
}

var detailsCmd = &cobra.Command{
	Use:   "details <id>...",
	Short: "Fetch anime metadata by id",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ids := lo.Map(args, func(arg string, _ int) int {
			id, err := strconv.Atoi(arg)
			if err != nil {
				handleErr(fmt.Errorf("invalid anime id %q", arg))
			}
			return id
		})

		client, err := newAPIClient()
		handleErr(err)

		details, err := client.Details(cmd.Context(), ids)
		var batch *mal.BatchError
		if err != nil && !errors.As(err, &batch) {
			handleErr(err)
		}

		if !lo.Must(cmd.Flags().GetBool("quiet")) {
			printDetails(details)
		}

		if batch != nil {
			fmt.Printf("%s %s\n", style.Fg(color.Yellow)(icon.Get(icon.Fail)), batch.Error())
		}

		if name := lo.Must(cmd.Flags().GetString("save")); name != "" {
			saveDataset(dataset.Details, details, where.Details(), name, viper.GetBool(key.DatasetAppend))
		}
	},
}

func printDetails(details []mal.AnimeDetail) {
	width, _, err := util.TerminalSize()
	if err != nil || width <= 0 {
		width = 80
	}

	for i, d := range details {
		fmt.Printf("%s %s\n", style.Fg(color.Purple)(strconv.Itoa(d.ID)), style.Bold(d.Title))

		aired := lo.Ternary(d.EndDate == "", d.StartDate, d.StartDate+" to "+d.EndDate)
		if aired != "" {
			fmt.Printf("  %s %s\n", style.Faint("Aired"), aired)
		}

		if len(d.Genres) > 0 {
			genres := wordwrap.String(strings.Join(d.Genres, ", "), util.Max(width-10, 20))
			fmt.Printf("  %s %s\n", style.Faint("Genres"), strings.ReplaceAll(genres, "\n", "\n         "))
		}

		if i < len(details)-1 {
			fmt.Println()
		}
	}
}
