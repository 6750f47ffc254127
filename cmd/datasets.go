package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/malbuddy/malbuddy/color"
	"github.com/malbuddy/malbuddy/dataset"
	"github.com/malbuddy/malbuddy/icon"
	"github.com/malbuddy/malbuddy/style"
	"github.com/malbuddy/malbuddy/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// kindFolders maps each dataset kind to the folder it is stored in.
var kindFolders = map[string]func() string{
	dataset.Ratings.Name:     where.Ratings,
	dataset.Users.Name:       where.Users,
	dataset.ItemRatings.Name: where.ItemRatings,
	dataset.Lists.Name:       where.Lists,
	dataset.Details.Name:     where.Details,
}

func completionKinds(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return dataset.KindNames(), cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.AddCommand(datasetsCmd)
	datasetsCmd.Flags().StringP("kind", "k", dataset.Ratings.Name, "Dataset kind to list")
	_ = datasetsCmd.RegisterFlagCompletionFunc("kind", completionKinds)
}

var datasetsCmd = &cobra.Command{
	Use:   "datasets [filter]",
	Short: "List stored datasets, optionally fuzzy-filtered",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		kind := lo.Must(cmd.Flags().GetString("kind"))
		folder, ok := kindFolders[kind]
		if !ok {
			handleErr(fmt.Errorf("unknown dataset kind %q", kind))
		}

		names, err := dataset.List(folder(), lo.FirstOr(args, ""))
		handleErr(err)

		if len(names) == 0 {
			fmt.Printf("%s No %s datasets found\n", icon.Get(icon.Question), kind)
			return
		}

		for _, name := range names {
			fmt.Printf("%s %s\n", style.Fg(color.Yellow)(icon.Get(icon.Folder)), name)
		}
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

var schemaCmd = &cobra.Command{
	Use:               "schema <kind>",
	Short:             "Print the JSON schema of a dataset kind",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionKinds,
	Run: func(cmd *cobra.Command, args []string) {
		var schema any
		switch args[0] {
		case dataset.Ratings.Name:
			schema = dataset.Ratings.Schema()
		case dataset.Users.Name:
			schema = dataset.Users.Schema()
		case dataset.ItemRatings.Name:
			schema = dataset.ItemRatings.Schema()
		case dataset.Lists.Name:
			schema = dataset.Lists.Schema()
		case dataset.Details.Name:
			schema = dataset.Details.Schema()
		default:
			handleErr(fmt.Errorf("unknown dataset kind %q", args[0]))
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(schema))
	},
}
