package cmd

import (
	"context"
	"fmt"

	"github.com/malbuddy/malbuddy/dataset"
	"github.com/malbuddy/malbuddy/icon"
	"github.com/malbuddy/malbuddy/key"
	"github.com/malbuddy/malbuddy/mal"
	"github.com/malbuddy/malbuddy/scraper"
	"github.com/malbuddy/malbuddy/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// combinedTitle names the file holding item ratings of every scraped anime.
const combinedTitle = "all_ratings"

// addScrapeFlags registers the flags shared by the scrape commands.
func addScrapeFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("id", "i", 0, "Anime id. Resolved from the title through the API when omitted")
	cmd.Flags().IntP("pages", "p", 0, fmt.Sprintf("Number of statistics pages to scrape, at most %d (default from %s)", scraper.MaxPages, key.ScrapePages))
	cmd.Flags().BoolP("append", "a", true, "Merge into an existing dataset instead of overwriting it")
	cmd.Flags().StringP("folder", "f", "", "Dataset folder (default from config)")
}

type scrapeArgs struct {
	title  string
	id     int
	pages  int
	append bool
	folder string
}

func parseScrapeArgs(cmd *cobra.Command, args []string, defaultFolder func() string) scrapeArgs {
	a := scrapeArgs{
		title:  args[0],
		id:     lo.Must(cmd.Flags().GetInt("id")),
		pages:  lo.Must(cmd.Flags().GetInt("pages")),
		append: viper.GetBool(key.DatasetAppend),
		folder: lo.Must(cmd.Flags().GetString("folder")),
	}

	if cmd.Flags().Changed("append") {
		a.append = lo.Must(cmd.Flags().GetBool("append"))
	}
	if !cmd.Flags().Changed("pages") {
		a.pages = viper.GetInt(key.ScrapePages)
	}
	if a.folder == "" {
		a.folder = defaultFolder()
	}

	if a.id == 0 {
		client, err := newAPIClient()
		handleErr(err)

		a.id, err = resolveID(cmd.Context(), client, a.title)
		handleErr(err)
	}

	return a
}

type titleFinder interface {
	FindClosest(ctx context.Context, title string) (mal.Anime, error)
}

// resolveID looks the title up through the API. Numeric titles are titles too; ids go through --id.
func resolveID(ctx context.Context, finder titleFinder, title string) (int, error) {
	anime, err := finder.FindClosest(ctx, title)
	if err != nil {
		return 0, err
	}

	fmt.Printf("%s Using %s (%d)\n", icon.Get(icon.Mark), anime.Title, anime.ID)
	return anime.ID, nil
}

// progress prints an erasable page counter. done clears it.
func progress(total int) (onPage func(int), done func()) {
	erase := func() {}
	onPage = func(page int) {
		erase()
		erase = util.PrintErasable(fmt.Sprintf("%s Loaded page %d/%d", icon.Get(icon.Progress), page+1, total))
	}
	done = func() { erase() }
	return onPage, done
}

func saveDataset[T any](kind dataset.Kind[T], records []T, folder, title string, appendExisting bool) {
	path, err := kind.Path(folder, title)
	handleErr(err)

	written, err := kind.Save(records, path, appendExisting)
	handleErr(err)

	success("%s saved to %s", util.Quantify(len(written), "record", "records"), path)
}
