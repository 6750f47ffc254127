package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/malbuddy/malbuddy/color"
	"github.com/malbuddy/malbuddy/errs"
	"github.com/malbuddy/malbuddy/icon"
	"github.com/malbuddy/malbuddy/key"
	"github.com/malbuddy/malbuddy/log"
	"github.com/malbuddy/malbuddy/mal"
	"github.com/malbuddy/malbuddy/open"
	"github.com/malbuddy/malbuddy/style"
	"github.com/malbuddy/malbuddy/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(authCmd)
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the MyAnimeList OAuth token",
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authLoginCmd.Flags().Bool("no-browser", false, "Print the authorization link without opening it")
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authorize this client and store a new token",
	Long: `Open the MyAnimeList authorization page, then paste the code from the redirect address.
The client credentials are read from the file shown by "where --client".`,
	Run: func(cmd *cobra.Command, args []string) {
		tokens, _, err := newTokenManager()
		handleErr(err)

		verifier, err := mal.GenerateCodeVerifier()
		handleErr(err)

		authURL := tokens.AuthURL(verifier)
		fmt.Printf("%s Authorize here: %s\n\n", icon.Get(icon.Key), style.Fg(color.Cyan)(authURL))

		if !lo.Must(cmd.Flags().GetBool("no-browser")) {
			if err := open.Start(authURL); err != nil {
				log.Warn("open browser: " + err.Error())
			}
		}

		var response string
		input := survey.Input{
			Message: "Authorization code (or the whole redirect address)",
		}
		handleErr(survey.AskOne(&input, &response, survey.WithValidator(survey.Required)))

		token, err := tokens.Exchange(cmd.Context(), authorizationCode(response), verifier)
		handleErr(err)
		log.Infof("token exchanged, expires in %d seconds", token.ExpiresIn)

		user, err := newClient(tokens).Me(cmd.Context())
		handleErr(err)

		success("Greetings %s! Token saved", style.Fg(color.Purple)(user.Name))
	},
}

// authorizationCode accepts either the bare code or the redirect address carrying it.
func authorizationCode(response string) string {
	response = strings.TrimSpace(response)
	if !strings.Contains(response, "code=") {
		return response
	}

	if u, err := url.Parse(response); err == nil {
		if code := u.Query().Get("code"); code != "" {
			return code
		}
	}

	if values, err := url.ParseQuery(strings.TrimPrefix(response, "?")); err == nil && values.Get("code") != "" {
		return values.Get("code")
	}
	return response
}

func init() {
	authCmd.AddCommand(authRefreshCmd)
}

var authRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Renew the stored token",
	Run: func(cmd *cobra.Command, args []string) {
		tokens, store, err := newTokenManager()
		handleErr(err)

		handleErr(tokens.Refresh(cmd.Context()))
		handleErr(store.Save(tokens.Token().MustGet()))

		success("Token refreshed")
	},
}

func init() {
	authCmd.AddCommand(authStatusCmd)
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a token is stored and whom it belongs to",
	Run: func(cmd *cobra.Command, args []string) {
		tokens, store, err := newTokenManager()
		handleErr(err)

		if _, err := store.Load(); err != nil {
			if errors.Is(err, errs.ErrNoToken) {
				fmt.Printf("%s Not logged in. Run %s\n", icon.Get(icon.Question), style.Fg(color.Yellow)("auth login"))
				return
			}
			handleErr(err)
		}

		user, err := newClient(tokens).Me(cmd.Context())
		handleErr(err)

		success("Logged in as %s", style.Fg(color.Purple)(user.Name))
		if viper.GetString(key.AuthStore) != mal.StoreKeyring {
			fmt.Println(style.Faint("Token file: " + where.TokenFile()))
		}
	},
}

func init() {
	authCmd.AddCommand(authLogoutCmd)
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Delete the stored token",
	Run: func(cmd *cobra.Command, args []string) {
		_, store, err := newTokenManager()
		handleErr(err)

		handleErr(store.Delete())
		success("Token deleted")
	},
}
