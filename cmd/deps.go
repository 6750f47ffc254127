package cmd

import (
	"github.com/malbuddy/malbuddy/dataset"
	"github.com/malbuddy/malbuddy/key"
	"github.com/malbuddy/malbuddy/mal"
	"github.com/malbuddy/malbuddy/network"
	"github.com/malbuddy/malbuddy/scraper"
	"github.com/malbuddy/malbuddy/where"
	"github.com/spf13/viper"
)

func newTokenManager() (*mal.TokenManager, mal.TokenStore, error) {
	creds, err := mal.LoadCredentials(where.ClientFile())
	if err != nil {
		return nil, nil, err
	}

	store, err := mal.NewStore(viper.GetString(key.AuthStore), where.TokenFile())
	if err != nil {
		return nil, nil, err
	}

	tokens := mal.NewTokenManager(creds, store, mal.TokenOptions{
		OAuthURL:         viper.GetString(key.AuthOAuthURL),
		PersistRefreshed: viper.GetBool(key.AuthPersistRefreshed),
	})
	return tokens, store, nil
}

func newClient(tokens mal.Tokens) *mal.Client {
	return mal.NewClient(tokens, mal.ClientOptions{
		BaseURL: viper.GetString(key.APIBaseURL),
		NoCache: !viper.GetBool(key.APICache),
	})
}

func newAPIClient() (*mal.Client, error) {
	tokens, _, err := newTokenManager()
	if err != nil {
		return nil, err
	}
	return newClient(tokens), nil
}

func newBuilder() (*dataset.Builder, error) {
	http, err := network.NewScrapeClient(viper.GetString(key.ScrapeTransport))
	if err != nil {
		return nil, err
	}

	fetcher := scraper.NewFetcher(scraper.Options{
		BaseURL: viper.GetString(key.ScrapeBaseURL),
		HTTP:    http,
	})
	return dataset.NewBuilder(fetcher), nil
}
