// Package version reports the running build and discovers newer releases.
package version

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/malbuddy/malbuddy/constant"
	"github.com/malbuddy/malbuddy/errs"
	"github.com/malbuddy/malbuddy/filesystem"
	"github.com/malbuddy/malbuddy/network"
	"github.com/malbuddy/malbuddy/where"
	"github.com/metafates/gache"
)

var versionCacher = gache.New[string](&gache.Options{
	Path:       filepath.Join(where.Cache(), "version.json"),
	Lifetime:   time.Hour * 24 * 2,
	FileSystem: &filesystem.GacheFs{},
})

// Latest returns the newest published version without the leading "v".
// The answer is cached for two days.
func Latest(ctx context.Context) (string, error) {
	ver, expired, err := versionCacher.Get()
	if err == nil && !expired && ver != "" {
		return ver, nil
	}

	ver, err = fetchLatest(ctx, network.NewResty(nil), constant.ReleasesAPI)
	if err != nil {
		return "", err
	}

	_ = versionCacher.Set(ver)
	return ver, nil
}

func fetchLatest(ctx context.Context, client *resty.Client, url string) (string, error) {
	var release struct {
		TagName string `json:"tag_name"`
	}

	resp, err := client.R().
		SetContext(ctx).
		SetResult(&release).
		Get(url)
	if err != nil {
		return "", errs.Wrap(errs.ErrRequest, "latest release", err)
	}

	if !resp.IsSuccess() {
		return "", errs.Status("latest release", resp.StatusCode())
	}

	if release.TagName == "" {
		return "", errors.New("empty tag name")
	}

	return strings.TrimPrefix(release.TagName, "v"), nil
}
