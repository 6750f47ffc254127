package version

import (
	"context"
	"fmt"
	"time"

	"github.com/malbuddy/malbuddy/color"
	"github.com/malbuddy/malbuddy/constant"
	"github.com/malbuddy/malbuddy/icon"
	"github.com/malbuddy/malbuddy/key"
	"github.com/malbuddy/malbuddy/log"
	"github.com/malbuddy/malbuddy/style"
	"github.com/malbuddy/malbuddy/util"
	"github.com/spf13/viper"
)

// Notify prints a notice when a newer release than the running one exists.
func Notify(ctx context.Context) {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	latest, err := Latest(ctx)
	erase()
	if err != nil {
		log.Warnf("version check: %s", err)
		return
	}

	if comp, err := Compare(latest, constant.Version); err != nil || comp <= 0 {
		return
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint(constant.Repository+"/releases/tag/v"+latest),
	)
}
