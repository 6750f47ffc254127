package main

import (
	"github.com/malbuddy/malbuddy/cmd"
	"github.com/malbuddy/malbuddy/config"
	"github.com/malbuddy/malbuddy/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())
	cmd.Execute()
}
