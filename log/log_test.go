package log

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/malbuddy/malbuddy/filesystem"
	"github.com/malbuddy/malbuddy/key"
	"github.com/malbuddy/malbuddy/where"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)
		So(Setup(), ShouldBeNil)
		So(Enabled(), ShouldBeFalse)

		Convey("Entries are discarded without panicking", func() {
			So(func() { With(Fields{"anime": 1}).Warn("ignored") }, ShouldNotPanic)
		})
	})

	Convey("Given logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "debug")
		Reset(func() {
			viper.Set(key.LogsWrite, false)
			enabled = false
		})

		So(Setup(), ShouldBeNil)
		So(Enabled(), ShouldBeTrue)

		Convey("A dated log file is created", func() {
			path := filepath.Join(where.Logs(), time.Now().Format("2006-01-02")+".log")
			So(lo.Must(filesystem.API().Exists(path)), ShouldBeTrue)
		})
	})
}
