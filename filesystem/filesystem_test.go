package filesystem

import (
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestApi(t *testing.T) {
	Convey("Filesystem API", t, func() {
		Convey("Should default to OsFs", func() {
			SetOsFs()
			fs := API()
			So(fs, ShouldNotBeNil)
			So(fs.Name(), ShouldEqual, "OsFs")
		})

		Convey("Should switch to MemMapFs", func() {
			SetMemMapFs()
			fs := API()
			So(fs, ShouldNotBeNil)
			So(fs.Name(), ShouldEqual, "MemMapFS")
		})
	})
}

func TestWriteAtomic(t *testing.T) {
	Convey("Given an in-memory filesystem", t, func() {
		SetMemMapFs()
		lo.Must0(API().MkdirAll("/data", 0o755))

		Convey("When writing a file atomically", func() {
			err := WriteAtomic("/data/a.json", []byte(`{"a":1}`), 0o644)

			Convey("Then the content is in place and no temp file remains", func() {
				So(err, ShouldBeNil)
				So(string(lo.Must(API().ReadFile("/data/a.json"))), ShouldEqual, `{"a":1}`)
				So(lo.Must(API().Exists("/data/a.json.tmp")), ShouldBeFalse)
			})
		})

		Convey("When overwriting an existing file", func() {
			lo.Must0(API().WriteFile("/data/b.json", []byte("old"), 0o644))
			So(WriteAtomic("/data/b.json", []byte("new"), 0o644), ShouldBeNil)
			So(string(lo.Must(API().ReadFile("/data/b.json"))), ShouldEqual, "new")
		})
	})
}
