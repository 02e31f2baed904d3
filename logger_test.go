package qstab

import (
	"testing"

	"github.com/charmbracelet/log"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewLogger(t *testing.T) {
	Convey("Given level names", t, func() {
		So(NewLogger("debug").GetLevel(), ShouldEqual, log.DebugLevel)
		So(NewLogger("error").GetLevel(), ShouldEqual, log.ErrorLevel)

		Convey("Then an unknown level falls back to info", func() {
			So(NewLogger("loud").GetLevel(), ShouldEqual, log.InfoLevel)
		})
	})
}
