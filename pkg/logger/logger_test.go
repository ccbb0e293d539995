package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given an initialized logger", t, func() {
		So(Init(), ShouldBeNil)
		defer func() { _ = Sync() }()

		Convey("Then Get returns it", func() {
			So(Get(), ShouldNotBeNil)
		})

		Convey("Then a nil writer is rejected", func() {
			So(InitWithWriter(nil), ShouldNotBeNil)
		})
	})
}

func TestLoggerOutput(t *testing.T) {
	Convey("Given a logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(InitWithWriter(&buf), ShouldBeNil)
		ctx := context.Background()

		Convey("When logging with fields", func() {
			Get().Info(ctx, "vote recorded", String("choice", "left"), Int("decided", 3), Error(errors.New("boom")))

			Convey("Then the message, fields and source are written", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "vote recorded")
				So(out, ShouldContainSubstring, "choice=left")
				So(out, ShouldContainSubstring, "decided=3")
				So(out, ShouldContainSubstring, "error=boom")
				So(out, ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When using a named logger with bound fields", func() {
			Named("service").With(String("session", "s1")).Warn(ctx, "stale pair")

			Convey("Then the component and bound fields appear", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "component=service")
				So(out, ShouldContainSubstring, "session=s1")
			})
		})

		Convey("When the level is raised to error", func() {
			So(SetLevelString("error"), ShouldBeNil)
			defer func() { _ = SetLevelString("info") }()
			Get().Info(ctx, "hidden")
			Get().Debug(ctx, "hidden too")

			Convey("Then lower levels are dropped", func() {
				So(buf.String(), ShouldNotContainSubstring, "hidden")
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level names", t, func() {
		Convey("Then known names are accepted", func() {
			for _, lvl := range []string{"debug", "INFO", "", "warn", "warning", "error"} {
				So(SetLevelString(lvl), ShouldBeNil)
			}
			_ = SetLevelString("info")
		})

		Convey("Then unknown names fail", func() {
			So(SetLevelString("verbose"), ShouldNotBeNil)
		})
	})
}
