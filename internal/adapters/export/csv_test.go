package export_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/rankr/internal/adapters/export"
	"github.com/okian/rankr/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

var standings = []types.Entry{
	{Rank: 1, Item: "Hades", Score: 2},
	{Rank: 2, Item: "Uncharted 4: A Thief's End", Score: 1},
	{Rank: 3, Item: "Celeste, \"the\" climb", Score: 0},
}

func fixedClock() time.Time {
	return time.Date(2026, 10, 19, 14, 30, 5, 0, time.Local)
}

func TestWriteCSV(t *testing.T) {
	Convey("Given standings", t, func() {
		var buf bytes.Buffer

		Convey("When writing them as CSV", func() {
			err := export.WriteCSV(&buf, export.DefaultHeader, standings)

			Convey("Then a header and one quoted row per item are written", func() {
				So(err, ShouldBeNil)
				So(buf.String(), ShouldEqual, strings.Join([]string{
					"Position,Item,Score",
					"1,Hades,2",
					"2,Uncharted 4: A Thief's End,1",
					`3,"Celeste, ""the"" climb",0`,
					"",
				}, "\n"))
			})
		})
	})
}

func TestCSVExporter(t *testing.T) {
	Convey("Given an exporter on a temp dir with a fixed clock", t, func() {
		dir := filepath.Join(t.TempDir(), "results")
		x := export.NewCSVExporter(
			export.WithDir(dir),
			export.WithClock(fixedClock),
			export.WithHeader("Posição", "Jogo", "Pontuação"),
		)
		ctx := context.Background()

		Convey("When exporting once", func() {
			path, err := x.Export(ctx, standings)

			Convey("Then a timestamped file is created in a fresh directory", func() {
				So(err, ShouldBeNil)
				So(path, ShouldEqual, filepath.Join(dir, "ranking_20261019_143005.csv"))
				data, err := os.ReadFile(path)
				So(err, ShouldBeNil)
				So(string(data), ShouldStartWith, "Posição,Jogo,Pontuação\n1,Hades,2\n")
			})

			Convey("And exporting again in the same second", func() {
				second, err := x.Export(ctx, standings)

				Convey("Then a new file is created instead of overwriting", func() {
					So(err, ShouldBeNil)
					So(second, ShouldNotEqual, path)
					So(filepath.Base(second), ShouldStartWith, "ranking_20261019_143005_")
					entries, _ := os.ReadDir(dir)
					So(len(entries), ShouldEqual, 2)
				})
			})
		})

		Convey("When there is nothing to export", func() {
			_, err := x.Export(ctx, nil)

			Convey("Then ErrNoStanding is returned", func() {
				So(err, ShouldEqual, export.ErrNoStanding)
			})
		})

		Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := x.Export(cctx, standings)

			Convey("Then the export fails without touching disk", func() {
				So(errors.Is(err, export.ErrExport), ShouldBeTrue)
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
				_, statErr := os.Stat(dir)
				So(os.IsNotExist(statErr), ShouldBeTrue)
			})
		})
	})

	Convey("Given an output dir that is a regular file", t, func() {
		blocker := filepath.Join(t.TempDir(), "blocker")
		So(os.WriteFile(blocker, []byte("x"), 0o600), ShouldBeNil)
		x := export.NewCSVExporter(export.WithDir(blocker))

		Convey("When exporting", func() {
			_, err := x.Export(context.Background(), standings)

			Convey("Then the I/O failure is reported as ErrExport", func() {
				So(errors.Is(err, export.ErrExport), ShouldBeTrue)
			})
		})
	})

	Convey("Given the defaults", t, func() {
		x := export.NewCSVExporter(export.WithDir(""), export.WithPrefix(""), export.WithHeader("", "", ""))

		Convey("Then empty options are ignored", func() {
			So(x.Dir(), ShouldEqual, "results")
		})
	})
}
