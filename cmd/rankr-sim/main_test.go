package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/rankr/internal/adapters/http/api"
	service "github.com/okian/rankr/internal/app"
	"github.com/okian/rankr/internal/domain/catalog"
	"github.com/okian/rankr/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestRun(t *testing.T) {
	Convey("Given a rankr server", t, func() {
		svc := service.New(service.WithCatalog(catalog.MustNew([]string{"A", "B", "C", "D"})))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()
		mux := http.NewServeMux()
		api.NewServer(svc, svc).Register(context.Background(), mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		var stdout, stderr bytes.Buffer

		Convey("When simulating a few tournaments", func() {
			code := run([]string{"-url", srv.URL, "-sessions", "4", "-workers", "2", "-seed", "3", "-undo-rate", "0.2"}, &stdout, &stderr)

			Convey("Then it succeeds and logs the final statistics", func() {
				So(code, ShouldEqual, 0)
				So(stdout.String(), ShouldContainSubstring, "final statistics")
				So(stdout.String(), ShouldContainSubstring, "sessionsVerified=4")
			})
		})

		Convey("When the undo rate is out of range", func() {
			code := run([]string{"-url", srv.URL, "-undo-rate", "0.9"}, &stdout, &stderr)

			Convey("Then it fails", func() {
				So(code, ShouldEqual, 1)
				So(stderr.String(), ShouldContainSubstring, "invalid simulation config")
			})
		})
	})

	Convey("Given bad arguments", t, func() {
		var stdout, stderr bytes.Buffer

		Convey("Then an unknown flag exits with usage", func() {
			So(run([]string{"-nope"}, &stdout, &stderr), ShouldEqual, 2)
		})

		Convey("Then an unknown log level exits with usage", func() {
			So(run([]string{"-log-level", "loud"}, &stdout, &stderr), ShouldEqual, 2)
		})

		Convey("Then help exits cleanly", func() {
			So(run([]string{"-h"}, &stdout, &stderr), ShouldEqual, 0)
		})
	})
}
