package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	service "github.com/okian/rankr/internal/app"
	"github.com/okian/rankr/internal/domain/model"
	"github.com/okian/rankr/internal/domain/selection"
	"github.com/okian/rankr/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should expose the built-in catalog", func() {
			So(svc, ShouldNotBeNil)
			So(len(svc.Catalog()), ShouldEqual, 50)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithSeed(7),
			service.WithSessionTTL(time.Minute),
			service.WithMaxSessions(4),
			service.WithSweepInterval(time.Second),
		)

		Convey("Then the options show up in its stats", func() {
			stats := svc.GetStats()
			So(stats["maxSessions"], ShouldEqual, 4)
			So(stats["sessionTTL"], ShouldEqual, "1m0s")
		})
	})
}

func TestService_Start(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New()
		// Ensure service is stopped after test
		defer svc.Stop()

		Convey("When starting the service", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			err := svc.Start(ctx)

			Convey("Then it should start successfully", func() {
				So(err, ShouldBeNil)
			})

			Convey("And it should be marked as started", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["activeSessions"], ShouldEqual, 0)
			})

			Convey("And starting twice is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})
		})
	})
}

func TestService_Stop(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := svc.Start(ctx)
		So(err, ShouldBeNil)

		Convey("When stopping the service", func() {
			svc.Stop()

			Convey("Then it should be marked as stopped", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, false)
			})

			Convey("Then session operations are refused", func() {
				_, err := svc.CreateSession(ctx, model.Selection{Items: []string{"Tetris", "Doom"}})
				So(err, ShouldEqual, service.ErrNotStarted)
			})

			Convey("Then stopping again is a no-op", func() {
				svc.Stop()
			})
		})
	})
}

func TestService_NewTournament(t *testing.T) {
	Convey("Given a service", t, func() {
		svc := service.New(service.WithSeed(1))

		Convey("When the selection is too small", func() {
			_, err := svc.NewTournament([]string{"Tetris"})

			Convey("Then ErrInvalidSelection is returned", func() {
				So(errors.Is(err, selection.ErrInvalidSelection), ShouldBeTrue)
			})
		})

		Convey("When the selection is valid", func() {
			e, err := svc.NewTournament([]string{"Tetris", "Doom", "Myst"})

			Convey("Then a ready engine is built", func() {
				So(err, ShouldBeNil)
				So(e.Total(), ShouldEqual, 3)
				So(e.State().String(), ShouldEqual, "ready")
			})
		})
	})
}

func TestService_GetStats(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New()

		Convey("When getting stats before starting", func() {
			stats := svc.GetStats()

			Convey("Then it should return basic stats", func() {
				So(stats, ShouldNotBeNil)
				So(stats["started"], ShouldEqual, false)
				So(stats["catalogSize"], ShouldEqual, 50)
				So(stats["minItems"], ShouldEqual, 2)
				So(stats["maxItems"], ShouldEqual, 10)
				_, ok := stats["activeSessions"]
				So(ok, ShouldBeFalse)
			})
		})
	})
}
