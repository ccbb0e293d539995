package simulate_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/okian/rankr/internal/adapters/export"
	"github.com/okian/rankr/internal/adapters/http/api"
	service "github.com/okian/rankr/internal/app"
	"github.com/okian/rankr/internal/domain/catalog"
	"github.com/okian/rankr/internal/domain/model"
	"github.com/okian/rankr/internal/domain/types"
	"github.com/okian/rankr/internal/simulate"
	"github.com/okian/rankr/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	_ = logger.SetLevelString("error")
}

func newServer(t *testing.T, names []string, wrap func(http.Handler) http.Handler) (*httptest.Server, *service.Service, string) {
	dir := t.TempDir()
	svc := service.New(
		service.WithCatalog(catalog.MustNew(names)),
		service.WithExporter(export.NewCSVExporter(export.WithDir(dir))),
		service.WithSeed(7),
	)
	So(svc.Start(context.Background()), ShouldBeNil)
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)

	var h http.Handler = mux
	if wrap != nil {
		h = wrap(mux)
	}
	srv := httptest.NewServer(h)
	return srv, svc, dir
}

// reverseRankings flips every ranking body the server returns.
func reverseRankings(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || !strings.HasSuffix(r.URL.Path, "/ranking") {
			next.ServeHTTP(w, r)
			return
		}
		rec := httptest.NewRecorder()
		next.ServeHTTP(rec, r)
		var rows []types.Entry
		if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
			w.WriteHeader(rec.Code)
			_, _ = w.Write(rec.Body.Bytes())
			return
		}
		slices.Reverse(rows)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(rows)
	})
}

func selectionOf(indices ...int) model.Selection {
	return model.Selection{Indices: indices}
}

func TestRun(t *testing.T) {
	Convey("Given a running rankr server", t, func() {
		srv, svc, dir := newServer(t, []string{"A", "B", "C", "D", "E", "F"}, nil)
		defer srv.Close()
		defer svc.Stop()

		Convey("When playing tournaments with undos and exports", func() {
			stats, err := simulate.Run(context.Background(), simulate.Config{
				BaseURL:  srv.URL + "/",
				Sessions: 12,
				Workers:  4,
				MaxItems: 6,
				UndoRate: 0.3,
				Seed:     42,
				Timeout:  5 * time.Second,
				Export:   true,
			})

			Convey("Then every ranking is verified", func() {
				So(err, ShouldBeNil)
				So(stats.SessionsStarted, ShouldEqual, 12)
				So(stats.SessionsVerified, ShouldEqual, 12)
				So(stats.SessionsFailed, ShouldEqual, 0)
				So(stats.Votes, ShouldBeGreaterThanOrEqualTo, 12)
				So(stats.Undos, ShouldBeGreaterThan, 0)
				So(stats.Duration, ShouldBeGreaterThan, 0)
			})

			Convey("Then each ranking was exported", func() {
				So(stats.Exports, ShouldEqual, 12)
				files, err := os.ReadDir(dir)
				So(err, ShouldBeNil)
				So(len(files), ShouldEqual, 12)
			})

			Convey("Then the sessions were cleaned up", func() {
				So(svc.GetStats()["activeSessions"], ShouldEqual, 0)
			})
		})

		Convey("When keeping sessions", func() {
			_, err := simulate.Run(context.Background(), simulate.Config{
				BaseURL:  srv.URL,
				Sessions: 3,
				Workers:  2,
				Keep:     true,
			})

			Convey("Then they stay on the server", func() {
				So(err, ShouldBeNil)
				So(svc.GetStats()["activeSessions"], ShouldEqual, 3)
			})
		})

		Convey("When the catalog is smaller than the minimum selection", func() {
			_, err := simulate.Run(context.Background(), simulate.Config{
				BaseURL:  srv.URL,
				Sessions: 1,
				MinItems: 8,
			})

			Convey("Then the run is rejected before any tournament", func() {
				So(errors.Is(err, simulate.ErrInvalidConfig), ShouldBeTrue)
			})
		})
	})

	Convey("Given a server that reorders rankings", t, func() {
		srv, svc, _ := newServer(t, []string{"A", "B", "C", "D"}, reverseRankings)
		defer srv.Close()
		defer svc.Stop()

		Convey("When playing tournaments", func() {
			stats, err := simulate.Run(context.Background(), simulate.Config{
				BaseURL:  srv.URL,
				Sessions: 3,
				Workers:  3,
				MinItems: 3,
				MaxItems: 4,
			})

			Convey("Then every tournament fails verification", func() {
				So(errors.Is(err, simulate.ErrSessionsFailed), ShouldBeTrue)
				So(errors.Is(err, simulate.ErrRankingMismatch), ShouldBeTrue)
				So(stats.SessionsFailed, ShouldEqual, 3)
				So(stats.SessionsVerified, ShouldEqual, 0)
			})
		})
	})

	Convey("Given a server that is down", t, func() {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		Convey("Then the health check fails", func() {
			_, err := simulate.Run(context.Background(), simulate.Config{BaseURL: url, Sessions: 1, Timeout: time.Second})
			So(errors.Is(err, simulate.ErrUnhealthy), ShouldBeTrue)
		})
	})
}

func TestConfigDefaults(t *testing.T) {
	Convey("Given an empty config", t, func() {
		cfg := simulate.Config{}

		Convey("Then defaults are filled in", func() {
			So(cfg.Defaults(), ShouldBeNil)
			So(cfg.BaseURL, ShouldEqual, simulate.DefaultBaseURL)
			So(cfg.Sessions, ShouldEqual, simulate.DefaultSessions)
			So(cfg.Workers, ShouldEqual, simulate.DefaultWorkers)
			So(cfg.MinItems, ShouldEqual, 2)
			So(cfg.MaxItems, ShouldEqual, 10)
			So(cfg.Timeout, ShouldEqual, simulate.DefaultTimeout)
		})
	})

	Convey("Given invalid bounds", t, func() {
		cases := []simulate.Config{
			{MinItems: 1},
			{MaxItems: 11},
			{MinItems: 6, MaxItems: 4},
			{UndoRate: -0.1},
			{UndoRate: 0.9},
		}

		Convey("Then each is rejected", func() {
			for _, c := range cases {
				So(errors.Is(c.Defaults(), simulate.ErrInvalidConfig), ShouldBeTrue)
			}
		})
	})
}

func TestClient(t *testing.T) {
	Convey("Given a client against a live server", t, func() {
		srv, svc, _ := newServer(t, []string{"A", "B", "C"}, nil)
		defer srv.Close()
		defer svc.Stop()
		ctx := context.Background()
		c := simulate.NewClient(srv.URL, time.Second)

		Convey("Then the catalog is listed", func() {
			info, err := c.Catalog(ctx)
			So(err, ShouldBeNil)
			So(info.Items, ShouldResemble, []string{"A", "B", "C"})
			So(info.MinItems, ShouldEqual, 2)
		})

		Convey("Then API errors carry the status and code", func() {
			_, err := c.Ranking(ctx, "missing")
			So(errors.Is(err, simulate.ErrUnexpectedStatus), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "404 not_found")
		})

		Convey("Then back without votes is refused", func() {
			sess, err := c.Create(ctx, selectionOf(0, 1))
			So(err, ShouldBeNil)
			_, err = c.Back(ctx, sess.ID)
			So(err.Error(), ShouldContainSubstring, "409 nothing_to_undo")
			So(c.Delete(ctx, sess.ID), ShouldBeNil)
		})
	})
}
