package site

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFS(t *testing.T) {
	Convey("Given the embedded client", t, func() {
		fsys := FS()

		Convey("Then every asset the page links is embedded", func() {
			for _, name := range []string{"/index.html", "/app.js", "/app.css"} {
				f, err := fsys.Open(name)
				So(err, ShouldBeNil)
				data, err := io.ReadAll(f)
				So(err, ShouldBeNil)
				So(len(data), ShouldBeGreaterThan, 0)
				_ = f.Close()
			}
		})
	})
}

func TestRegister(t *testing.T) {
	Convey("Given a mux with the client routes", t, func() {
		mux := http.NewServeMux()
		Register(context.Background(), mux)
		serve := func(method, path string) *httptest.ResponseRecorder {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(method, path, http.NoBody))
			return w
		}

		Convey("When opening the root page", func() {
			w := serve(http.MethodGet, "/")

			Convey("Then the compare screen markup and its assets are linked", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
				So(w.Body.String(), ShouldContainSubstring, "Which do you prefer?")
				So(w.Body.String(), ShouldContainSubstring, `src="/app.js"`)
				So(w.Body.String(), ShouldContainSubstring, `href="/app.css"`)
			})
		})

		Convey("When loading the assets", func() {
			js := serve(http.MethodGet, "/app.js")
			css := serve(http.MethodGet, "/app.css")

			Convey("Then they carry their content types", func() {
				So(js.Code, ShouldEqual, http.StatusOK)
				So(js.Header().Get("Content-Type"), ShouldContainSubstring, "javascript")
				So(js.Body.String(), ShouldContainSubstring, "/sessions")
				So(css.Header().Get("Content-Type"), ShouldContainSubstring, "text/css")
			})
		})

		Convey("Then unknown files are not found", func() {
			So(serve(http.MethodGet, "/missing.txt").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Then writes are refused", func() {
			So(serve(http.MethodPost, "/").Code, ShouldEqual, http.StatusMethodNotAllowed)
		})
	})

	Convey("Given a nil mux", t, func() {
		So(func() { Register(context.Background(), nil) }, ShouldPanic)
	})
}
