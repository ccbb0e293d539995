package types_test

import (
	"encoding/json"
	"testing"

	types "github.com/okian/rankr/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEntry(t *testing.T) {
	Convey("Given an Entry struct", t, func() {
		Convey("When creating an entry with zero values", func() {
			entry := types.Entry{}

			Convey("Then it should have default values", func() {
				So(entry.Rank, ShouldEqual, 0)
				So(entry.Item, ShouldEqual, "")
				So(entry.Score, ShouldEqual, 0)
			})
		})

		Convey("When encoding an entry as JSON", func() {
			data, err := json.Marshal(types.Entry{Rank: 1, Item: "Doom", Score: 3})

			Convey("Then it should use snake case field names", func() {
				So(err, ShouldBeNil)
				So(string(data), ShouldEqual, `{"rank":1,"item":"Doom","score":3}`)
			})
		})
	})
}

func TestPairView(t *testing.T) {
	Convey("Given a PairView", t, func() {
		data, err := json.Marshal(types.PairView{Left: "Halo 2", Right: "Portal"})

		Convey("Then it should encode both sides", func() {
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, `{"left":"Halo 2","right":"Portal"}`)
		})
	})
}
