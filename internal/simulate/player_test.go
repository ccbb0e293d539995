package simulate

import (
	"errors"
	"testing"

	"github.com/okian/rankr/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCompareRanking(t *testing.T) {
	Convey("Given an expected ranking", t, func() {
		want := []types.Entry{
			{Rank: 1, Item: "B", Score: 2},
			{Rank: 2, Item: "A", Score: 1},
			{Rank: 3, Item: "C", Score: 0},
		}

		Convey("Then an identical ranking matches", func() {
			got := append([]types.Entry(nil), want...)
			So(compareRanking(want, got), ShouldBeNil)
		})

		Convey("Then a missing row is a mismatch", func() {
			err := compareRanking(want, want[:2])
			So(errors.Is(err, ErrRankingMismatch), ShouldBeTrue)
		})

		Convey("Then swapped equal scores are a mismatch", func() {
			got := []types.Entry{want[0], {Rank: 2, Item: "C", Score: 1}, {Rank: 3, Item: "A", Score: 0}}
			err := compareRanking(want, got)
			So(errors.Is(err, ErrRankingMismatch), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "row 2")
		})
	})
}
