package ranking_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/Daco2020/ttobot-sub000/internal/common"
	"github.com/Daco2020/ttobot-sub000/internal/features/ranking"
)

func at(hh, mm int) time.Time {
	return time.Date(2024, 11, 25, hh, mm, 0, 0, common.SeoulLocation())
}

func TestTopRanked(t *testing.T) {
	Convey("채널 제출 순위", t, func() {
		Convey("제출 시각이 빠른 순서대로 정렬된다", func() {
			ranked := ranking.TopRanked([]ranking.Entry{
				{MemberID: "U03", SubmittedAt: at(15, 0)},
				{MemberID: "U01", SubmittedAt: at(9, 0)},
				{MemberID: "U02", SubmittedAt: at(12, 0)},
			})
			So(ranked, ShouldHaveLength, 3)
			So(ranked[0].MemberID, ShouldEqual, "U01")
			So(ranked[1].MemberID, ShouldEqual, "U02")
			So(ranked[2].MemberID, ShouldEqual, "U03")
		})

		Convey("네 번째 이후 제출자는 제외된다", func() {
			ranked := ranking.TopRanked([]ranking.Entry{
				{MemberID: "U01", SubmittedAt: at(9, 0)},
				{MemberID: "U02", SubmittedAt: at(10, 0)},
				{MemberID: "U03", SubmittedAt: at(11, 0)},
				{MemberID: "U04", SubmittedAt: at(12, 0)},
			})
			So(ranked, ShouldHaveLength, 3)
			So(ranking.RankOf(ranked, "U04"), ShouldEqual, 0)
		})

		Convey("후보가 3명 미만이면 있는 만큼만 반환한다", func() {
			ranked := ranking.TopRanked([]ranking.Entry{
				{MemberID: "U01", SubmittedAt: at(9, 0)},
			})
			So(ranked, ShouldHaveLength, 1)
			So(ranking.RankOf(ranked, "U01"), ShouldEqual, 1)
		})

		Convey("빈 후보 목록이면 빈 결과", func() {
			So(ranking.TopRanked(nil), ShouldBeEmpty)
		})

		Convey("같은 시각이면 들어온 순서를 유지한다", func() {
			ranked := ranking.TopRanked([]ranking.Entry{
				{MemberID: "U05", SubmittedAt: at(9, 0)},
				{MemberID: "U06", SubmittedAt: at(9, 0)},
			})
			So(ranked[0].MemberID, ShouldEqual, "U05")
			So(ranked[1].MemberID, ShouldEqual, "U06")
		})

		Convey("입력 슬라이스를 건드리지 않는다", func() {
			entries := []ranking.Entry{
				{MemberID: "U02", SubmittedAt: at(12, 0)},
				{MemberID: "U01", SubmittedAt: at(9, 0)},
			}
			ranking.TopRanked(entries)
			So(entries[0].MemberID, ShouldEqual, "U02")
		})
	})
}
