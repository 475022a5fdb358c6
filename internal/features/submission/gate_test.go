package submission_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/Daco2020/ttobot-sub000/internal/common"
	"github.com/Daco2020/ttobot-sub000/internal/features/submission"
)

func TestCheckPassAllowed(t *testing.T) {
	Convey("패스 사용 규칙", t, func() {
		s := season()
		now := kst(2024, 11, 25, 9, 0)
		maxPasses := 2

		Convey("이력이 없으면 허용", func() {
			err := submission.CheckPassAllowed(submission.NewHistory(nil), maxPasses, s, now)
			So(err, ShouldBeNil)
		})

		Convey("패스를 모두 쓰면 '남은 패스 없음'으로 거절", func() {
			h := submission.NewHistory([]submission.Event{
				passAt(kst(2024, 10, 5, 10, 0)),
				submitAt(kst(2024, 10, 20, 10, 0)),
				passAt(kst(2024, 11, 5, 10, 0)),
			})
			err := submission.CheckPassAllowed(h, maxPasses, s, now)
			So(err, ShouldEqual, common.ErrNoPassesRemaining)
		})

		Convey("직전 회차에 패스했으면 '연속 패스'로 거절", func() {
			h := submission.NewHistory([]submission.Event{
				passAt(kst(2024, 11, 20, 10, 0)), // 5회차 패스
			})
			err := submission.CheckPassAllowed(h, maxPasses, s, now)
			So(err, ShouldEqual, common.ErrConsecutivePass)
		})

		Convey("패스 소진이 연속 패스보다 먼저 검사된다", func() {
			h := submission.NewHistory([]submission.Event{
				passAt(kst(2024, 11, 5, 10, 0)),
				passAt(kst(2024, 11, 20, 10, 0)),
			})
			err := submission.CheckPassAllowed(h, maxPasses, s, now)
			So(err, ShouldEqual, common.ErrNoPassesRemaining)
		})

		Convey("직전이 아닌 과거의 패스 한 번은 허용", func() {
			h := submission.NewHistory([]submission.Event{
				passAt(kst(2024, 10, 20, 10, 0)),  // 3회차 패스
				submitAt(kst(2024, 11, 20, 10, 0)), // 5회차 제출
			})
			err := submission.CheckPassAllowed(h, maxPasses, s, now)
			So(err, ShouldBeNil)
		})
	})
}
