package submission_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/Daco2020/ttobot-sub000/internal/features/submission"
)

func TestContinuousSubmitCount(t *testing.T) {
	Convey("연속 제출 콤보 계산", t, func() {
		s := season()
		now := kst(2024, 11, 25, 9, 0) // 6회차 진행 중

		Convey("빈 이력은 에러 없이 0", func() {
			count, err := submission.ContinuousSubmitCount(submission.NewHistory(nil), s, now)
			So(err, ShouldBeNil)
			So(count, ShouldEqual, 0)
		})

		Convey("직전 회차에 제출이 없으면 0", func() {
			// 4회차에만 제출, 5회차 비어 있음
			h := submission.NewHistory([]submission.Event{
				submitAt(kst(2024, 11, 5, 10, 0)),
			})
			count, err := submission.ContinuousSubmitCount(h, s, now)
			So(err, ShouldBeNil)
			So(count, ShouldEqual, 0)
		})

		Convey("5회차 제출, 4회차 비고 3회차 제출이면 1에서 끊긴다", func() {
			// 5회차(11-24)와 3회차(10-27)에 제출, 4회차(11-10) 비어 있음
			h := submission.NewHistory([]submission.Event{
				submitAt(kst(2024, 11, 24, 10, 0)),
				submitAt(kst(2024, 10, 27, 10, 0)),
			})
			count, err := submission.ContinuousSubmitCount(h, s, now)
			So(err, ShouldBeNil)
			So(count, ShouldEqual, 1)
		})

		Convey("5, 4, 3회차 연속 제출이면 3", func() {
			h := submission.NewHistory([]submission.Event{
				submitAt(kst(2024, 11, 24, 10, 0)), // 5회차
				submitAt(kst(2024, 11, 10, 10, 0)), // 4회차 (마감일 당일)
				submitAt(kst(2024, 10, 27, 10, 0)), // 3회차 (마감일 당일)
			})
			count, err := submission.ContinuousSubmitCount(h, s, now)
			So(err, ShouldBeNil)
			So(count, ShouldEqual, 3)
		})

		Convey("중간의 패스는 콤보를 끊지 않고 건너뛴다", func() {
			// 5회차 제출 — 4회차 패스 — 3회차 제출 → 콤보 2
			h := submission.NewHistory([]submission.Event{
				submitAt(kst(2024, 11, 20, 10, 0)),
				passAt(kst(2024, 11, 3, 10, 0)),
				submitAt(kst(2024, 10, 20, 10, 0)),
			})
			count, err := submission.ContinuousSubmitCount(h, s, now)
			So(err, ShouldBeNil)
			So(count, ShouldEqual, 2)
		})

		Convey("아무 활동 없는 회차는 콤보를 끊는다", func() {
			// 5회차 제출 — 4회차 패스 — 3회차 비어 있음 — 2회차 제출 → 콤보 1
			h := submission.NewHistory([]submission.Event{
				submitAt(kst(2024, 11, 20, 10, 0)),
				passAt(kst(2024, 11, 3, 10, 0)),
				submitAt(kst(2024, 10, 5, 10, 0)),
			})
			count, err := submission.ContinuousSubmitCount(h, s, now)
			So(err, ShouldBeNil)
			So(count, ShouldEqual, 1)
		})

		Convey("현재 회차의 제출은 자기 콤보에 포함되지 않는다", func() {
			h := submission.NewHistory([]submission.Event{
				submitAt(kst(2024, 11, 25, 8, 0)), // 현재(6회차) 제출
			})
			count, err := submission.ContinuousSubmitCount(h, s, now)
			So(err, ShouldBeNil)
			So(count, ShouldEqual, 0)
		})

		Convey("1회차부터 전부 제출하면 일정 시작에서 멈춘다", func() {
			h := submission.NewHistory([]submission.Event{
				submitAt(kst(2024, 9, 25, 10, 0)),  // 1회차
				submitAt(kst(2024, 10, 10, 10, 0)), // 2회차
				submitAt(kst(2024, 10, 20, 10, 0)), // 3회차
				submitAt(kst(2024, 11, 5, 10, 0)),  // 4회차
				submitAt(kst(2024, 11, 20, 10, 0)), // 5회차
			})
			count, err := submission.ContinuousSubmitCount(h, s, now)
			So(err, ShouldBeNil)
			So(count, ShouldEqual, 5)
		})
	})
}
