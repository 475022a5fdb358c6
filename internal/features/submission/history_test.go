package submission_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/Daco2020/ttobot-sub000/internal/common"
	"github.com/Daco2020/ttobot-sub000/internal/features/schedule"
	"github.com/Daco2020/ttobot-sub000/internal/features/submission"
)

func kst(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, common.SeoulLocation())
}

// 2024년 하반기 기수 일정 (6개 회차)
func season() *schedule.Schedule {
	s, err := schedule.New([]time.Time{
		kst(2024, 9, 29, 0, 0),
		kst(2024, 10, 13, 0, 0),
		kst(2024, 10, 27, 0, 0),
		kst(2024, 11, 10, 0, 0),
		kst(2024, 11, 24, 0, 0),
		kst(2024, 12, 8, 0, 0),
	})
	if err != nil {
		panic(err)
	}
	return s
}

func submitAt(t time.Time) submission.Event {
	return submission.Event{MemberID: "U01", Kind: submission.KindSubmit, OccurredAt: t}
}

func passAt(t time.Time) submission.Event {
	return submission.Event{MemberID: "U01", Kind: submission.KindPass, OccurredAt: t}
}

func TestHistory_MostRecent(t *testing.T) {
	Convey("제출 이력에서", t, func() {
		Convey("빈 이력은 ErrEmptyHistory", func() {
			h := submission.NewHistory(nil)
			_, err := h.MostRecent()
			So(err, ShouldEqual, common.ErrEmptyHistory)
		})

		Convey("순서가 뒤섞여 들어와도 occurred_at 기준으로 최신을 찾는다", func() {
			h := submission.NewHistory([]submission.Event{
				submitAt(kst(2024, 11, 24, 10, 0)),
				submitAt(kst(2024, 10, 5, 10, 0)),
				passAt(kst(2024, 10, 20, 10, 0)),
			})
			recent, err := h.MostRecent()
			So(err, ShouldBeNil)
			So(recent.OccurredAt, ShouldEqual, kst(2024, 11, 24, 10, 0))
			So(recent.IsSubmit(), ShouldBeTrue)
		})
	})
}

func TestHistory_PassCount(t *testing.T) {
	Convey("패스 횟수는 제출 개수와 무관하게 정확히 센다", t, func() {
		h := submission.NewHistory([]submission.Event{
			submitAt(kst(2024, 10, 5, 10, 0)),
			passAt(kst(2024, 10, 20, 10, 0)),
			submitAt(kst(2024, 11, 5, 10, 0)),
			passAt(kst(2024, 11, 20, 10, 0)),
			submitAt(kst(2024, 12, 1, 10, 0)),
		})
		So(h.PassCount(), ShouldEqual, 2)
		So(submission.NewHistory(nil).PassCount(), ShouldEqual, 0)
	})
}

func TestHistory_HasSubmittedCurrentRound(t *testing.T) {
	Convey("현재 회차 제출 여부", t, func() {
		s := season()
		now := kst(2024, 11, 25, 9, 0) // 6회차 (11-24 초과 ~ 12-08 이하)

		Convey("현재 회차 기간 안의 제출이면 true", func() {
			h := submission.NewHistory([]submission.Event{
				submitAt(kst(2024, 11, 25, 1, 0)),
			})
			ok, err := h.HasSubmittedCurrentRound(s, now)
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
		})

		Convey("이전 회차의 제출이면 false", func() {
			h := submission.NewHistory([]submission.Event{
				submitAt(kst(2024, 11, 24, 10, 0)),
			})
			ok, err := h.HasSubmittedCurrentRound(s, now)
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})

		Convey("최근 이벤트가 패스면 false", func() {
			h := submission.NewHistory([]submission.Event{
				passAt(kst(2024, 11, 25, 1, 0)),
			})
			ok, err := h.HasSubmittedCurrentRound(s, now)
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})

		Convey("빈 이력은 에러 없이 false", func() {
			ok, err := submission.NewHistory(nil).HasSubmittedCurrentRound(s, now)
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})

		Convey("제출 이벤트를 덧붙이면 곧바로 true 가 된다", func() {
			h := submission.NewHistory(nil)
			ok, _ := h.HasSubmittedCurrentRound(s, now)
			So(ok, ShouldBeFalse)

			h = submission.NewHistory(append(h.Events(), submitAt(now)))
			ok, err := h.HasSubmittedCurrentRound(s, now)
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)

			// 패스를 덧붙이는 경우에는 값이 변하지 않는다
			h2 := submission.NewHistory([]submission.Event{passAt(now)})
			ok, err = h2.HasSubmittedCurrentRound(s, now)
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestHistory_PassedPreviousRound(t *testing.T) {
	Convey("직전 패스 여부 (기간 시작은 두 칸 뒤 마감일 — 운영 정책 그대로)", t, func() {
		s := season()
		now := kst(2024, 11, 25, 9, 0) // 현재 인덱스 5 (6회차)

		Convey("직전 회차 기간 (11-10, 11-24] 안의 패스면 true", func() {
			h := submission.NewHistory([]submission.Event{
				passAt(kst(2024, 11, 20, 10, 0)),
			})
			ok, err := h.PassedPreviousRound(s, now)
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
		})

		Convey("두 회차 전 기간 (10-27, 11-10] 의 패스는 잡지 않는다", func() {
			h := submission.NewHistory([]submission.Event{
				passAt(kst(2024, 11, 5, 10, 0)),
			})
			ok, err := h.PassedPreviousRound(s, now)
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})

		Convey("현재 회차 기간 안의 패스는 잡지 않는다", func() {
			h := submission.NewHistory([]submission.Event{
				passAt(kst(2024, 11, 25, 8, 0)),
			})
			ok, err := h.PassedPreviousRound(s, now)
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})

		Convey("최근 이벤트가 제출이면 false", func() {
			h := submission.NewHistory([]submission.Event{
				submitAt(kst(2024, 11, 5, 10, 0)),
			})
			ok, err := h.PassedPreviousRound(s, now)
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})

		Convey("빈 이력은 에러 없이 false", func() {
			ok, err := submission.NewHistory(nil).PassedPreviousRound(s, now)
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})
	})
}
