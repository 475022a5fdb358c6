package schedule_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/Daco2020/ttobot-sub000/internal/common"
	"github.com/Daco2020/ttobot-sub000/internal/features/schedule"
)

func kst(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, common.SeoulLocation())
}

func seasonDates() []time.Time {
	return []time.Time{
		kst(2024, 9, 29, 0, 0),
		kst(2024, 10, 13, 0, 0),
		kst(2024, 10, 27, 0, 0),
		kst(2024, 11, 10, 0, 0),
		kst(2024, 11, 24, 0, 0),
		kst(2024, 12, 8, 0, 0),
	}
}

func TestSchedule_New(t *testing.T) {
	Convey("Schedule 생성", t, func() {
		Convey("빈 마감일 목록은 거부한다", func() {
			_, err := schedule.New(nil)
			So(err, ShouldEqual, common.ErrEmptySchedule)
		})

		Convey("오름차순이 아닌 목록은 거부한다", func() {
			_, err := schedule.New([]time.Time{
				kst(2024, 10, 13, 0, 0),
				kst(2024, 9, 29, 0, 0),
			})
			So(err, ShouldNotBeNil)
		})

		Convey("같은 날짜가 겹쳐도 거부한다", func() {
			_, err := schedule.New([]time.Time{
				kst(2024, 9, 29, 0, 0),
				kst(2024, 9, 29, 23, 59),
			})
			So(err, ShouldNotBeNil)
		})
	})
}

func TestSchedule_CurrentRound(t *testing.T) {
	Convey("6개 마감일이 있는 시즌에서", t, func() {
		s, err := schedule.New(seasonDates())
		So(err, ShouldBeNil)

		Convey("기수 시작 전이면 1회차", func() {
			r, err := s.CurrentRound(kst(2024, 9, 20, 12, 0))
			So(err, ShouldBeNil)
			So(r.Number, ShouldEqual, 1)
			So(common.DateOf(r.DueDate), ShouldEqual, kst(2024, 9, 29, 0, 0))
		})

		Convey("마감일 당일은 그 날로 끝나는 회차", func() {
			r, err := s.CurrentRound(kst(2024, 11, 24, 23, 0))
			So(err, ShouldBeNil)
			So(r.Number, ShouldEqual, 5)
		})

		Convey("마감일 다음 날은 다음 회차", func() {
			r, err := s.CurrentRound(kst(2024, 11, 25, 0, 0))
			So(err, ShouldBeNil)
			So(r.Number, ShouldEqual, 6)
			So(common.DateOf(r.DueDate), ShouldEqual, kst(2024, 12, 8, 0, 0))
		})

		Convey("현재 회차의 마감일은 now 이상인 가장 이른 마감일이다", func() {
			for _, now := range []time.Time{
				kst(2024, 10, 1, 9, 0),
				kst(2024, 10, 13, 0, 0),
				kst(2024, 12, 8, 23, 59),
			} {
				r, err := s.CurrentRound(now)
				So(err, ShouldBeNil)
				So(common.DateOf(r.DueDate).Before(common.DateOf(now)), ShouldBeFalse)
				if r.Number > 1 {
					prev := s.DueDates()[r.Number-2]
					So(prev.Before(common.DateOf(now)), ShouldBeTrue)
				}
			}
		})

		Convey("마지막 마감일을 지나면 시즌 종료", func() {
			_, err := s.CurrentRound(kst(2024, 12, 9, 0, 0))
			So(err, ShouldEqual, common.ErrOutOfSchedule)
			So(s.IsOver(kst(2024, 12, 9, 0, 0)), ShouldBeTrue)
			So(s.IsOver(kst(2024, 12, 8, 10, 0)), ShouldBeFalse)
		})
	})
}

func TestSchedule_IsWithinWindow(t *testing.T) {
	Convey("회차 기간 검사", t, func() {
		s, err := schedule.New(seasonDates())
		So(err, ShouldBeNil)
		now := kst(2024, 11, 25, 10, 0) // 6회차 진행 중

		Convey("현재 회차 기간은 (11-24, 12-08]", func() {
			ok, err := s.IsWithinWindow(kst(2024, 11, 25, 1, 0), 0, now)
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)

			// 시작 경계는 열려 있다: 직전 마감일 당일은 이전 회차
			ok, err = s.IsWithinWindow(kst(2024, 11, 24, 23, 59), 0, now)
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)

			// 끝 경계는 닫혀 있다: 마감일 당일 제출은 그 회차
			ok, err = s.IsWithinWindow(kst(2024, 12, 8, 23, 0), 0, now)
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
		})

		Convey("한 회차 이전 기간은 (11-10, 11-24]", func() {
			ok, err := s.IsWithinWindow(kst(2024, 11, 24, 9, 0), 1, now)
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)

			ok, err = s.IsWithinWindow(kst(2024, 11, 10, 12, 0), 1, now)
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})

		Convey("일정 시작 이전 회차는 항상 false", func() {
			ok, err := s.IsWithinWindow(kst(2024, 9, 1, 0, 0), 10, now)
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})

		Convey("첫 회차의 시작은 열려 있다", func() {
			early := kst(2024, 9, 25, 10, 0)
			ok, err := s.IsWithinWindow(kst(2024, 9, 1, 0, 0), 0, early)
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
		})

		Convey("시즌이 끝났으면 에러", func() {
			_, err := s.IsWithinWindow(kst(2024, 11, 24, 9, 0), 1, kst(2025, 1, 1, 0, 0))
			So(err, ShouldEqual, common.ErrOutOfSchedule)
		})
	})
}
