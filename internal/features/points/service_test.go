package points_test

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/Daco2020/ttobot-sub000/internal/common"
	"github.com/Daco2020/ttobot-sub000/internal/config"
	"github.com/Daco2020/ttobot-sub000/internal/features/points"
)

// 테스트용 인메모리 장부
type fakeLedger struct {
	awards []*points.Award
}

func (f *fakeLedger) Append(_ context.Context, a *points.Award) error {
	f.awards = append(f.awards, a)
	return nil
}

func (f *fakeLedger) FetchByMember(_ context.Context, memberID string) ([]*points.Award, error) {
	var out []*points.Award
	for _, a := range f.awards {
		if a.MemberID == memberID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeLedger) SumByMember(_ context.Context, memberID string) (int64, error) {
	total := int64(0)
	for _, a := range f.awards {
		if a.MemberID == memberID {
			total += int64(a.Amount)
		}
	}
	return total, nil
}

// 테스트용 멤버 확인자
type fakeMembers struct {
	known map[string]bool
}

func (f *fakeMembers) Exists(_ context.Context, memberID string) (bool, error) {
	return f.known[memberID], nil
}

func testConfig() *config.Config {
	return &config.Config{
		PointSubmit:           100,
		PointAdditionalSubmit: 10,
		PointComboUnit:        10,
		PointCombo3:           300,
		PointCombo6:           600,
		PointCombo9:           900,
		PointRankFirst:        50,
		PointRankSecond:       30,
		PointRankThird:        20,
		PointCurationRequest:  20,
		PointCurationSelected: 300,
		PointConference:       50,
		PointNoticeAck:        10,
		PointIntroduction:     100,
	}
}

func fixedClock() time.Time {
	return time.Date(2024, 11, 25, 9, 0, 0, 0, common.SeoulLocation())
}

func newService(ledger *fakeLedger, members *fakeMembers) *points.Service {
	return points.NewService(points.NewTable(testConfig()), ledger, members, fixedClock)
}

func TestService_Grant(t *testing.T) {
	Convey("포인트 지급 엔진", t, func() {
		ledger := &fakeLedger{}
		members := &fakeMembers{known: map[string]bool{"U01": true}}
		svc := newService(ledger, members)
		ctx := context.Background()

		Convey("제출 포인트를 지급하고 알림 문구를 만든다", func() {
			text, err := svc.GrantSubmission(ctx, "U01")
			So(err, ShouldBeNil)
			So(text, ShouldContainSubstring, "<@U01>")
			So(text, ShouldContainSubstring, "글 제출")
			So(text, ShouldContainSubstring, "100점")
			So(ledger.awards, ShouldHaveLength, 1)
			So(ledger.awards[0].Amount, ShouldEqual, 100)
			So(ledger.awards[0].CreatedAt, ShouldEqual, fixedClock())
		})

		Convey("추가 제출은 더 적은 포인트를 지급한다", func() {
			text, err := svc.GrantAdditionalSubmission(ctx, "U01")
			So(err, ShouldBeNil)
			So(text, ShouldContainSubstring, "10점")
			So(ledger.awards[0].Category, ShouldEqual, points.CategoryWriting)
		})

		Convey("등록되지 않은 멤버는 ErrMemberNotFound 이고 장부에 기록이 없다", func() {
			_, err := svc.GrantSubmission(ctx, "U_UNKNOWN")
			So(err, ShouldEqual, common.ErrMemberNotFound)
			So(ledger.awards, ShouldBeEmpty)
		})

		Convey("총점은 장부 기록의 합이다", func() {
			svc.GrantSubmission(ctx, "U01")
			svc.GrantCurationRequest(ctx, "U01")
			total, err := svc.TotalPoints(ctx, "U01")
			So(err, ShouldBeNil)
			So(total, ShouldEqual, 120)
		})

		Convey("특별 지급은 호출자가 금액과 사유를 정한다", func() {
			text, err := svc.GrantSpecial(ctx, "U01", 77, "해커톤 우승")
			So(err, ShouldBeNil)
			So(text, ShouldContainSubstring, "해커톤 우승")
			So(text, ShouldContainSubstring, "77점")
		})

		Convey("0점 이하 지급은 거절한다", func() {
			_, err := svc.GrantSpecial(ctx, "U01", 0, "empty")
			So(err, ShouldEqual, common.ErrInvalidAmount)
			So(ledger.awards, ShouldBeEmpty)
		})
	})
}

func TestService_ComboBonus(t *testing.T) {
	Convey("콤보 보너스", t, func() {
		ledger := &fakeLedger{}
		members := &fakeMembers{known: map[string]bool{"U01": true}}
		svc := newService(ledger, members)
		ctx := context.Background()

		Convey("정확히 3콤보면 고정 보너스 300점", func() {
			text, err := svc.GrantComboBonus(ctx, "U01", 3)
			So(err, ShouldBeNil)
			So(text, ShouldContainSubstring, "300점")
			So(text, ShouldContainSubstring, "3회 연속 제출")
		})

		Convey("6콤보와 9콤보도 고정 보너스", func() {
			text, _ := svc.GrantComboBonus(ctx, "U01", 6)
			So(text, ShouldContainSubstring, "600점")
			text, _ = svc.GrantComboBonus(ctx, "U01", 9)
			So(text, ShouldContainSubstring, "900점")
		})

		Convey("그 외의 콤보는 회차당 10점 × 콤보 수", func() {
			text, err := svc.GrantComboBonus(ctx, "U01", 4)
			So(err, ShouldBeNil)
			So(text, ShouldContainSubstring, "40점")
			So(text, ShouldContainSubstring, "4회 연속 제출")
		})

		Convey("콤보 0이면 지급도 알림도 없다", func() {
			text, err := svc.GrantComboBonus(ctx, "U01", 0)
			So(err, ShouldBeNil)
			So(text, ShouldBeEmpty)
			So(ledger.awards, ShouldBeEmpty)
		})
	})
}

func TestService_RankingBonus(t *testing.T) {
	Convey("순위 보너스", t, func() {
		ledger := &fakeLedger{}
		members := &fakeMembers{known: map[string]bool{"U01": true}}
		svc := newService(ledger, members)
		ctx := context.Background()

		Convey("1, 2, 3등은 서로 다른 금액", func() {
			text, _ := svc.GrantRankingBonus(ctx, "U01", 1)
			So(text, ShouldContainSubstring, "50점")
			text, _ = svc.GrantRankingBonus(ctx, "U01", 2)
			So(text, ShouldContainSubstring, "30점")
			text, _ = svc.GrantRankingBonus(ctx, "U01", 3)
			So(text, ShouldContainSubstring, "20점")
			So(ledger.awards, ShouldHaveLength, 3)
		})

		Convey("4등부터는 지급이 없다", func() {
			text, err := svc.GrantRankingBonus(ctx, "U01", 4)
			So(err, ShouldBeNil)
			So(text, ShouldBeEmpty)
			So(ledger.awards, ShouldBeEmpty)
		})
	})
}
