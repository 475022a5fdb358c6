// Package points — rewards.go 는 고정 보상표를 정의한다.
// 프로세스 시작 시 설정에서 한 번 만들고 이후 읽기 전용으로 쓴다.
package points

import (
	"fmt"

	"github.com/Daco2020/ttobot-sub000/internal/common"
	"github.com/Daco2020/ttobot-sub000/internal/config"
)

// 보상 규칙 이름
const (
	RuleSubmit           = "submit"            // 회차 첫 제출
	RuleAdditionalSubmit = "additional_submit" // 같은 회차 추가 제출
	RuleCombo3           = "combo_3"           // 3콤보 보너스
	RuleCombo6           = "combo_6"           // 6콤보 보너스
	RuleCombo9           = "combo_9"           // 9콤보 보너스
	RuleRankFirst        = "rank_first"        // 채널 1등 제출
	RuleRankSecond       = "rank_second"       // 채널 2등 제출
	RuleRankThird        = "rank_third"        // 채널 3등 제출
	RuleCurationRequest  = "curation_request"  // 큐레이션 검토 신청
	RuleCurationSelected = "curation_selected" // 큐레이션 선정
	RuleConference       = "conference"        // 컨퍼런스 참여
	RuleNoticeAck        = "notice_ack"        // 공지 이모지 확인
	RuleIntroduction     = "introduction"      // 자기소개 작성
)

// 보상 분류
const (
	CategoryWriting   = "글쓰기"
	CategoryCombo     = "콤보"
	CategoryRanking   = "랭킹"
	CategoryCuration  = "큐레이션"
	CategoryCommunity = "커뮤니티"
)

// Reward 는 보상표의 한 항목.
type Reward struct {
	Amount   int    // 지급 포인트 (0 이상)
	Reason   string // 지급 사유 문구
	Category string // 분류 태그
}

// Table 은 규칙 이름 → 보상 매핑. 기수 동안 불변이다.
type Table struct {
	rewards   map[string]Reward
	comboUnit int // 마일스톤이 아닌 콤보의 회차당 포인트
}

// NewTable 은 설정값으로 보상표를 만든다.
func NewTable(cfg *config.Config) *Table {
	return &Table{
		comboUnit: cfg.PointComboUnit,
		rewards: map[string]Reward{
			RuleSubmit:           {cfg.PointSubmit, "글 제출", CategoryWriting},
			RuleAdditionalSubmit: {cfg.PointAdditionalSubmit, "추가 제출", CategoryWriting},
			RuleCombo3:           {cfg.PointCombo3, "3회 연속 제출", CategoryCombo},
			RuleCombo6:           {cfg.PointCombo6, "6회 연속 제출", CategoryCombo},
			RuleCombo9:           {cfg.PointCombo9, "9회 연속 제출", CategoryCombo},
			RuleRankFirst:        {cfg.PointRankFirst, "이번 회차 채널 1등 제출", CategoryRanking},
			RuleRankSecond:       {cfg.PointRankSecond, "이번 회차 채널 2등 제출", CategoryRanking},
			RuleRankThird:        {cfg.PointRankThird, "이번 회차 채널 3등 제출", CategoryRanking},
			RuleCurationRequest:  {cfg.PointCurationRequest, "큐레이션 검토 신청", CategoryCuration},
			RuleCurationSelected: {cfg.PointCurationSelected, "큐레이션 선정", CategoryCuration},
			RuleConference:       {cfg.PointConference, "컨퍼런스 참여", CategoryCommunity},
			RuleNoticeAck:        {cfg.PointNoticeAck, "공지 확인", CategoryCommunity},
			RuleIntroduction:     {cfg.PointIntroduction, "자기소개 작성", CategoryCommunity},
		},
	}
}

// Lookup 은 규칙 이름으로 보상 항목을 찾는다.
func (t *Table) Lookup(rule string) (Reward, error) {
	r, ok := t.rewards[rule]
	if !ok {
		return Reward{}, common.ErrUnknownRewardRule
	}
	return r, nil
}

// ComboReward 는 콤보 수에 맞는 보상을 고른다.
// 정확히 3/6/9 콤보면 고정 보너스, 그 외 1 이상이면 회차당 포인트 × 콤보 수.
// 0 이하면 보상이 없다 (두 번째 반환값 false).
func (t *Table) ComboReward(count int) (Reward, bool) {
	switch count {
	case 3:
		return t.rewards[RuleCombo3], true
	case 6:
		return t.rewards[RuleCombo6], true
	case 9:
		return t.rewards[RuleCombo9], true
	}
	if count <= 0 {
		return Reward{}, false
	}
	return Reward{
		Amount:   t.comboUnit * count,
		Reason:   fmt.Sprintf("%d회 연속 제출", count),
		Category: CategoryCombo,
	}, true
}

// RankReward 는 순위(1~3)에 맞는 보상을 고른다. 그 밖의 순위는 보상이 없다.
func (t *Table) RankReward(rank int) (Reward, bool) {
	switch rank {
	case 1:
		return t.rewards[RuleRankFirst], true
	case 2:
		return t.rewards[RuleRankSecond], true
	case 3:
		return t.rewards[RuleRankThird], true
	}
	return Reward{}, false
}
