// Package points — service.go 는 포인트 지급 엔진이다.
// 보상표에서 규칙을 찾고, 멤버 존재를 확인하고, 장부에 기록을 추가하고,
// 사용자에게 보여줄 알림 문구를 만든다.
//
// 지급 자체는 중복을 걸러주지 않는다. "회차 첫 제출인지 추가 제출인지"
// 같은 판단은 호출자(submission 서비스)의 책임이다.
package points

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/Daco2020/ttobot-sub000/internal/common"
)

// Ledger 는 포인트 장부 저장소 인터페이스. *Repository 가 구현한다.
type Ledger interface {
	Append(ctx context.Context, a *Award) error
	FetchByMember(ctx context.Context, memberID string) ([]*Award, error)
	SumByMember(ctx context.Context, memberID string) (int64, error)
}

// MemberChecker 는 멤버 존재 확인 인터페이스. members.Service 가 구현한다.
type MemberChecker interface {
	Exists(ctx context.Context, memberID string) (bool, error)
}

// Service 는 포인트 지급 엔진.
type Service struct {
	table   *Table
	ledger  Ledger
	members MemberChecker
	clock   common.Clock
}

// NewService 는 새 포인트 서비스를 만든다.
func NewService(table *Table, ledger Ledger, members MemberChecker, clock common.Clock) *Service {
	return &Service{table: table, ledger: ledger, members: members, clock: clock}
}

// grant 는 모든 지급의 공통 경로.
// 멤버가 없으면 ErrMemberNotFound — 장부에 아무것도 쓰지 않는다.
func (s *Service) grant(ctx context.Context, memberID string, reward Reward) (string, error) {
	if reward.Amount <= 0 {
		return "", common.ErrInvalidAmount
	}

	exists, err := s.members.Exists(ctx, memberID)
	if err != nil {
		return "", fmt.Errorf("멤버 확인 실패: %w", err)
	}
	if !exists {
		return "", common.ErrMemberNotFound
	}

	award := &Award{
		MemberID:  memberID,
		Amount:    reward.Amount,
		Reason:    reward.Reason,
		Category:  reward.Category,
		CreatedAt: s.clock(),
	}
	if err := s.ledger.Append(ctx, award); err != nil {
		return "", err
	}

	log.WithFields(log.Fields{
		"member_id": memberID,
		"amount":    reward.Amount,
		"reason":    reward.Reason,
	}).Info("포인트 지급")

	return formatNotification(memberID, reward), nil
}

// grantRule 은 보상표의 고정 규칙 하나를 지급한다.
func (s *Service) grantRule(ctx context.Context, memberID, rule string) (string, error) {
	reward, err := s.table.Lookup(rule)
	if err != nil {
		return "", err
	}
	return s.grant(ctx, memberID, reward)
}

// GrantSubmission 은 회차 첫 제출 포인트를 지급한다.
func (s *Service) GrantSubmission(ctx context.Context, memberID string) (string, error) {
	return s.grantRule(ctx, memberID, RuleSubmit)
}

// GrantAdditionalSubmission 은 이미 채운 회차의 추가 제출 포인트를 지급한다.
func (s *Service) GrantAdditionalSubmission(ctx context.Context, memberID string) (string, error) {
	return s.grantRule(ctx, memberID, RuleAdditionalSubmit)
}

// GrantComboBonus 는 연속 제출 보너스를 지급한다.
// 콤보가 0이면 지급 없이 빈 문자열을 반환한다.
func (s *Service) GrantComboBonus(ctx context.Context, memberID string, count int) (string, error) {
	reward, ok := s.table.ComboReward(count)
	if !ok {
		return "", nil
	}
	return s.grant(ctx, memberID, reward)
}

// GrantRankingBonus 는 채널 제출 순위 보너스를 지급한다.
// 순위가 1~3 이 아니면 지급 없이 빈 문자열을 반환한다.
func (s *Service) GrantRankingBonus(ctx context.Context, memberID string, rank int) (string, error) {
	reward, ok := s.table.RankReward(rank)
	if !ok {
		return "", nil
	}
	return s.grant(ctx, memberID, reward)
}

// GrantCurationRequest 는 큐레이션 검토 신청 포인트를 지급한다.
func (s *Service) GrantCurationRequest(ctx context.Context, memberID string) (string, error) {
	return s.grantRule(ctx, memberID, RuleCurationRequest)
}

// --- 수동(관리자) 지급. 제출 규칙 1~4를 거치지 않는다. ---

// GrantCurationSelected 는 큐레이션 선정 포인트를 지급한다.
func (s *Service) GrantCurationSelected(ctx context.Context, memberID string) (string, error) {
	return s.grantRule(ctx, memberID, RuleCurationSelected)
}

// GrantConference 는 컨퍼런스 참여 포인트를 지급한다.
func (s *Service) GrantConference(ctx context.Context, memberID string) (string, error) {
	return s.grantRule(ctx, memberID, RuleConference)
}

// GrantNoticeAck 는 공지 이모지 확인 포인트를 지급한다.
func (s *Service) GrantNoticeAck(ctx context.Context, memberID string) (string, error) {
	return s.grantRule(ctx, memberID, RuleNoticeAck)
}

// GrantIntroduction 은 자기소개 작성 포인트를 지급한다.
func (s *Service) GrantIntroduction(ctx context.Context, memberID string) (string, error) {
	return s.grantRule(ctx, memberID, RuleIntroduction)
}

// GrantSpecial 은 관리자가 사유와 금액을 지정하는 특별 포인트를 지급한다.
// 권한 검사는 admin 쪽에서 끝내고 들어온다.
func (s *Service) GrantSpecial(ctx context.Context, memberID string, amount int, reason string) (string, error) {
	return s.grant(ctx, memberID, Reward{
		Amount:   amount,
		Reason:   reason,
		Category: CategoryCommunity,
	})
}

// TotalPoints 는 멤버의 누적 포인트를 반환한다.
func (s *Service) TotalPoints(ctx context.Context, memberID string) (int64, error) {
	return s.ledger.SumByMember(ctx, memberID)
}

// FormatHistory 는 멤버의 포인트 내역을 출력용 문자열로 만든다.
func (s *Service) FormatHistory(ctx context.Context, memberID string) (string, error) {
	awards, err := s.ledger.FetchByMember(ctx, memberID)
	if err != nil {
		return "", err
	}
	if len(awards) == 0 {
		return "아직 받은 포인트가 없어요. 이번 회차에 글을 제출해보세요 ✍️", nil
	}

	total := int64(0)
	var sb strings.Builder
	for i, a := range awards {
		sb.WriteString(fmt.Sprintf("%d. %s | %s | +%s\n",
			i+1, common.FormatDateTime(a.CreatedAt), a.Reason, common.FormatPoints(a.Amount)))
		total += int64(a.Amount)
	}
	sb.WriteString(fmt.Sprintf("\n💰 총 %s점", common.FormatNumber(total)))
	return sb.String(), nil
}

// formatNotification 은 지급 알림 문구를 만든다.
// 예: "🎉 <@U012345>님이 '글 제출'로 100점을 획득했어요!"
func formatNotification(memberID string, reward Reward) string {
	return fmt.Sprintf("🎉 <@%s>님이 '%s'(으)로 %s을 획득했어요!",
		memberID, reward.Reason, common.FormatPoints(reward.Amount))
}
