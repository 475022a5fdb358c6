// Package submission — service.go 는 제출/패스 흐름 전체를 조율한다.
// 회차 판정 → 검증 → 이벤트 기록 → 포인트 지급 순서로 진행하고,
// 만들어진 알림 문구들을 핸들러에 돌려준다. 전송은 핸들러 몫이다.
package submission

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Daco2020/ttobot-sub000/internal/common"
	"github.com/Daco2020/ttobot-sub000/internal/features/members"
	"github.com/Daco2020/ttobot-sub000/internal/features/schedule"
)

// EventStore 는 제출 이벤트 저장소 인터페이스. *Repository 가 구현한다.
type EventStore interface {
	Create(ctx context.Context, e *Event) error
	GetHistory(ctx context.Context, memberID string) ([]Event, error)
	GetByID(ctx context.Context, id int64) (*Event, error)
	Search(ctx context.Context, f SearchFilter) ([]*Event, error)
}

// PointGranter 는 제출 흐름이 쓰는 지급 연산 모음. points.Service 가 구현한다.
type PointGranter interface {
	GrantSubmission(ctx context.Context, memberID string) (string, error)
	GrantAdditionalSubmission(ctx context.Context, memberID string) (string, error)
	GrantComboBonus(ctx context.Context, memberID string, count int) (string, error)
	GrantRankingBonus(ctx context.Context, memberID string, rank int) (string, error)
	GrantCurationRequest(ctx context.Context, memberID string) (string, error)
}

// Ranker 는 채널 순위 조회 인터페이스. ranking.Service 가 구현한다.
type Ranker interface {
	RankOf(ctx context.Context, channelID, memberID string, now time.Time) (int, error)
}

// MemberDirectory 는 멤버 조회 인터페이스. members.Service 가 구현한다.
type MemberDirectory interface {
	Get(ctx context.Context, userID string) (*members.Member, error)
}

// Service 는 제출 기능의 비즈니스 로직.
type Service struct {
	repo      EventStore
	sched     *schedule.Schedule
	pointsSvc PointGranter
	rankSvc   Ranker
	memberSvc MemberDirectory
	maxPasses int
	clock     common.Clock
}

// NewService 는 새 제출 서비스를 만든다.
func NewService(
	repo EventStore,
	sched *schedule.Schedule,
	pointsSvc PointGranter,
	rankSvc Ranker,
	memberSvc MemberDirectory,
	maxPasses int,
	clock common.Clock,
) *Service {
	return &Service{
		repo:      repo,
		sched:     sched,
		pointsSvc: pointsSvc,
		rankSvc:   rankSvc,
		memberSvc: memberSvc,
		maxPasses: maxPasses,
		clock:     clock,
	}
}

// SubmitRequest 는 제출 명령에서 추출한 필드 모음.
// 봇 경계에서 이미 검증을 끝내고 들어온다.
type SubmitRequest struct {
	MemberID   string
	ContentURL string
	Title      string
	Category   string
	Tags       string
	Curation   bool // 큐레이션 검토 신청
}

// SubmitResult 는 제출 처리 결과.
type SubmitResult struct {
	RoundNumber   int
	DueDate       string   // 출력용으로 포맷된 마감일
	Additional    bool     // 이미 채운 회차의 추가 제출이었나
	Notifications []string // 지급 알림 문구들 (순서대로 전송)
}

// Submit 은 글 제출을 처리한다.
//
// 규칙 평가 순서 (포인트 엔진 §규칙 1~4):
//  1. 회차 첫 제출이면 기본 포인트, 아니면 추가 제출 포인트만 주고 끝
//  2. 콤보 보너스 (이번 제출 자신은 자기 콤보에 포함되지 않는다)
//  3. 채널 순위 보너스 (이번 회차 1~3등)
//  4. 큐레이션 신청 보너스
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	member, err := s.memberSvc.Get(ctx, req.MemberID)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	round, err := s.sched.CurrentRound(now)
	if err != nil {
		return nil, err // 시즌 종료
	}

	rawEvents, err := s.repo.GetHistory(ctx, req.MemberID)
	if err != nil {
		return nil, err
	}
	history := NewHistory(rawEvents)

	already, err := history.HasSubmittedCurrentRound(s.sched, now)
	if err != nil {
		return nil, err
	}

	event := &Event{
		MemberID:   req.MemberID,
		Kind:       KindSubmit,
		OccurredAt: now,
		ContentURL: req.ContentURL,
		Title:      req.Title,
		Category:   req.Category,
		Tags:       req.Tags,
		Curation:   req.Curation,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}

	result := &SubmitResult{
		RoundNumber: round.Number,
		DueDate:     common.FormatDate(round.DueDate),
		Additional:  already,
	}

	// 규칙 1: 추가 제출이면 작은 포인트만 주고 규칙 2~4는 건너뛴다.
	if already {
		text, err := s.pointsSvc.GrantAdditionalSubmission(ctx, req.MemberID)
		if err != nil {
			return nil, err
		}
		result.Notifications = append(result.Notifications, text)
		return result, nil
	}

	text, err := s.pointsSvc.GrantSubmission(ctx, req.MemberID)
	if err != nil {
		return nil, err
	}
	result.Notifications = append(result.Notifications, text)

	// 규칙 2: 콤보. 기록 직후의 이력으로 계산하지만 현재 회차는 어차피
	// 세지 않으므로 방금 제출은 영향이 없다.
	// 지급/저장 에러는 삼키지 않고 그대로 올린다 — 장부에 구멍이 난 채로
	// 성공 응답을 돌려주면 안 된다.
	updated := NewHistory(append(history.Events(), *event))
	combo, err := ContinuousSubmitCount(updated, s.sched, now)
	if err != nil {
		return nil, err
	}
	comboText, err := s.pointsSvc.GrantComboBonus(ctx, req.MemberID, combo)
	if err != nil {
		return nil, err
	}
	if comboText != "" {
		result.Notifications = append(result.Notifications, comboText)
	}

	// 규칙 3: 채널 순위. 방금 제출로 새로 순위에 든 경우에만 지급된다 —
	// 같은 회차의 추가 제출은 여기까지 오지 않는다.
	rank, err := s.rankSvc.RankOf(ctx, member.CoreChannelID, req.MemberID, now)
	if err != nil {
		return nil, err
	}
	rankText, err := s.pointsSvc.GrantRankingBonus(ctx, req.MemberID, rank)
	if err != nil {
		return nil, err
	}
	if rankText != "" {
		result.Notifications = append(result.Notifications, rankText)
	}

	// 규칙 4: 큐레이션 신청
	if req.Curation {
		curationText, err := s.pointsSvc.GrantCurationRequest(ctx, req.MemberID)
		if err != nil {
			return nil, err
		}
		result.Notifications = append(result.Notifications, curationText)
	}

	log.WithFields(log.Fields{
		"member_id": req.MemberID,
		"round":     round.Number,
		"combo":     combo,
	}).Info("글 제출 처리 완료")

	return result, nil
}

// PassResult 는 패스 처리 결과.
type PassResult struct {
	RoundNumber int
	UsedPasses  int // 이번 패스를 포함한 누적 사용 횟수
	MaxPasses   int
	Message     string
}

// Pass 는 패스 사용을 처리한다. 거절 사유 에러는 사용자에게 그대로 보여진다.
func (s *Service) Pass(ctx context.Context, memberID string) (*PassResult, error) {
	if _, err := s.memberSvc.Get(ctx, memberID); err != nil {
		return nil, err
	}

	now := s.clock()
	round, err := s.sched.CurrentRound(now)
	if err != nil {
		return nil, err
	}

	rawEvents, err := s.repo.GetHistory(ctx, memberID)
	if err != nil {
		return nil, err
	}
	history := NewHistory(rawEvents)

	if err := CheckPassAllowed(history, s.maxPasses, s.sched, now); err != nil {
		return nil, err
	}

	event := &Event{
		MemberID:   memberID,
		Kind:       KindPass,
		OccurredAt: now,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}

	used := history.PassCount() + 1
	log.WithFields(log.Fields{
		"member_id": memberID,
		"round":     round.Number,
		"used":      used,
	}).Info("패스 사용")

	return &PassResult{
		RoundNumber: round.Number,
		UsedPasses:  used,
		MaxPasses:   s.maxPasses,
		Message: fmt.Sprintf("🌴 <@%s>님이 %d회차를 패스했어요 (%d/%d)",
			memberID, round.Number, used, s.maxPasses),
	}, nil
}

// HasSatisfiedCurrentRound 는 멤버가 이번 회차를 이미 채웠는지 반환한다.
// 제출뿐 아니라 패스로 채운 회차도 포함한다. History 의
// HasSubmittedCurrentRound(제출만)와 다른 계약이라 이름을 구분한다.
// 리마인더 잡이 쓴다.
func (s *Service) HasSatisfiedCurrentRound(ctx context.Context, memberID string) (bool, error) {
	rawEvents, err := s.repo.GetHistory(ctx, memberID)
	if err != nil {
		return false, err
	}
	now := s.clock()
	history := NewHistory(rawEvents)

	// 패스로 채운 회차도 리마인더 대상에서 빼야 하므로 제출/패스 둘 다 본다.
	ok, err := history.HasSubmittedCurrentRound(s.sched, now)
	if err != nil || ok {
		return ok, err
	}
	recent, err := history.MostRecent()
	if err != nil {
		return false, nil
	}
	if recent.IsPass() {
		return s.sched.IsWithinWindow(recent.OccurredAt, 0, now)
	}
	return false, nil
}

// Schedule 은 서비스가 쓰는 일정에 접근한다. 잡/API 쪽에서 쓴다.
func (s *Service) Schedule() *schedule.Schedule {
	return s.sched
}

// SearchContents 는 제출물 검색을 저장소에 위임한다. HTTP API 가 쓴다.
func (s *Service) SearchContents(ctx context.Context, f SearchFilter) ([]*Event, error) {
	return s.repo.Search(ctx, f)
}

// GetContent 는 제출물 하나를 찾는다. 없으면 ErrContentNotFound.
func (s *Service) GetContent(ctx context.Context, id int64) (*Event, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, common.ErrContentNotFound
	}
	return e, nil
}
