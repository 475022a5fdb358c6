// Package submission — history.go 는 한 멤버의 제출 이력 질의를 담당한다.
package submission

import (
	"sort"
	"time"

	"github.com/Daco2020/ttobot-sub000/internal/common"
	"github.com/Daco2020/ttobot-sub000/internal/features/schedule"
)

// History 는 한 멤버의 제출/패스 이벤트 목록.
// 저장소가 순서를 보장해도 믿지 않고 생성 시점에 occurred_at 오름차순으로
// 다시 정렬한다.
type History struct {
	events []Event
}

// NewHistory 는 이벤트 목록으로 History 를 만든다.
func NewHistory(events []Event) *History {
	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OccurredAt.Before(sorted[j].OccurredAt)
	})
	return &History{events: sorted}
}

// Len 은 이벤트 개수를 반환한다.
func (h *History) Len() int { return len(h.events) }

// Events 는 정렬된 이벤트 목록의 복사본을 반환한다.
func (h *History) Events() []Event {
	out := make([]Event, len(h.events))
	copy(out, h.events)
	return out
}

// MostRecent 는 가장 최근 이벤트를 반환한다.
// 이력이 비어 있으면 ErrEmptyHistory — 호출자는 "첫 참여"로 처리한다.
func (h *History) MostRecent() (Event, error) {
	if len(h.events) == 0 {
		return Event{}, common.ErrEmptyHistory
	}
	return h.events[len(h.events)-1], nil
}

// PassCount 는 전체 이력에서 패스 사용 횟수를 센다.
// 최근 회차만이 아니라 기수 전체 누적이다.
func (h *History) PassCount() int {
	count := 0
	for _, e := range h.events {
		if e.IsPass() {
			count++
		}
	}
	return count
}

// HasSubmittedCurrentRound 는 현재 회차를 이미 제출로 채웠는지 반환한다.
// 가장 최근 이벤트가 제출이고 그 시각이 현재 회차 기간 안일 때만 true.
func (h *History) HasSubmittedCurrentRound(s *schedule.Schedule, now time.Time) (bool, error) {
	recent, err := h.MostRecent()
	if err != nil {
		return false, nil // 이력 없음 = 아직 제출 전
	}
	if !recent.IsSubmit() {
		return false, nil
	}
	return s.IsWithinWindow(recent.OccurredAt, 0, now)
}

// PassedPreviousRound 는 직전 회차에 패스를 사용했는지 반환한다.
// 가장 최근 이벤트가 패스이고 그 시각이 직전 회차 기간 — 현재 인덱스에서
// 두 칸 뒤 마감일 초과, 한 칸 뒤 마감일 이하 — 안일 때 true.
// 시작점을 두 칸 뒤로 잡는 것은 원래 운영 정책 그대로다. "연속 패스 금지"를
// 직전 패스 가능 기간 전체를 보는 방식으로 구현한 것이다.
func (h *History) PassedPreviousRound(s *schedule.Schedule, now time.Time) (bool, error) {
	recent, err := h.MostRecent()
	if err != nil {
		return false, nil
	}
	if !recent.IsPass() {
		return false, nil
	}
	return s.IsWithinWindow(recent.OccurredAt, 1, now)
}
