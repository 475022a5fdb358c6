// Package schedule 은 기수 전체 일정(마감일 목록)에서 회차를 계산한다.
// 순수 계산만 있고 저장소나 네트워크에 의존하지 않는다.
//
// 회차 경계 규칙: 이전 마감일 초과 ~ 해당 마감일 이하 (시작 열림, 끝 닫힘).
// 마감일 당일에 한 제출은 그 날로 끝나는 회차에 속한다.
package schedule

import (
	"time"

	"github.com/Daco2020/ttobot-sub000/internal/common"
)

// Round 는 계산으로 얻는 현재 회차 정보. 저장하지 않는다.
type Round struct {
	Number  int       // 1부터 시작하는 회차 번호
	DueDate time.Time // 해당 회차의 마감일
}

// Schedule 은 오름차순 마감일 목록. 한 기수 동안 불변이다.
type Schedule struct {
	dueDates []time.Time
}

// New 는 마감일 목록으로 Schedule 을 만든다.
// 목록이 비었거나 오름차순이 아니면 에러.
func New(dueDates []time.Time) (*Schedule, error) {
	if len(dueDates) == 0 {
		return nil, common.ErrEmptySchedule
	}
	dates := make([]time.Time, len(dueDates))
	for i, d := range dueDates {
		dates[i] = common.DateOf(d)
		if i > 0 && !dates[i].After(dates[i-1]) {
			return nil, common.ErrEmptySchedule
		}
	}
	return &Schedule{dueDates: dates}, nil
}

// Len 은 전체 회차 수를 반환한다.
func (s *Schedule) Len() int {
	return len(s.dueDates)
}

// DueDates 는 마감일 목록의 복사본을 반환한다.
func (s *Schedule) DueDates() []time.Time {
	out := make([]time.Time, len(s.dueDates))
	copy(out, s.dueDates)
	return out
}

// CurrentRound 는 now 가 속한 회차를 반환한다.
// 오름차순 목록에서 now 의 날짜 이상인 첫 마감일이 현재 회차다.
// now 가 마지막 마감일을 지났으면 ErrOutOfSchedule — 시즌 종료.
func (s *Schedule) CurrentRound(now time.Time) (Round, error) {
	idx, err := s.currentIndex(now)
	if err != nil {
		return Round{}, err
	}
	return Round{Number: idx + 1, DueDate: s.dueDates[idx]}, nil
}

// IsWithinWindow 는 target 이 현재 회차에서 roundsBack 만큼 이전 회차의
// 기간 안에 있는지 검사한다. roundsBack=0 이면 현재 회차.
//
// 기간은 (due[current-roundsBack-1], due[current-roundsBack]] — 시작 열림,
// 끝 닫힘. 첫 회차의 시작은 열려 있다 (기수 시작 전 제출도 1회차로 본다).
func (s *Schedule) IsWithinWindow(target time.Time, roundsBack int, now time.Time) (bool, error) {
	idx, err := s.currentIndex(now)
	if err != nil {
		return false, err
	}

	endIdx := idx - roundsBack
	if endIdx < 0 {
		// 일정 시작 이전의 회차는 존재하지 않는다
		return false, nil
	}

	targetDate := common.DateOf(target)
	end := s.dueDates[endIdx]
	if targetDate.After(end) {
		return false, nil
	}
	if endIdx == 0 {
		return true, nil
	}
	start := s.dueDates[endIdx-1]
	return targetDate.After(start), nil
}

// currentIndex 는 현재 회차의 0-기준 인덱스를 찾는다.
func (s *Schedule) currentIndex(now time.Time) (int, error) {
	today := common.DateOf(now)
	for i, due := range s.dueDates {
		if !due.Before(today) {
			return i, nil
		}
	}
	return 0, common.ErrOutOfSchedule
}

// IsOver 는 시즌이 끝났는지(now 가 마지막 마감일 이후인지) 반환한다.
func (s *Schedule) IsOver(now time.Time) bool {
	_, err := s.currentIndex(now)
	return err != nil
}
