// Package submission — streak.go 는 연속 제출(콤보) 횟수를 계산한다.
package submission

import (
	"time"

	"github.com/Daco2020/ttobot-sub000/internal/features/schedule"
)

// ContinuousSubmitCount 는 현재 회차 직전부터 거꾸로 걸어가며
// 연속으로 제출된 회차 수를 센다.
//
// 규칙:
//   - 현재(진행 중) 회차는 세지 않는다
//   - 제출이 있는 회차 → 콤보 +1, 계속
//   - 패스만 있는 회차 → 콤보를 깨지 않고 건너뛴다
//   - 아무 활동도 없는 회차 → 콤보 종료
//   - 이력이 비어 있으면 0 (에러 아님 — 첫 참여)
func ContinuousSubmitCount(h *History, s *schedule.Schedule, now time.Time) (int, error) {
	if h.Len() == 0 {
		return 0, nil
	}

	events := h.Events()
	count := 0

	// roundsBack=1 이 현재 회차 직전. 일정 시작보다 앞으로 가면
	// IsWithinWindow 가 false 를 돌려주므로 빈 회차로 취급되어 끝난다.
	for back := 1; back <= s.Len(); back++ {
		hasSubmit := false
		hasPass := false
		for _, e := range events {
			ok, err := s.IsWithinWindow(e.OccurredAt, back, now)
			if err != nil {
				return 0, err
			}
			if !ok {
				continue
			}
			if e.IsSubmit() {
				hasSubmit = true
			} else if e.IsPass() {
				hasPass = true
			}
		}

		switch {
		case hasSubmit:
			count++
		case hasPass:
			// 패스는 콤보를 유지한 채 그 이전 회차로 넘어간다
		default:
			return count, nil
		}
	}
	return count, nil
}
