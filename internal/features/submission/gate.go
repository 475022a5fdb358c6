// Package submission — gate.go 는 패스 사용 가능 여부를 검사한다.
// 패스 이벤트를 기록하기 전에 반드시 이 검사를 통과해야 한다.
package submission

import (
	"time"

	"github.com/Daco2020/ttobot-sub000/internal/common"
	"github.com/Daco2020/ttobot-sub000/internal/features/schedule"
)

// CheckPassAllowed 는 패스 사용 규칙을 검사한다.
// 거절 사유는 에러 메시지 그대로 사용자에게 보여진다.
//
//   - 누적 패스가 maxPasses 이상 → ErrNoPassesRemaining
//   - 직전에 패스를 사용 → ErrConsecutivePass
func CheckPassAllowed(h *History, maxPasses int, s *schedule.Schedule, now time.Time) error {
	if h.PassCount() >= maxPasses {
		return common.ErrNoPassesRemaining
	}

	passed, err := h.PassedPreviousRound(s, now)
	if err != nil {
		return err
	}
	if passed {
		return common.ErrConsecutivePass
	}
	return nil
}
