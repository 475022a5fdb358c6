// Package points 는 커뮤니티 포인트 지급과 장부를 관리한다.
// models.go 는 포인트 지급 기록 구조를 정의한다.
package points

import "time"

// Award 는 포인트 지급 기록 하나. 생성 후 절대 수정하지 않는다.
// 멤버별 전체 기록이 감사 로그이자 총점 계산의 근거다.
type Award struct {
	ID        int64     `db:"id"`
	MemberID  string    `db:"member_id"` // Slack user ID
	Amount    int       `db:"amount"`    // 항상 0 이상
	Reason    string    `db:"reason"`    // 지급 사유 (사용자에게 보여짐)
	Category  string    `db:"category"`  // 분류 태그
	CreatedAt time.Time `db:"created_at"`
}

// MemberTotal 은 점수표(리더보드) 한 줄.
type MemberTotal struct {
	MemberID string
	Total    int64
}
