// Package bookmark 는 멤버가 저장한 글 목록을 관리한다.
// models.go 는 북마크 구조를 정의한다.
package bookmark

import "time"

// Status 는 북마크 상태.
type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
)

// Bookmark 는 북마크 상태 기록 하나.
// 수정 대신 새 상태 기록을 덧붙이고, 가장 최근 기록이 현재 상태다.
type Bookmark struct {
	ID        int64     `db:"id"`
	MemberID  string    `db:"member_id"`
	ContentID int64     `db:"content_id"`
	Status    Status    `db:"status"`
	Note      string    `db:"note"` // 멤버가 남긴 메모 (선택)
	CreatedAt time.Time `db:"created_at"`
}
