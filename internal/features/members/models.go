// Package members 는 기수 참여 멤버 명단을 관리한다.
// models.go 는 멤버 구조를 정의한다.
package members

import "time"

// Member 는 글쓰기 기수에 참여하는 멤버 한 명.
type Member struct {
	ID            int64     `db:"id"`
	UserID        string    `db:"user_id"` // Slack user ID (예: U012AB3CD)
	Name          string    `db:"name"`
	Cohort        string    `db:"cohort"`          // 기수 이름 (예: "10기")
	CoreChannelID string    `db:"core_channel_id"` // 소속 코어 채널 (순위 산정 기준)
	IsAdmin       bool      `db:"is_admin"`
	DeletedAt     *time.Time `db:"deleted_at"` // 탈퇴 시각 (soft delete)
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// UpdateInfo 는 멤버 정보 갱신에 쓰는 필드 모음.
type UpdateInfo struct {
	Name          string
	Cohort        string
	CoreChannelID string
}
