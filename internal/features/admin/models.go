// Package admin 은 관리자 인증과 수동 포인트 지급을 담당한다.
// models.go 는 세션과 로그인 시도 기록 구조를 정의한다.
package admin

import "time"

// Session 은 관리자 로그인 세션. 토큰이 만료되면 다시 로그인해야 한다.
type Session struct {
	ID        int64     `db:"id"`
	MemberID  string    `db:"member_id"`
	Token     string    `db:"token"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

// Expired 는 세션이 만료되었는지 반환한다.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// LoginAttempt 는 로그인 시도 한 건. 실패 기록으로 무차별 대입을 막는다.
type LoginAttempt struct {
	ID        int64     `db:"id"`
	MemberID  string    `db:"member_id"`
	Success   bool      `db:"success"`
	CreatedAt time.Time `db:"created_at"`
}
