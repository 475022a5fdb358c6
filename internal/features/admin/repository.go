// Package admin — repository.go 는 admin_sessions, admin_login_attempts
// 테이블을 다룬다.
package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository 는 관리자 세션/로그인 기록 저장소.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository 는 새 관리자 레포지토리를 만든다.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateSession 은 새 세션을 저장한다.
func (r *Repository) CreateSession(ctx context.Context, s *Session) error {
	query := `
		INSERT INTO admin_sessions (member_id, token, expires_at)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.Exec(ctx, query, s.MemberID, s.Token, s.ExpiresAt)
	if err != nil {
		return fmt.Errorf("세션 저장 실패: %w", err)
	}
	return nil
}

// LatestSession 은 멤버의 가장 최근 세션을 반환한다. 없으면 (nil, nil).
func (r *Repository) LatestSession(ctx context.Context, memberID string) (*Session, error) {
	query := `
		SELECT id, member_id, token, expires_at, created_at
		FROM admin_sessions
		WHERE member_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`
	var s Session
	err := r.db.QueryRow(ctx, query, memberID).Scan(
		&s.ID, &s.MemberID, &s.Token, &s.ExpiresAt, &s.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("세션 조회 실패: %w", err)
	}
	return &s, nil
}

// RecordAttempt 는 로그인 시도 한 건을 기록한다.
func (r *Repository) RecordAttempt(ctx context.Context, memberID string, success bool) error {
	query := `
		INSERT INTO admin_login_attempts (member_id, success)
		VALUES ($1, $2)
	`
	_, err := r.db.Exec(ctx, query, memberID, success)
	if err != nil {
		return fmt.Errorf("로그인 시도 기록 실패: %w", err)
	}
	return nil
}

// CountRecentFailures 는 since 이후의 연속 실패 횟수를 센다.
// 성공 기록이 나오면 그 이전 실패는 세지 않는다.
func (r *Repository) CountRecentFailures(ctx context.Context, memberID string, since time.Time) (int, error) {
	query := `
		SELECT success
		FROM admin_login_attempts
		WHERE member_id = $1 AND created_at >= $2
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, memberID, since)
	if err != nil {
		return 0, fmt.Errorf("로그인 시도 조회 실패: %w", err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var success bool
		if err := rows.Scan(&success); err != nil {
			return 0, fmt.Errorf("로그인 시도 스캔 실패: %w", err)
		}
		if success {
			break
		}
		count++
	}
	return count, nil
}
