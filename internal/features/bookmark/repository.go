// Package bookmark — repository.go 는 bookmarks 테이블을 다룬다.
// 상태 변경도 UPDATE 가 아니라 새 기록 INSERT 다.
package bookmark

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository 는 북마크 저장소.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository 는 새 북마크 레포지토리를 만든다.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Append 는 북마크 상태 기록 한 건을 추가한다.
func (r *Repository) Append(ctx context.Context, b *Bookmark) error {
	query := `
		INSERT INTO bookmarks (member_id, content_id, status, note)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(ctx, query, b.MemberID, b.ContentID, b.Status, b.Note)
	if err != nil {
		return fmt.Errorf("북마크 기록 실패: %w", err)
	}
	return nil
}

// Latest 는 멤버의 특정 글에 대한 가장 최근 상태 기록을 반환한다.
// 기록이 없으면 (nil, nil).
func (r *Repository) Latest(ctx context.Context, memberID string, contentID int64) (*Bookmark, error) {
	query := `
		SELECT id, member_id, content_id, status, note, created_at
		FROM bookmarks
		WHERE member_id = $1 AND content_id = $2
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`
	var b Bookmark
	err := r.db.QueryRow(ctx, query, memberID, contentID).Scan(
		&b.ID, &b.MemberID, &b.ContentID, &b.Status, &b.Note, &b.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("북마크 조회 실패: %w", err)
	}
	return &b, nil
}

// ListActive 는 멤버의 현재 활성 북마크 목록을 반환한다.
// 글별 가장 최근 기록의 상태가 active 인 것만 남긴다.
func (r *Repository) ListActive(ctx context.Context, memberID string) ([]*Bookmark, error) {
	query := `
		SELECT DISTINCT ON (content_id)
		       id, member_id, content_id, status, note, created_at
		FROM bookmarks
		WHERE member_id = $1
		ORDER BY content_id, created_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("북마크 목록 조회 실패: %w", err)
	}
	defer rows.Close()

	var out []*Bookmark
	for rows.Next() {
		var b Bookmark
		if err := rows.Scan(&b.ID, &b.MemberID, &b.ContentID, &b.Status, &b.Note, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("북마크 스캔 실패: %w", err)
		}
		if b.Status == StatusActive {
			out = append(out, &b)
		}
	}
	return out, nil
}
