// Package members — repository.go 는 members 테이블을 다룬다.
package members

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository 는 멤버 저장소.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository 는 새 멤버 레포지토리를 만든다.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create 는 새 멤버를 등록한다. 이미 있으면 아무것도 하지 않는다.
func (r *Repository) Create(ctx context.Context, m *Member) error {
	query := `
		INSERT INTO members (user_id, name, cohort, core_channel_id, is_admin)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, m.UserID, m.Name, m.Cohort, m.CoreChannelID, m.IsAdmin)
	if err != nil {
		return fmt.Errorf("멤버 등록 실패: %w", err)
	}
	return nil
}

// GetByUserID 는 Slack user ID 로 멤버를 찾는다. 없으면 (nil, nil).
func (r *Repository) GetByUserID(ctx context.Context, userID string) (*Member, error) {
	query := `
		SELECT id, user_id, name, cohort, core_channel_id, is_admin,
		       deleted_at, created_at, updated_at
		FROM members
		WHERE user_id = $1 AND deleted_at IS NULL
	`
	var m Member
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&m.ID, &m.UserID, &m.Name, &m.Cohort, &m.CoreChannelID,
		&m.IsAdmin, &m.DeletedAt, &m.CreatedAt, &m.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("멤버 조회 실패 (user_id=%s): %w", userID, err)
	}
	return &m, nil
}

// Exists 는 멤버가 등록되어 있는지 확인한다.
func (r *Repository) Exists(ctx context.Context, userID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM members WHERE user_id = $1 AND deleted_at IS NULL)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("멤버 확인 실패: %w", err)
	}
	return exists, nil
}

// UpdateInfo 는 멤버 정보를 갱신한다.
func (r *Repository) UpdateInfo(ctx context.Context, userID string, info UpdateInfo) error {
	query := `
		UPDATE members
		SET name = $2, cohort = $3, core_channel_id = $4, updated_at = NOW()
		WHERE user_id = $1
	`
	_, err := r.db.Exec(ctx, query, userID, info.Name, info.Cohort, info.CoreChannelID)
	if err != nil {
		return fmt.Errorf("멤버 갱신 실패: %w", err)
	}
	return nil
}

// ListAll 은 탈퇴하지 않은 멤버 전원을 반환한다. 리마인더 잡에 쓴다.
func (r *Repository) ListAll(ctx context.Context) ([]*Member, error) {
	query := `
		SELECT id, user_id, name, cohort, core_channel_id, is_admin,
		       deleted_at, created_at, updated_at
		FROM members
		WHERE deleted_at IS NULL
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("멤버 목록 조회 실패: %w", err)
	}
	defer rows.Close()

	var out []*Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.ID, &m.UserID, &m.Name, &m.Cohort, &m.CoreChannelID,
			&m.IsAdmin, &m.DeletedAt, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("멤버 스캔 실패: %w", err)
		}
		out = append(out, &m)
	}
	return out, nil
}
