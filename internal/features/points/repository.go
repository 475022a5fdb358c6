// Package points — repository.go 는 point_histories 테이블을 다룬다.
// 장부는 append-only: INSERT 와 SELECT 만 있고 UPDATE/DELETE 는 없다.
package points

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository 는 포인트 장부 저장소.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository 는 새 포인트 레포지토리를 만든다.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Append 는 지급 기록 한 건을 장부에 추가한다.
func (r *Repository) Append(ctx context.Context, a *Award) error {
	query := `
		INSERT INTO point_histories (member_id, amount, reason, category, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, a.MemberID, a.Amount, a.Reason, a.Category, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("포인트 기록 실패: %w", err)
	}
	return nil
}

// FetchByMember 는 한 멤버의 지급 기록을 시간 오름차순으로 반환한다.
func (r *Repository) FetchByMember(ctx context.Context, memberID string) ([]*Award, error) {
	query := `
		SELECT id, member_id, amount, reason, category, created_at
		FROM point_histories
		WHERE member_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.Query(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("포인트 내역 조회 실패: %w", err)
	}
	defer rows.Close()

	var awards []*Award
	for rows.Next() {
		var a Award
		if err := rows.Scan(&a.ID, &a.MemberID, &a.Amount, &a.Reason, &a.Category, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("포인트 내역 스캔 실패: %w", err)
		}
		awards = append(awards, &a)
	}
	return awards, nil
}

// SumByMember 는 멤버의 총 포인트를 반환한다.
// 총점은 별도 컬럼이 아니라 장부의 SUM 이다.
func (r *Repository) SumByMember(ctx context.Context, memberID string) (int64, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM point_histories WHERE member_id = $1`
	var total int64
	if err := r.db.QueryRow(ctx, query, memberID).Scan(&total); err != nil {
		return 0, fmt.Errorf("총점 조회 실패: %w", err)
	}
	return total, nil
}

// TopTotals 는 총점 상위 멤버 목록을 반환한다. 점수표 명령에 쓴다.
func (r *Repository) TopTotals(ctx context.Context, limit int) ([]MemberTotal, error) {
	query := `
		SELECT member_id, SUM(amount) AS total
		FROM point_histories
		GROUP BY member_id
		ORDER BY total DESC, member_id
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("점수표 조회 실패: %w", err)
	}
	defer rows.Close()

	var totals []MemberTotal
	for rows.Next() {
		var t MemberTotal
		if err := rows.Scan(&t.MemberID, &t.Total); err != nil {
			return nil, fmt.Errorf("점수표 스캔 실패: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, nil
}
