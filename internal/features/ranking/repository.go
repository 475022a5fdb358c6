// Package ranking — repository.go 는 이번 회차 채널별 제출 현황을 조회한다.
package ranking

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository 는 순위 산정용 조회 전담 저장소.
// contents/members 테이블을 읽기만 한다.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository 는 새 순위 레포지토리를 만든다.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// ChannelSubmissions 는 코어 채널 멤버들의 이번 회차 첫 제출 시각을 반환한다.
// 기간은 [windowStart, windowEnd) 반개구간 — 호출자가 회차 경계 날짜를
// 자정 기준 시각으로 바꿔서 넘긴다. windowStart 가 zero 면 시작 제한이 없다
// (1회차).
//
// 스냅샷 조회다: 호출 직후 다른 멤버의 제출이 끼어들 수 있고,
// 그 정도의 어긋남은 순위 보너스에서 허용한다.
func (r *Repository) ChannelSubmissions(ctx context.Context, channelID string, windowStart, windowEnd time.Time) ([]Entry, error) {
	query := `
		SELECT c.member_id, MIN(c.occurred_at) AS first_submit
		FROM contents c
		JOIN members m ON m.user_id = c.member_id AND m.deleted_at IS NULL
		WHERE m.core_channel_id = $1
		  AND c.kind = 'submit'
		  AND ($2::timestamptz IS NULL OR c.occurred_at >= $2)
		  AND c.occurred_at < $3
		GROUP BY c.member_id
		ORDER BY first_submit, MIN(c.id)
	`
	var start interface{}
	if !windowStart.IsZero() {
		start = windowStart
	}

	rows, err := r.db.Query(ctx, query, channelID, start, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("채널 제출 현황 조회 실패: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.MemberID, &e.SubmittedAt); err != nil {
			return nil, fmt.Errorf("제출 현황 스캔 실패: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
