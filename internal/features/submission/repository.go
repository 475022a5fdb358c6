// Package submission — repository.go 는 contents 테이블을 다룬다.
// 제출/패스 기록은 append-only: 한 번 쓰면 수정/삭제하지 않는다.
package submission

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository 는 제출 이벤트 저장소.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository 는 새 제출 레포지토리를 만든다.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const eventColumns = `id, member_id, kind, occurred_at, content_url, title, category, tags, curation, created_at`

func scanEvent(row pgx.Row) (*Event, error) {
	var e Event
	err := row.Scan(&e.ID, &e.MemberID, &e.Kind, &e.OccurredAt, &e.ContentURL,
		&e.Title, &e.Category, &e.Tags, &e.Curation, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create 는 제출/패스 이벤트 한 건을 추가한다.
func (r *Repository) Create(ctx context.Context, e *Event) error {
	query := `
		INSERT INTO contents (member_id, kind, occurred_at, content_url, title, category, tags, curation)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		e.MemberID, e.Kind, e.OccurredAt, e.ContentURL, e.Title, e.Category, e.Tags, e.Curation,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("제출 기록 실패: %w", err)
	}
	return nil
}

// GetHistory 는 멤버의 전체 제출 이력을 반환한다.
// 정렬은 History 생성자가 다시 하므로 여기서는 편의상만 정렬한다.
func (r *Repository) GetHistory(ctx context.Context, memberID string) ([]Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM contents WHERE member_id = $1 ORDER BY occurred_at, id`, eventColumns)
	rows, err := r.db.Query(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("제출 이력 조회 실패: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("제출 이력 스캔 실패: %w", err)
		}
		events = append(events, *e)
	}
	return events, nil
}

// GetByID 는 제출물 하나를 찾는다. 없으면 (nil, nil).
func (r *Repository) GetByID(ctx context.Context, id int64) (*Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM contents WHERE id = $1 AND kind = 'submit'`, eventColumns)
	e, err := scanEvent(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("제출물 조회 실패 (id=%d): %w", id, err)
	}
	return e, nil
}

// SearchFilter 는 제출물 검색 조건.
type SearchFilter struct {
	Keyword  string // 제목/태그 부분 일치
	MemberID string
	Category string
	Limit    int
}

// Search 는 제출물을 검색한다. 웹 프론트의 검색 API 가 쓴다.
// 패스 기록은 검색 대상이 아니다.
func (r *Repository) Search(ctx context.Context, f SearchFilter) ([]*Event, error) {
	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query := fmt.Sprintf(`
		SELECT %s FROM contents
		WHERE kind = 'submit'
		  AND ($1 = '' OR title ILIKE '%%' || $1 || '%%' OR tags ILIKE '%%' || $1 || '%%')
		  AND ($2 = '' OR member_id = $2)
		  AND ($3 = '' OR category = $3)
		ORDER BY occurred_at DESC, id DESC
		LIMIT $4
	`, eventColumns)

	rows, err := r.db.Query(ctx, query, f.Keyword, f.MemberID, f.Category, limit)
	if err != nil {
		return nil, fmt.Errorf("제출물 검색 실패: %w", err)
	}
	defer rows.Close()

	var out []*Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("검색 결과 스캔 실패: %w", err)
		}
		out = append(out, e)
	}
	return out, nil
}
