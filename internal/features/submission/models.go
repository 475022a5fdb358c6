// Package submission 은 회차별 글 제출과 패스를 관리한다.
// models.go 는 제출 이벤트 구조를 정의한다.
package submission

import "time"

// Kind 는 이벤트 종류.
type Kind string

const (
	KindSubmit Kind = "submit" // 글 제출
	KindPass   Kind = "pass"   // 패스 사용
)

// Event 는 한 멤버의 회차 활동 기록 하나.
// 생성 후 절대 수정/삭제하지 않는다 (append-only).
type Event struct {
	ID         int64     `db:"id"`
	MemberID   string    `db:"member_id"`   // Slack user ID
	Kind       Kind      `db:"kind"`        // submit | pass
	OccurredAt time.Time `db:"occurred_at"` // 기록된 시각 (마감일이 아님)
	ContentURL string    `db:"content_url"` // 제출물 링크 (패스면 빈 문자열)
	Title      string    `db:"title"`
	Category   string    `db:"category"`
	Tags       string    `db:"tags"` // 쉼표 구분
	Curation   bool      `db:"curation"` // 큐레이션 검토 신청 여부
	CreatedAt  time.Time `db:"created_at"`
}

// IsSubmit 은 제출 이벤트인지 반환한다.
func (e Event) IsSubmit() bool { return e.Kind == KindSubmit }

// IsPass 는 패스 이벤트인지 반환한다.
func (e Event) IsPass() bool { return e.Kind == KindPass }
