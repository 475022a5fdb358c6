// Package bookmark — service.go 는 북마크 추가/해제/목록 로직을 담당한다.
package bookmark

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/Daco2020/ttobot-sub000/internal/common"
	"github.com/Daco2020/ttobot-sub000/internal/features/submission"
)

// Service 는 북마크 기능의 비즈니스 로직.
type Service struct {
	repo       *Repository
	submission *submission.Service
}

// NewService 는 새 북마크 서비스를 만든다.
func NewService(repo *Repository, submissionSvc *submission.Service) *Service {
	return &Service{repo: repo, submission: submissionSvc}
}

// Add 는 글을 북마크한다. 글이 없으면 ErrContentNotFound,
// 이미 활성 북마크면 ErrAlreadyBookmarked.
func (s *Service) Add(ctx context.Context, memberID string, contentID int64, note string) (*submission.Event, error) {
	content, err := s.submission.GetContent(ctx, contentID)
	if err != nil {
		return nil, err
	}

	latest, err := s.repo.Latest(ctx, memberID, contentID)
	if err != nil {
		return nil, err
	}
	if latest != nil && latest.Status == StatusActive {
		return nil, common.ErrAlreadyBookmarked
	}

	if err := s.repo.Append(ctx, &Bookmark{
		MemberID:  memberID,
		ContentID: contentID,
		Status:    StatusActive,
		Note:      note,
	}); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"member_id":  memberID,
		"content_id": contentID,
	}).Debug("북마크 추가")
	return content, nil
}

// Cancel 은 북마크를 해제한다. 취소 기록을 덧붙일 뿐 지우지 않는다.
func (s *Service) Cancel(ctx context.Context, memberID string, contentID int64) error {
	latest, err := s.repo.Latest(ctx, memberID, contentID)
	if err != nil {
		return err
	}
	if latest == nil || latest.Status != StatusActive {
		return common.ErrContentNotFound
	}
	return s.repo.Append(ctx, &Bookmark{
		MemberID:  memberID,
		ContentID: contentID,
		Status:    StatusCancelled,
	})
}

// List 는 멤버의 활성 북마크와 해당 글 정보를 반환한다.
func (s *Service) List(ctx context.Context, memberID string) ([]*submission.Event, error) {
	bookmarks, err := s.repo.ListActive(ctx, memberID)
	if err != nil {
		return nil, err
	}

	var contents []*submission.Event
	for _, b := range bookmarks {
		content, err := s.submission.GetContent(ctx, b.ContentID)
		if err != nil {
			// 글이 사라진 북마크는 목록에서만 건너뛴다
			log.WithField("content_id", b.ContentID).Warn("북마크된 글을 찾지 못함")
			continue
		}
		contents = append(contents, content)
	}
	return contents, nil
}
