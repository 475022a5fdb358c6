// Package api — handlers.go 는 API 엔드포인트 구현이다.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/Daco2020/ttobot-sub000/internal/common"
	"github.com/Daco2020/ttobot-sub000/internal/features/submission"
)

// contentResponse 는 제출물의 API 표현.
type contentResponse struct {
	ID         int64     `json:"id"`
	MemberID   string    `json:"member_id"`
	ContentURL string    `json:"content_url"`
	Title      string    `json:"title"`
	Category   string    `json:"category,omitempty"`
	Tags       string    `json:"tags,omitempty"`
	Curation   bool      `json:"curation"`
	OccurredAt time.Time `json:"occurred_at"`
}

func toContentResponse(e *submission.Event) contentResponse {
	return contentResponse{
		ID:         e.ID,
		MemberID:   e.MemberID,
		ContentURL: e.ContentURL,
		Title:      e.Title,
		Category:   e.Category,
		Tags:       e.Tags,
		Curation:   e.Curation,
		OccurredAt: e.OccurredAt,
	}
}

// handleHealth — GET /healthz
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListContents — GET /api/v1/contents?keyword=&member=&category=&limit=
func (s *Server) handleListContents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit 은 0 이상의 숫자여야 해요")
			return
		}
		limit = n
	}

	events, err := s.submission.SearchContents(r.Context(), submission.SearchFilter{
		Keyword:  q.Get("keyword"),
		MemberID: q.Get("member"),
		Category: q.Get("category"),
		Limit:    limit,
	})
	if err != nil {
		log.WithError(err).Error("제출물 검색 실패")
		writeError(w, http.StatusInternalServerError, "검색에 실패했어요")
		return
	}

	out := make([]contentResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toContentResponse(e))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": out, "count": len(out)})
}

// handleGetContent — GET /api/v1/contents/{id}
func (s *Server) handleGetContent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "잘못된 글번호예요")
		return
	}

	event, err := s.submission.GetContent(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrContentNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		log.WithError(err).WithField("content_id", id).Error("제출물 조회 실패")
		writeError(w, http.StatusInternalServerError, "조회에 실패했어요")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": toContentResponse(event)})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("JSON 응답 인코딩 실패")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
