// Package ranking 은 코어 채널 안에서 이번 회차를 가장 먼저 제출한
// 멤버 1~3등을 가려낸다.
package ranking

import (
	"sort"
	"time"
)

// Entry 는 순위 후보 한 명 — 이번 회차를 제출로 채운 멤버와 그 제출 시각.
type Entry struct {
	MemberID    string
	SubmittedAt time.Time
}

// TopRanked 는 제출 시각 오름차순으로 상위 3명까지 반환한다.
// 이번 회차를 채우지 못한 멤버는 entries 에 들어오지 않는다 (뒤로 밀리는
// 것이 아니라 아예 제외). 시각이 같으면 들어온 순서를 유지한다 (stable).
func TopRanked(entries []Entry) []Entry {
	ranked := make([]Entry, len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].SubmittedAt.Before(ranked[j].SubmittedAt)
	})
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}
	return ranked
}

// RankOf 는 멤버의 순위(1~3)를 반환한다. 순위 밖이면 0.
func RankOf(ranked []Entry, memberID string) int {
	for i, e := range ranked {
		if e.MemberID == memberID {
			return i + 1
		}
	}
	return 0
}
