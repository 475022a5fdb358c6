// Package middleware 는 로깅, 패닉 복구, rate-limiting 같은
// 이벤트 처리 전후 공통 동작을 모아둔다.
package middleware

import (
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/slack-go/slack/slackevents"
)

// LogMessage 는 들어온 메시지를 로깅한다.
// user_id, channel, 본문(앞 50자)을 남긴다.
func LogMessage(ev *slackevents.MessageEvent) {
	if ev == nil {
		return
	}

	text := truncate(ev.Text, 50)

	log.WithFields(log.Fields{
		"user_id":      ev.User,
		"channel_id":   ev.Channel,
		"channel_type": ev.ChannelType,
		"text":         text,
		"time":         time.Now().Format("15:04:05"),
	}).Debug("들어온 메시지")
}

// truncate 는 문자열을 n 글자로 자른다. 한글이 바이트 중간에서
// 잘리지 않도록 룬 단위로 센다.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
