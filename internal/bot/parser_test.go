package bot

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParseCommand(t *testing.T) {
	p := NewCommandParser()

	Convey("명령 파싱", t, func() {
		Convey("접두사 붙은 명령을 인식한다", func() {
			cmd, args, ok := p.ParseCommand("!제출 https://blog.example.com/1 첫 글")
			So(ok, ShouldBeTrue)
			So(cmd, ShouldEqual, "제출")
			So(args, ShouldResemble, []string{"https://blog.example.com/1", "첫", "글"})
		})

		Convey(". 과 / 접두사도 허용한다", func() {
			cmd, _, ok := p.ParseCommand(".패스")
			So(ok, ShouldBeTrue)
			So(cmd, ShouldEqual, "패스")

			cmd, _, ok = p.ParseCommand("/내점수")
			So(ok, ShouldBeTrue)
			So(cmd, ShouldEqual, "내점수")
		})

		Convey("접두사가 없으면 명령이 아니다", func() {
			_, _, ok := p.ParseCommand("오늘 날씨 좋네요")
			So(ok, ShouldBeFalse)
		})

		Convey("접두사만 있으면 명령이 아니다", func() {
			_, _, ok := p.ParseCommand("!   ")
			So(ok, ShouldBeFalse)
		})

		Convey("앞뒤 공백을 무시한다", func() {
			cmd, args, ok := p.ParseCommand("  !북마크 12 나중에 읽기  ")
			So(ok, ShouldBeTrue)
			So(cmd, ShouldEqual, "북마크")
			So(args, ShouldResemble, []string{"12", "나중에", "읽기"})
		})

		Convey("영문 명령은 소문자로 정규화한다", func() {
			cmd, _, ok := p.ParseCommand("!HELP")
			So(ok, ShouldBeTrue)
			So(cmd, ShouldEqual, "help")
		})
	})
}
