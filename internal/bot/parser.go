package bot

import "strings"

// CommandParser 는 !, ., / 접두사가 붙은 한글 명령을 파싱한다.
type CommandParser struct {
	validPrefixes []string
}

// NewCommandParser 는 명령 파서를 만든다.
func NewCommandParser() *CommandParser {
	return &CommandParser{
		validPrefixes: []string{"!", ".", "/"},
	}
}

// ParseCommand 는 텍스트를 명령과 인자로 나눈다.
// 접두사가 없거나 명령이 비어 있으면 (,"",nil,false).
func (p *CommandParser) ParseCommand(text string) (string, []string, bool) {
	text = strings.TrimSpace(text)

	hasPrefix := false
	for _, prefix := range p.validPrefixes {
		if strings.HasPrefix(text, prefix) {
			text = strings.TrimPrefix(text, prefix)
			hasPrefix = true
			break
		}
	}

	if !hasPrefix {
		return "", nil, false
	}

	text = strings.TrimSpace(text)
	parts := strings.Fields(text)

	if len(parts) == 0 {
		return "", nil, false
	}

	command := strings.ToLower(parts[0])
	var args []string
	if len(parts) > 1 {
		args = parts[1:]
	}

	return command, args, true
}
