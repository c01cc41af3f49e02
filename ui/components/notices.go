package components

import (
	"strings"

	"github.com/agentdeck/agentdeck/ui/styles"
)

func RenderNotices(notices []string) string {
	if len(notices) == 0 {
		return ""
	}

	var b strings.Builder
	noticeStyle := styles.NoticeStyle()

	for _, notice := range notices {
		b.WriteString(noticeStyle.Render(notice) + "\n")
	}
	b.WriteString("\n")

	return b.String()
}
