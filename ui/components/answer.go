package components

import (
	"github.com/agentdeck/agentdeck/internal/markdown"
	"github.com/agentdeck/agentdeck/ui/styles"
)

func RenderAnswer(answerMarkdown string) string {
	if answerMarkdown == "" {
		return ""
	}

	rendered := markdown.RenderTerm(answerMarkdown)
	return styles.AnswerStyle().Render(rendered) + "\n\n"
}
