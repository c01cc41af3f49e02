package components

import (
	"strings"

	"github.com/agentdeck/agentdeck/internal/models"
	"github.com/agentdeck/agentdeck/ui/styles"
)

func RenderAttachments(attachments []models.Attachment) string {
	if len(attachments) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.AttachmentHeaderStyle().Render("Attachments:") + "\n")
	attachmentStyle := styles.AttachmentStyle()
	for _, a := range attachments {
		b.WriteString(attachmentStyle.Render(a.Name+"  "+a.URL) + "\n")
	}
	b.WriteString("\n")

	return b.String()
}
