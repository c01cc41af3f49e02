package components

import (
	"strings"

	"github.com/agentdeck/agentdeck/internal/models"
	"github.com/agentdeck/agentdeck/ui/styles"
)

func RenderStatus(status, endpoint string, ping models.PingStatus, loading bool, loadingDots int, width int) string {
	statusStyle := styles.StatusStyle(width)

	statusContent := status
	if loading || ping == models.PingRunning {
		statusContent += strings.Repeat(".", loadingDots)
	}
	if endpoint != "" {
		statusContent += "  " + endpoint
	}

	switch ping {
	case models.PingOK:
		statusContent += "  " + styles.PingOKStyle().Render("ping: ok")
	case models.PingFail:
		statusContent += "  " + styles.PingFailStyle().Render("ping: fail")
	case models.PingRunning:
		statusContent += "  " + styles.PingRunningStyle().Render("ping: running")
	}

	return statusStyle.Render(statusContent)
}
