package components

import (
	"github.com/agentdeck/agentdeck/ui/styles"
)

func RenderInput(input, pendingImage string, width int) string {
	inputStyle := styles.InputStyle(width)
	if pendingImage != "" {
		input += "  [image: " + pendingImage + "]"
	}
	return inputStyle.Render(input)
}
