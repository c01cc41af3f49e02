package main

import (
	"github.com/agentdeck/agentdeck/cmd"
)

func main() {
	cmd.Execute()
}
