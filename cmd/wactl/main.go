package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/cli/commands"
	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/cli/ui"
)

func main() {
	if err := commands.Execute(); err != nil {
		// Handle unknown command errors specially
		errMsg := err.Error()
		if strings.Contains(errMsg, "unknown command") {
			ui.PrintError("%s", errMsg)
			fmt.Println("\nRun 'wactl --help' for usage.")
		}
		os.Exit(1)
	}
}
