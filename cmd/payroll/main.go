package main

import (
	"os"

	"github.com/felipelastra26/lumin-payroll-calculator/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
