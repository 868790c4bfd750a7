package main

import (
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/rpick/internal/commands"
)

func main() {
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	if err := commands.New().Execute(); err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
