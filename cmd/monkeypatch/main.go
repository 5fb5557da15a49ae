package main

import (
	"os"

	"github.com/NotAdityaPawar/monkeypatch/cmd/monkeypatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
