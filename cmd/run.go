package cmd

import (
	"github.com/abhisek/markbook/internal/app"
	"github.com/abhisek/markbook/internal/dataset"
)

// runApp builds dependencies and launches the TUI.
func runApp(args []string) error {
	return app.Run(app.Options{
		Cache:    dataset.NewCache(),
		DataPath: resolveDataPath(args),
	})
}
