package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/markbook/internal/dataset"
)

var rootCmd = &cobra.Command{
	Use:   "markbook [dataset]",
	Short: "Student marks dashboard for the terminal",
	Long: "Markbook — terminal dashboard that loads a marks table, classifies every\n" +
		"student against adjustable pass thresholds, and charts the outcome.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDataPath returns the dataset path: a positional argument wins,
// then the MARKBOOK_DATA env var. Empty means no dataset was named.
func resolveDataPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return os.Getenv("MARKBOOK_DATA")
}

// loadPath reads a dataset file, picking the workbook loader by extension.
func loadPath(path string) (*dataset.Table, error) {
	if dataset.IsExcelPath(path) {
		return dataset.LoadExcelFile(path)
	}
	return dataset.LoadFile(path)
}
