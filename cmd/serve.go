package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/markbook/internal/dataset"
	"github.com/abhisek/markbook/internal/httpapi"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis API over HTTP",
	Long: "Serve starts a JSON API: upload datasets, analyze them under chosen\n" +
		"thresholds, and predict results for hypothetical students.",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := httpapi.NewServer(dataset.NewCache())
		return srv.Run(serveAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
}
