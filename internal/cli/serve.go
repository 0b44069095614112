package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faizan711/git-gandalf/internal/api"
	"github.com/Faizan711/git-gandalf/internal/llm"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server exposing the judgment pipeline to editors and
other local tooling.

Endpoints:
  GET  /health         — Health check
  POST /api/summarize  — Extract metadata from a diff
  POST /api/judge      — Run the full judgment on a diff
  GET  /api/ws         — WebSocket stream of pipeline stages`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("addr", "a", "127.0.0.1", "address to listen on")
	serveCmd.Flags().IntP("port", "p", 6143, "port to listen on")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	port, _ := cmd.Flags().GetInt("port")

	cfg := llm.LoadConfig()
	listen := fmt.Sprintf("%s:%d", addr, port)
	srv := api.New(listen, llm.NewClient(cfg), cfg.MaxDiffBytes)
	return srv.ListenAndServe()
}
