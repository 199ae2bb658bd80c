package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/trustme-ai/trustme/config"
	srv "github.com/trustme-ai/trustme/internal/server"
	"github.com/trustme-ai/trustme/internal/trust"
)

func main() {
	var root = &cobra.Command{Use: "trustme", Short: "Web-grounded trust analysis"}

	var cfgPath string
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file")

	var serveAddr string
	var serve = &cobra.Command{
		Use:   "serve",
		Short: "Run HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if serveAddr == "" {
				serveAddr = os.Getenv("TRUSTME_HTTP_ADDR")
			}
			return srv.Run(cfgPath, serveAddr)
		},
	}
	serve.Flags().StringVar(&serveAddr, "addr", "", "listen address (defaults to server.address)")

	var subject, context, language string
	var report bool
	var analyze = &cobra.Command{
		Use:   "analyze",
		Short: "Run one trust analysis and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			if subject == "" {
				return fmt.Errorf("--subject is required")
			}
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			orch, err := trust.NewFromConfig(cfg, log.New(os.Stderr, "[ORCH] ", log.LstdFlags))
			if err != nil {
				return err
			}
			req := trust.AnalysisRequest{Subject: subject, Context: context, Language: language}
			res, err := orch.Run(cmd.Context(), req)
			if err != nil {
				return err
			}
			if report {
				fmt.Println(trust.RenderReport(req, res))
			} else {
				fmt.Printf("score: %.1f\ndetails: %s\n", res.Score, res.Details)
			}
			return nil
		},
	}
	analyze.Flags().StringVar(&subject, "subject", "", "subject to analyze")
	analyze.Flags().StringVar(&context, "context", "", "free-form context for the subject")
	analyze.Flags().StringVar(&language, "language", "", "response language (default en-US)")
	analyze.Flags().BoolVar(&report, "report", false, "print a full markdown report")

	root.AddCommand(serve, analyze)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
