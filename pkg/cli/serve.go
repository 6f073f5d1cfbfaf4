package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/freundlier/intake/pkg/cli/config"
	httpctrl "github.com/freundlier/intake/pkg/controller/http"
	"github.com/freundlier/intake/pkg/service/crisis"
	"github.com/freundlier/intake/pkg/service/rag"
	"github.com/freundlier/intake/pkg/usecase"
	"github.com/freundlier/intake/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var repoCfg config.Repository
	var geminiCfg config.Gemini
	var openaiCfg config.OpenAI
	var claudeCfg config.Claude
	var crisisCfg config.Crisis
	var slackCfg config.Slack

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("FREUNDLIER_ADDR"),
			Destination: &addr,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, openaiCfg.Flags()...)
	flags = append(flags, claudeCfg.Flags()...)
	flags = append(flags, crisisCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			// Initialize repository based on backend type
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			// Gemini is mandatory: it serves response generation, the
			// embeddings, and the first triage slot.
			geminiClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize Gemini client")
			}

			openaiClient, err := openaiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize OpenAI client")
			}
			claudeClient, err := claudeCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize Claude client")
			}

			keywords, err := crisisCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure crisis lexicon")
			}

			// The confirmation classifier prefers the cheap OpenAI model and
			// falls back to the generation model when OpenAI is not
			// configured.
			classifierClient := openaiClient
			if classifierClient == nil {
				classifierClient = geminiClient
				logging.Default().Info("OpenAI not configured, crisis classifier uses Gemini")
			}

			// Triage failover chain in priority order. Unconfigured
			// providers simply shorten the chain.
			providers := []usecase.TriageProvider{
				{Name: "gemini", Client: geminiClient},
			}
			if openaiClient != nil {
				providers = append(providers, usecase.TriageProvider{Name: "openai", Client: openaiClient})
			}
			if claudeClient != nil {
				providers = append(providers, usecase.TriageProvider{Name: "claude", Client: claudeClient})
			}
			logging.Default().Info("Triage failover chain configured", "providers", len(providers))

			ucOpts := []usecase.Option{
				usecase.WithDetector(crisis.NewDetector(classifierClient, keywords)),
				usecase.WithRetriever(rag.NewRetriever(geminiClient, repo.Knowledge())),
				usecase.WithTriageProviders(providers...),
			}

			notifier, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure Slack notification")
			}
			if notifier != nil {
				ucOpts = append(ucOpts, usecase.WithNotifier(notifier))
				logging.Default().Info("Slack crisis notification enabled")
			} else {
				logging.Default().Warn("Slack not configured, crisis alerts will not be delivered")
			}

			uc := usecase.New(repo, geminiClient, ucOpts...)

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
