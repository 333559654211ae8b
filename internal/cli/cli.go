// Package cli holds the operator commands of solutionctl. Most of them run
// the rendering pipeline locally against the judge proxy without Redis or
// Kafka; only admin touches Postgres.
package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/DeadlyParkour777/solution-share/internal/auth"
	"github.com/DeadlyParkour777/solution-share/internal/complexity"
	"github.com/DeadlyParkour777/solution-share/internal/config"
	"github.com/DeadlyParkour777/solution-share/internal/judge"
	"github.com/DeadlyParkour777/solution-share/internal/language"
	"github.com/DeadlyParkour777/solution-share/internal/render"
	"github.com/DeadlyParkour777/solution-share/internal/service"
	"github.com/DeadlyParkour777/solution-share/internal/store"
	"github.com/DeadlyParkour777/solution-share/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
)

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "solutionctl",
		Short:         "Operator tools for solution share",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newRenderCommand(),
		newDailyCommand(),
		newTokenCommand(),
		newLanguagesCommand(),
		newAdminCommand(),
	)
	return root
}

// localService builds a service that talks only to the judge proxy and,
// when analyze is set and a key is configured, the completion endpoint.
func localService(cfg config.Config, analyze bool) service.Service {
	var completer complexity.Completer
	if analyze && cfg.AIAPIKey != "" {
		baseURL := cfg.AIBaseURL
		if baseURL == "" {
			baseURL = complexity.DefaultBaseURL
		}
		completer = complexity.NewOpenAICompleter(cfg.AIAPIKey, baseURL, cfg.AIModel, cfg.AITimeout)
	}
	return service.NewService(
		nil,
		judge.NewClient(cfg.LCServerURL, cfg.JudgeTimeout),
		nil,
		nil,
		complexity.NewAnalyzer(completer, cfg.AITimeout),
		"",
		nil,
	)
}

func readCode(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newRenderCommand() *cobra.Command {
	var (
		file         string
		link         string
		lang         string
		userID       string
		showSpoilers bool
		asHTML       bool
		analyze      bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a solution from a local file",
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := readCode(cmd, file)
			if err != nil {
				return err
			}

			cfg := config.ConfigInit()
			req := types.SubmissionRequest{
				Mode:          types.ModeManual,
				Language:      language.Normalize(lang),
				RawCode:       code,
				SubmissionURL: link,
			}
			author := types.Author{UserID: userID, Mention: "<@" + userID + ">"}
			opts := render.Options{HideSpoilers: !showSpoilers}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.JudgeTimeout+cfg.AITimeout)
			defer cancel()

			sol, err := localService(cfg, analyze).Render(ctx, req, author, opts)
			if err != nil {
				return err
			}

			if asHTML {
				page, err := render.PreviewHTML(*sol)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), page)
				return err
			}
			return writeJSON(cmd.OutOrStdout(), sol)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "source file, or - for stdin")
	cmd.Flags().StringVarP(&link, "url", "u", "", "problem or submission link")
	cmd.Flags().StringVarP(&lang, "lang", "l", "", "language label")
	cmd.Flags().StringVar(&userID, "user", "0", "author user id")
	cmd.Flags().BoolVar(&showSpoilers, "show-spoilers", false, "do not mask code and complexity")
	cmd.Flags().BoolVar(&asHTML, "html", false, "print an HTML preview instead of JSON")
	cmd.Flags().BoolVar(&analyze, "analyze", true, "estimate complexity when AI_API_KEY is set")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("url")
	_ = cmd.MarkFlagRequired("lang")
	return cmd
}

func newDailyCommand() *cobra.Command {
	var (
		userID       string
		showSpoilers bool
	)

	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Print today's daily question",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.ConfigInit()
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.JudgeTimeout)
			defer cancel()

			post, err := localService(cfg, false).Daily(ctx, userID, render.Options{HideSpoilers: !showSpoilers})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), post)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id for the bookmark button")
	cmd.Flags().BoolVar(&showSpoilers, "show-spoilers", false, "do not mask topics and hints")
	return cmd
}

func newTokenCommand() *cobra.Command {
	var (
		userID    string
		ttl       time.Duration
		asService bool
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if asService {
				if userID != "" {
					return fmt.Errorf("--user and --service are exclusive")
				}
				userID = auth.ServicePrincipal
			}
			if strings.TrimSpace(userID) == "" {
				return fmt.Errorf("--user or --service is required")
			}
			cfg := config.ConfigInit()
			token, err := auth.IssueToken([]byte(cfg.JWTSecretKey), userID, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "discord id the token is issued for")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	cmd.Flags().BoolVar(&asService, "service", false, "issue a token for the chat front end, which acts for the users it names")
	return cmd
}

func newAdminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admins in Postgres",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add <discord-id>",
		Short: "Grant admin rights, e.g. to bootstrap the first admin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			discordID := strings.TrimSpace(args[0])
			if err := validator.New().Var(discordID, "required,numeric"); err != nil {
				return fmt.Errorf("discord id must be numeric: %q", discordID)
			}

			cfg := config.ConfigInit()
			db, err := sql.Open("postgres", cfg.DSN())
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()

			if err := store.NewStore(db).AddAdmin(discordID); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added admin %s\n", discordID)
			return err
		},
	})
	return cmd
}

func newLanguagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the languages offered in manual mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, l := range language.Choices() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), l); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
