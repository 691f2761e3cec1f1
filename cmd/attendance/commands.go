package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
	"github.com/ukaji3/attendance-go/internal/bot"
	"github.com/ukaji3/attendance-go/internal/server"
	"github.com/ukaji3/attendance-go/internal/tui"
	"github.com/ukaji3/attendance-go/pkg/attendance"
	"github.com/ukaji3/attendance-go/pkg/attendance/loader"
	"github.com/ukaji3/attendance-go/pkg/attendance/output"
)

func newLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Download all attendance files and refresh the cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			stats := a.svc.Reload(cmd.Context())
			return printJSON(stats)
		},
	}
}

func newCheckCmd() *cobra.Command {
	var refresh, asJSON bool

	cmd := &cobra.Command{
		Use:   "check [roll-number]",
		Short: "Show attendance for a roll number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.ensureIndex(cmd.Context(), refresh); err != nil {
				return err
			}

			report, err := a.svc.Check(args[0])
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(report)
			}
			fmt.Println(output.RenderReport(report))
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Download fresh data instead of using the cache")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

func newParseCmd() *cobra.Command {
	var roll string

	cmd := &cobra.Command{
		Use:   "parse [file.xlsx...]",
		Short: "Parse local attendance files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				if _, err := os.Stat(path); os.IsNotExist(err) {
					return fmt.Errorf("file not found: %s", path)
				}
			}

			cfg, logger, err := loadEnv()
			if err != nil {
				return err
			}

			idx, stats := loader.New(nil, loaderOptions(cfg), logger).LoadFiles(args)
			if roll == "" {
				fmt.Fprintf(os.Stderr, "parsed %d/%d files\n", stats.Parsed, stats.Total)
				return printJSON(idx)
			}

			report, err := attendance.Check(idx, roll)
			if err != nil {
				return err
			}
			fmt.Println(output.RenderReport(report))
			return nil
		},
	}

	cmd.Flags().StringVar(&roll, "roll", "", "Look up a roll number instead of printing the index")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

func newCoursesCmd() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "courses",
		Short: "List indexed courses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.ensureIndex(cmd.Context(), refresh); err != nil {
				return err
			}
			idx := a.svc.Index()
			for _, course := range idx.Courses() {
				fmt.Printf("%-16s %4d students  %d files\n", course, idx.Students(course), len(idx.Sources(course)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Download fresh data instead of using the cache")
	return cmd
}

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the lookup API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.ensureIndex(ctx, false); err != nil {
				return err
			}
			if port == "" {
				port = a.cfg.ServerPort
			}
			return server.New(a.svc, []byte(a.cfg.JWTSecret), a.logger).Run(ctx, ":"+port)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Port to listen on (overrides PORT)")
	return cmd
}

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive roll number lookup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.svc.Warm(cmd.Context()); err != nil {
				level.Warn(a.logger).Log("msg", "ignoring unreadable cache", "err", err)
			}
			return tui.Run(a.svc)
		},
	}
}

func newBotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Answer lookups over Telegram",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if a.cfg.TelegramToken == "" {
				return errors.New("TELEGRAM_BOT_TOKEN is required")
			}
			if err := a.ensureIndex(ctx, false); err != nil {
				return err
			}
			return bot.Run(ctx, a.cfg.TelegramToken, a.svc, a.logger)
		},
	}
}

func newTokenCmd() *cobra.Command {
	var subject string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the reload endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(context.Background())
			if err != nil {
				return err
			}
			defer a.Close()

			if a.cfg.JWTSecret == "" {
				return errors.New("JWT_SECRET is required")
			}
			token, err := server.IssueToken([]byte(a.cfg.JWTSecret), subject, ttl)
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "admin", "Token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	return cmd
}

func printJSON(v any) error {
	data, err := output.ToJSON(v, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
