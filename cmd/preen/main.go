// preen is a CLI tool that tidies a GitHub account's follower graph: it
// follows back accounts that follow you, and unfollows accounts that don't
// reciprocate, with per-run caps and safety filters.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/carlmjohnson/versioninfo"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"

	"github.com/preenbot/preen/engine"
	"github.com/preenbot/preen/ghapi"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(-1)
	}
}

var commonFlags = []cli.Flag{
	&cli.StringFlag{
		Name:     "token",
		Usage:    "GitHub personal access token (user:follow scope)",
		Required: true,
		EnvVars:  []string{"GITHUB_TOKEN"},
	},
	&cli.StringFlag{
		Name:     "username",
		Usage:    "GitHub account to reconcile",
		Required: true,
		EnvVars:  []string{"GITHUB_USERNAME"},
	},
	&cli.StringFlag{
		Name:    "api-host",
		Usage:   "method, hostname, and port of the GitHub API",
		Value:   "https://api.github.com",
		EnvVars: []string{"GITHUB_API_HOST"},
	},
	&cli.StringFlag{
		Name:    "log-level",
		Usage:   "log verbosity level (eg: warn, info, debug)",
		Value:   "info",
		EnvVars: []string{"PREEN_LOG_LEVEL", "LOG_LEVEL"},
	},
}

func run(args []string) error {

	app := cli.App{
		Name:    "preen",
		Usage:   "GitHub follower reconciliation tool",
		Version: versioninfo.Short(),
	}
	app.Commands = []*cli.Command{
		cmdRun,
		cmdStats,
		cmdCheck,
	}
	return app.Run(args)
}

var cmdRun = &cli.Command{
	Name:  "run",
	Usage: "reconcile the follower graph (follow back and/or cleanup)",
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:    "action",
			Usage:   "phases to run: both, follow_back, or cleanup",
			Value:   "both",
			EnvVars: []string{"AUTOMATION_ACTION"},
		},
		&cli.IntFlag{
			Name:    "max-follows",
			Usage:   "max follow candidates considered per run",
			Value:   15,
			EnvVars: []string{"MAX_FOLLOWS_PER_RUN"},
		},
		&cli.IntFlag{
			Name:    "max-unfollows",
			Usage:   "max unfollow candidates considered per run",
			Value:   20,
			EnvVars: []string{"MAX_UNFOLLOWS_PER_RUN"},
		},
		&cli.IntFlag{
			Name:    "delay",
			Usage:   "pause after each successful action, in seconds",
			Value:   5,
			EnvVars: []string{"DELAY_SECONDS"},
		},
		&cli.StringFlag{
			Name:    "metrics-listen",
			Usage:   "IP or address, and port, to serve prometheus metrics on (disabled if empty)",
			EnvVars: []string{"PREEN_METRICS_LISTEN"},
		},
	}, commonFlags...),
	Action: runRun,
}

var cmdStats = &cli.Command{
	Name:   "stats",
	Usage:  "print follower statistics without mutating anything",
	Flags:  commonFlags,
	Action: runStats,
}

var cmdCheck = &cli.Command{
	Name:      "check",
	Usage:     "report whether the authenticated user follows an account",
	ArgsUsage: `<login>`,
	Flags:     commonFlags,
	Action:    runCheck,
}

func configLogger(cctx *cli.Context) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cctx.String("log-level")) {
	case "error":
		level = slog.LevelError
	case "warn":
		level = slog.LevelWarn
	case "info":
		level = slog.LevelInfo
	case "debug":
		level = slog.LevelDebug
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

// returns a pointer because that is what ghapi.Client expects
func userAgent(username string) *string {
	s := fmt.Sprintf("%s-preen/%s", username, versioninfo.Short())
	return &s
}

func buildEngine(cctx *cli.Context, cfg engine.Config, logger *slog.Logger) (*engine.Engine, error) {
	client := &ghapi.Client{
		Host:      cctx.String("api-host"),
		Token:     cctx.String("token"),
		UserAgent: userAgent(cctx.String("username")),
	}
	dir := engine.NewCachedDirectory(engine.NewAPIDirectory(client), 0, time.Hour)
	return engine.New(dir, cfg, logger)
}

func runRun(cctx *cli.Context) error {
	ctx := context.Background()
	logger := configLogger(cctx)

	mode, err := engine.ParseMode(cctx.String("action"))
	if err != nil {
		return err
	}
	cfg := engine.DefaultConfig(cctx.String("username"))
	cfg.Mode = mode
	cfg.MaxFollows = cctx.Int("max-follows")
	cfg.MaxUnfollows = cctx.Int("max-unfollows")
	cfg.ActionDelay = time.Duration(cctx.Int("delay")) * time.Second

	if ml := cctx.String("metrics-listen"); ml != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(ml, mux); err != nil {
				logger.Error("metrics listener failed", "err", err)
			}
		}()
	}

	eng, err := buildEngine(cctx, cfg, logger)
	if err != nil {
		return err
	}

	report, err := eng.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("mode: %s\n", report.Mode)
	fmt.Printf("followed: %d\tunfollowed: %d\n", report.Followed, report.Unfollowed)
	if report.Final != nil {
		fmt.Printf("followers: %d (%+d)\tfollowing: %d (%+d)\n",
			report.Final.Followers, report.FollowerDelta,
			report.Final.Following, report.FollowingDelta)
	}
	return nil
}

func runStats(cctx *cli.Context) error {
	ctx := context.Background()
	logger := configLogger(cctx)

	eng, err := buildEngine(cctx, engine.DefaultConfig(cctx.String("username")), logger)
	if err != nil {
		return err
	}

	stats, err := eng.Snapshot(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("followers: %d\n", stats.Followers)
	fmt.Printf("following: %d\n", stats.Following)
	fmt.Printf("mutual: %d\n", stats.Mutual)
	fmt.Printf("only followers: %d\n", stats.OnlyFollowers)
	fmt.Printf("only following: %d\n", stats.OnlyFollowing)
	fmt.Printf("follow ratio: %.2f\n", stats.FollowRatio)
	return nil
}

func runCheck(cctx *cli.Context) error {
	ctx := context.Background()
	configLogger(cctx)

	login := cctx.Args().First()
	if login == "" {
		return fmt.Errorf("need to provide an account login as argument")
	}

	client := &ghapi.Client{
		Host:      cctx.String("api-host"),
		Token:     cctx.String("token"),
		UserAgent: userAgent(cctx.String("username")),
	}
	following, err := ghapi.FollowingCheck(ctx, client, login)
	if err != nil {
		return err
	}
	if following {
		fmt.Printf("following @%s\n", login)
	} else {
		fmt.Printf("not following @%s\n", login)
	}
	return nil
}
