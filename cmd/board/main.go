package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/AdamBeresnev/poule-board/internal/apiclient"
	"github.com/AdamBeresnev/poule-board/internal/config"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		slog.Warn("failed to load .env file", "error", err)
	}

	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if apiclient.IsUnauthorized(err) {
			fmt.Fprintln(os.Stderr, "run `board login` and pass the token with --token or POULE_BOARD_TOKEN")
		}
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "board",
		Usage: "follow and run a poule tournament from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "config.yaml", Usage: "path to the YAML config file"},
			&cli.StringFlag{Name: "api", Usage: "tournament API base URL", EnvVars: []string{"POULE_BOARD_API"}},
			&cli.StringFlag{Name: "token", Usage: "organizer bearer token", EnvVars: []string{"POULE_BOARD_TOKEN"}},
			&cli.IntFlag{Name: "width", Value: 1024, Usage: "presentation width; below 768 rows are printed as cards"},
			&cli.BoolFlag{Name: "debug", Usage: "log API requests"},
		},
		Before: func(c *cli.Context) error {
			level := slog.LevelWarn
			if c.Bool("debug") {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
		Commands: []*cli.Command{
			loginCommand(),
			tournamentsCommand(),
			scheduleCommand(),
			standingsCommand(),
			overallCommand(),
			scoresCommand(),
			scoreCommand(),
			generateCommand(),
			gatesCommand(),
			exportCommand(),
		},
	}
}

// session bundles what every command needs from the global flags.
type session struct {
	cfg    *config.Config
	client *apiclient.Client
	token  string
	width  int
}

func newSession(c *cli.Context) (*session, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	baseURL := cfg.API.BaseURL
	if v := c.String("api"); v != "" {
		baseURL = strings.TrimRight(v, "/")
	}
	return &session{
		cfg:    cfg,
		client: apiclient.New(baseURL, apiclient.WithLogger(slog.Default())),
		token:  c.String("token"),
		width:  c.Int("width"),
	}, nil
}
