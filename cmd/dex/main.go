package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/five82/dex/internal/app"
	"github.com/five82/dex/internal/route"
)

func run(ctx context.Context, cmd *cli.Command) error {
	start, err := route.Parse(cmd.Args().First())
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	final, err := app.Run(ctx, app.Options{
		ConfigPath: cmd.String("config"),
		PrefsPath:  cmd.String("prefs"),
		APIBase:    cmd.String("api-base"),
		LogLevel:   cmd.String("log-level"),
		Route:      start,
	})
	if err != nil {
		return fmt.Errorf("dex: %w", err)
	}

	if cmd.Bool("print-route") {
		fmt.Fprintln(os.Stdout, final.String())
	}
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:      "dex",
		Usage:     "Browse the PokeAPI catalog from the terminal",
		ArgsUsage: "[route]  e.g. /?page=2&q=char or /item/pikachu",
		Action:    run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "~/.config/dex/config.toml",
				Sources:     cli.EnvVars("DEX_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:        "prefs",
				Usage:       "Path to UI preferences file",
				DefaultText: "~/.config/dex/prefs.toml",
				Sources:     cli.EnvVars("DEX_PREFS_FILE"),
			},
			&cli.StringFlag{
				Name:    "api-base",
				Usage:   "Override the API base URL",
				Sources: cli.EnvVars("DEX_API_BASE"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Override the log level (debug, info, warn, error)",
				Sources: cli.EnvVars("DEX_LOG_LEVEL"),
			},
			&cli.BoolFlag{
				Name:  "print-route",
				Usage: "Print the route of the last view on exit",
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
