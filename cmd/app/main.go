package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/cheatsheeter/cheatsheeter/internal"
	"github.com/cheatsheeter/cheatsheeter/internal/mcpserver"
	"github.com/cheatsheeter/cheatsheeter/internal/models"
	"github.com/cheatsheeter/cheatsheeter/internal/sheetservice"
	"github.com/cheatsheeter/cheatsheeter/internal/storage"
)

// loadConfig builds the effective configuration: defaults, then the config
// file (required only when --config was given explicitly), then flag and
// environment overrides.
func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg, err := internal.LoadConfig(cmd.String("config"), cmd.IsSet("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cmd.IsSet("dir") {
		cfg.Store.Path = cmd.String("dir")
	}
	if cmd.IsSet("host") {
		cfg.App.HTTP.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.App.HTTP.Port = int(cmd.Int("port"))
	}
	if cmd.IsSet("origins") {
		cfg.CORS.AllowedOrigins = cmd.StringSlice("origins")
	}
	if cmd.IsSet("rate-limit") {
		cfg.App.HTTP.RateLimit = int(cmd.Int("rate-limit"))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newService sets up the storage-backed cheatsheet service for the one-shot
// CLI commands.
func newService(cmd *cli.Command) (*sheetservice.Service, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.Store.Path, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	store, err := storage.NewFS(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	return sheetservice.New(store), nil
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func runList(ctx context.Context, cmd *cli.Command) error {
	svc, err := newService(cmd)
	if err != nil {
		return err
	}
	names, err := svc.List(ctx, "")
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func runCreate(ctx context.Context, cmd *cli.Command) error {
	name := cmd.Args().First()
	if name == "" {
		return fmt.Errorf("usage: create <name>")
	}
	svc, err := newService(cmd)
	if err != nil {
		return err
	}

	title := cmd.String("title")
	if title == "" {
		title = name
	}
	data := models.CheatSheetData{
		Title:      title,
		Categories: []models.Category{{Name: "General"}},
	}
	if _, err := svc.Create(ctx, name, data); err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	fmt.Printf("created %s\n", name)
	return nil
}

func runDelete(ctx context.Context, cmd *cli.Command) error {
	name := cmd.Args().First()
	if name == "" {
		return fmt.Errorf("usage: delete <name>")
	}
	svc, err := newService(cmd)
	if err != nil {
		return err
	}
	if err := svc.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	fmt.Printf("deleted %s\n", name)
	return nil
}

func runMCP(_ context.Context, cmd *cli.Command) error {
	svc, err := newService(cmd)
	if err != nil {
		return err
	}
	// stdout belongs to the MCP transport; slog's default text handler
	// already writes to stderr.
	return mcpserver.New(svc).ServeStdio()
}

func main() {
	cmd := &cli.Command{
		Name:   "cheatsheeter",
		Usage:  "Self-hosted cheatsheet manager with YAML storage, a REST API, and MCP integration",
		Action: runServe,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("CHEATSHEETER_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Cheatsheet storage directory",
				Sources: cli.EnvVars("CHEATSHEETER_DIR"),
			},
			&cli.StringFlag{
				Name:    "host",
				Usage:   "HTTP listen host",
				Sources: cli.EnvVars("CHEATSHEETER_HOST"),
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "HTTP listen port",
				Sources: cli.EnvVars("CHEATSHEETER_PORT"),
			},
			&cli.StringSliceFlag{
				Name:    "origins",
				Usage:   "Allowed CORS origins",
				Sources: cli.EnvVars("CHEATSHEETER_ALLOWED_ORIGINS"),
			},
			&cli.IntFlag{
				Name:    "rate-limit",
				Usage:   "Requests per minute per client IP (0 disables)",
				Sources: cli.EnvVars("CHEATSHEETER_RATE_LIMIT"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the HTTP server (default command)",
				Action: runServe,
			},
			{
				Name:   "list",
				Usage:  "List stored cheatsheet names",
				Action: runList,
			},
			{
				Name:      "create",
				Usage:     "Create a skeleton cheatsheet",
				ArgsUsage: "<name>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "title",
						Usage: "Sheet title (defaults to the name)",
					},
				},
				Action: runCreate,
			},
			{
				Name:      "delete",
				Usage:     "Delete a cheatsheet",
				ArgsUsage: "<name>",
				Action:    runDelete,
			},
			{
				Name:   "mcp",
				Usage:  "Run the MCP server on stdio",
				Action: runMCP,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
