// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles setup operations for database and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// authCommand handles YouTube authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage YouTube authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Authenticate with YouTube using OAuth2",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Check current authentication state",
				Action: r.AuthStatus,
			},
		},
	}
}

// catalogCommand handles direct YouTube catalog operations
func catalogCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "catalog",
		Aliases: []string{"yt"},
		Usage:   "YouTube catalog operations",
		Commands: []*cli.Command{
			{
				Name:  "search",
				Usage: "Search the catalog for a track",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "query",
					},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results to return",
						Value: 5,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.CatalogSearch,
			},
			{
				Name:  "playlists",
				Usage: "List playlists owned by the authenticated account",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of playlists to return",
						Value: 50,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.CatalogPlaylists,
			},
			{
				Name:  "create",
				Usage: "Create a playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "name",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "description",
						Usage: "Playlist description",
					},
					&cli.StringFlag{
						Name:  "privacy",
						Usage: "Playlist visibility (private, unlisted, public)",
						Value: "private",
					},
				},
				Action: r.CatalogCreate,
			},
			{
				Name:  "items",
				Usage: "List the items of a playlist",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Playlist ID to list",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.CatalogItems,
			},
		},
	}
}

// transferCommand handles song list transfer operations
func transferCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "transfer",
		Usage: "Transfer a CSV song list into a YouTube playlist",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run a full CSV → YouTube playlist transfer",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to the CSV song list",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "playlist-id",
						Usage: "Existing destination playlist ID",
					},
					&cli.StringFlag{
						Name:  "name",
						Usage: "Name for a new destination playlist",
					},
					&cli.StringFlag{
						Name:  "description",
						Usage: "Description for a new destination playlist",
					},
					&cli.StringFlag{
						Name:  "privacy",
						Usage: "Visibility for a new playlist (private, unlisted, public)",
						Value: "private",
					},
					&cli.StringFlag{
						Name:  "report",
						Usage: "Report format to write (csv, markdown, text, none)",
						Value: "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Report output path (defaults to a playlist-derived name)",
					},
					&cli.BoolFlag{
						Name:  "no-history",
						Usage: "Skip recording the run in the local database",
					},
					&cli.BoolFlag{
						Name:  "ui",
						Usage: "Run interactively in the terminal UI",
					},
				},
				Action: r.TransferRun,
			},
		},
	}
}

// runsCommand handles transfer run history stored in the local database.
func runsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "runs",
		Usage: "Inspect past transfer runs",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List recorded transfer runs",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "playlist",
						Usage: "Filter by destination playlist ID",
					},
					&cli.BoolFlag{
						Name:  "halted",
						Usage: "Only show runs halted by the quota budget",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of runs to show",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.RunsList,
			},
			{
				Name:  "show",
				Usage: "Show a recorded run with per-song outcomes",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.RunsShow,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive transfers.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive"},
		Usage:   "Launch interactive TUI for a song list transfer",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "Path to the CSV song list",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "playlist-id",
				Usage: "Existing destination playlist ID",
			},
			&cli.StringFlag{
				Name:  "name",
				Usage: "Name for a new destination playlist",
			},
		},
		Action: r.TUI,
	}
}
