package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/trackferry/trackferry/internal/catalog"
	"github.com/trackferry/trackferry/internal/shared"
	"github.com/trackferry/trackferry/internal/songlist"
	"github.com/trackferry/trackferry/internal/tasks"
	"github.com/trackferry/trackferry/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for a song list transfer.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	sourceFile := cmd.String("file")
	playlistID := cmd.String("playlist-id")
	name := cmd.String("name")

	if playlistID == "" && name == "" {
		return fmt.Errorf("%w: either --playlist-id or --name is required", shared.ErrMissingArgument)
	}

	target := tasks.ExistingPlaylist(playlistID)
	if playlistID == "" {
		target = tasks.NewPlaylist(name, "", catalog.PrivacyPrivate)
	}

	list, err := songlist.ParseFile(sourceFile)
	if err != nil {
		return err
	}

	return r.runTUI(ctx, sourceFile, list.Titles, target)
}

// runTUI hands the transfer to the bubbletea model. Logs are redirected
// to a file so they do not interfere with TUI rendering.
func (r *Runner) runTUI(ctx context.Context, sourceFile string, songs []string, target tasks.Target) error {
	if r.client == nil {
		return fmt.Errorf("%w: catalog client not initialized, run 'trackferry auth login'", shared.ErrServiceUnavailable)
	}
	if r.engine == nil {
		return fmt.Errorf("%w: transfer engine not initialized", shared.ErrServiceUnavailable)
	}

	fileLogger, err := shared.NewFileLogger("./tmp/trackferry-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)
	r.engine = r.rebuildEngine()

	model := ui.NewModel(ctx, r.engine, sourceFile, songs, target)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
