package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/riji/internal/cli"
	"github.com/julianstephens/riji/internal/constants"
	rijierrors "github.com/julianstephens/riji/internal/errors"
	"github.com/julianstephens/riji/internal/logger"
	"github.com/julianstephens/riji/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Journal file. A .json file is stored as JSON, anything else as SQLite." type:"path" default:"${config_path}" env:"RIJI_CONFIG"`
	Debug   bool   `help:"Log debug output to stderr." env:"RIJI_DEBUG"`

	Init     cli.InitCmd     `cmd:"" help:"Create a new journal."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	New      cli.NewCmd      `cmd:"" help:"Write a new entry."`
	Edit     cli.EditCmd     `cmd:"" help:"Change an existing entry."`
	Delete   cli.DeleteCmd   `cmd:"" help:"Delete an entry."`
	Show     cli.ShowCmd     `cmd:"" help:"Show one entry."`
	List     cli.ListCmd     `cmd:"" help:"List entries, newest first."`
	Tags     cli.TagsCmd     `cmd:"" help:"List tags with entry counts."`
	Search   cli.SearchCmd   `cmd:"" help:"Ranked full-text search."`
	Import   cli.ImportCmd   `cmd:"" help:"Import entries from a text file."`
	Export   cli.ExportCmd   `cmd:"" help:"Export entries as text or JSON."`
	Mcp      cli.McpCmd      `cmd:"" help:"Serve the journal to MCP clients over stdio."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Validate cli.ValidateCmd `cmd:"" help:"Check stored entries for problems."`
	DebugCmd cli.DebugCmd    `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
	Backup   struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage journal backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("日记: a tagged, date-ordered journal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":      constants.Version,
			"config_path":  constants.DefaultConfigPath,
			"search_limit": strconv.Itoa(constants.DefaultSearchLimit),
		},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	appCtx := cli.NewContext(storage.Open(CLI.Config))

	err := ctx.Run(appCtx)
	if closeErr := appCtx.Close(); closeErr != nil {
		logger.Warn("Failed to close journal", "error", closeErr)
	}
	rijierrors.Fatal(err)
}
