package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/ranaparamveer/tablecreator"
)

// Context is passed to every command's Run method.
type Context struct {
	Ctx     context.Context
	Creator *tablecreator.TableCreator
	Logger  *slog.Logger
	Out     io.Writer
}

// CLI represents the command-line interface
var CLI struct {
	LogLevel  string `help:"Log level (debug, info, warn, error)" default:"warn" enum:"debug,info,warn,error"`
	LogFormat string `help:"Log format (text, json)" default:"text" enum:"text,json"`
	EnvFile   string `help:"Environment file loaded before flags are resolved" default:".env" type:"path"`

	Create     CreateCmd     `cmd:"" help:"Create a table from column definitions unless it exists"`
	Exists     ExistsCmd     `cmd:"" help:"Report whether a table exists"`
	Copy       CopyCmd       `cmd:"" help:"Copy a table's shape and first row between databases"`
	CopyAssets CopyAssetsCmd `cmd:"" name:"copy-assets" help:"Copy a table between bundled asset databases"`
	Describe   DescribeCmd   `cmd:"" help:"Show the columns of a table"`
	Info       InfoCmd       `cmd:"" help:"Show SQLite driver information"`
}

func main() {
	if err := loadEnvFiles(envFileFromArgs(os.Args[1:])); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx := kong.Parse(&CLI,
		kong.Name("tablecreator"),
		kong.Description("Create and copy SQLite tables."),
		kong.UsageOnError(),
	)

	logger := newLogger(os.Stderr, CLI.LogLevel, CLI.LogFormat)
	appCtx := &Context{
		Ctx:     context.Background(),
		Creator: tablecreator.New(tablecreator.WithLogger(logger)),
		Logger:  logger,
		Out:     color.Output,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
