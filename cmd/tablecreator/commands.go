package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/ranaparamveer/tablecreator/asset"
	"github.com/ranaparamveer/tablecreator/sqlitedb"
)

// CreateCmd represents the create command
type CreateCmd struct {
	DB     string   `help:"SQLite database file" env:"TABLECREATOR_DB" required:"" type:"path"`
	Table  string   `help:"Table name" short:"t" required:""`
	Column []string `help:"Column definition, e.g. \"ZNAME TEXT\" (repeatable)" short:"c" required:"" sep:"none"`
}

func (c *CreateCmd) Run(ctx *Context) error {
	db, err := sqlitedb.Open(c.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	ok := ctx.Creator.CreateTableWithColumns(ctx.Ctx, db, c.Table, c.Column)
	return report(ctx, ok, "table %s ready in %s", c.Table, c.DB)
}

// ExistsCmd represents the exists command
type ExistsCmd struct {
	DB    string `help:"SQLite database file" env:"TABLECREATOR_DB" required:"" type:"existingfile"`
	Table string `help:"Table name" short:"t" required:""`
}

func (c *ExistsCmd) Run(ctx *Context) error {
	db, err := sqlitedb.OpenReadOnly(c.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	if !ctx.Creator.IsTableExists(ctx.Ctx, db, c.Table) {
		color.New(color.FgYellow).Fprintf(ctx.Out, "table %s does not exist\n", c.Table)
		return fmt.Errorf("%w: %s", ErrTableNotFound, c.Table)
	}

	color.New(color.FgGreen).Fprintf(ctx.Out, "table %s exists\n", c.Table)
	return nil
}

// CopyCmd represents the copy command
type CopyCmd struct {
	From  string `help:"Source database file" required:"" type:"existingfile"`
	To    string `help:"Destination database file" env:"TABLECREATOR_DB" required:"" type:"path"`
	Table string `help:"Table name" short:"t" required:""`
}

func (c *CopyCmd) Run(ctx *Context) error {
	from, err := sqlitedb.OpenReadOnly(c.From)
	if err != nil {
		return err
	}
	defer from.Close()

	to, err := sqlitedb.Open(c.To)
	if err != nil {
		return err
	}
	defer to.Close()

	ok := ctx.Creator.CopyTable(ctx.Ctx, from, to, c.Table)
	return report(ctx, ok, "copied %s from %s to %s", c.Table, c.From, c.To)
}

// CopyAssetsCmd represents the copy-assets command
type CopyAssetsCmd struct {
	Assets   string `help:"Directory holding bundled databases" env:"TABLECREATOR_ASSETS" required:"" type:"existingdir"`
	AssetDir string `help:"Subdirectory of --assets with the database files" default:"databases"`
	DataDir  string `help:"Directory provisioned databases are copied to" env:"TABLECREATOR_DATA_DIR" required:"" type:"path"`
	From     string `help:"Source database name" required:""`
	To       string `help:"Destination database name" required:""`
	Table    string `help:"Table name" short:"t" required:""`
}

func (c *CopyAssetsCmd) Run(ctx *Context) error {
	p := asset.NewProvisioner(os.DirFS(c.Assets), c.DataDir,
		asset.WithAssetDir(c.AssetDir),
		asset.WithLogger(ctx.Logger),
	)

	ok := ctx.Creator.CopyTableFromAssets(ctx.Ctx, p, c.From, c.To, c.Table)
	return report(ctx, ok, "copied %s from %s to %s", c.Table, c.From, c.To)
}

// DescribeCmd represents the describe command
type DescribeCmd struct {
	DB    string `help:"SQLite database file" env:"TABLECREATOR_DB" required:"" type:"existingfile"`
	Table string `help:"Table name" short:"t" required:""`
	JSON  bool   `help:"Output as JSON"`
}

func (c *DescribeCmd) Run(ctx *Context) error {
	db, err := sqlitedb.OpenReadOnly(c.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	cols, err := sqlitedb.TableInfo(ctx.Ctx, db, c.Table)
	if errors.Is(err, sqlitedb.ErrTableNotFound) {
		return fmt.Errorf("%w: %s", ErrTableNotFound, c.Table)
	}
	if err != nil {
		return err
	}

	rows, err := sqlitedb.CountRows(ctx.Ctx, db, c.Table)
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Table   string                `json:"table"`
			Rows    int64                 `json:"rows"`
			Columns []sqlitedb.ColumnInfo `json:"columns"`
		}{c.Table, rows, cols})
	}

	color.New(color.FgBlue).Fprintf(ctx.Out, "%s (%d rows)\n", c.Table, rows)
	w := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CID\tNAME\tTYPE\tNOT NULL\tDEFAULT\tPK")
	for _, col := range cols {
		fmt.Fprintf(w, "%d\t%s\t%s\t%t\t%s\t%d\n",
			col.CID, col.Name, col.Type, col.NotNull, col.Default.ValueOrZero(), col.PrimaryKey)
	}

	return w.Flush()
}

// InfoCmd represents the info command
type InfoCmd struct {
	JSON bool `help:"Output as JSON"`
}

func (c *InfoCmd) Run(ctx *Context) error {
	d := sqlitedb.CurrentDriver()
	if c.JSON {
		return json.NewEncoder(ctx.Out).Encode(d)
	}

	fmt.Fprintf(ctx.Out, "%s %s cgo=%t\n", d.Name, d.Package, d.CGO)
	return nil
}

// report prints a coloured result line and turns a false outcome into
// ErrOperationFailed.
func report(ctx *Context, ok bool, format string, args ...any) error {
	if !ok {
		color.New(color.FgRed).Fprintf(ctx.Out, "failed: "+format+"\n", args...)
		return ErrOperationFailed
	}

	color.New(color.FgGreen).Fprintf(ctx.Out, format+"\n", args...)
	return nil
}
