// Package asset provisions SQLite databases bundled with an application.
//
// A database named "bible.db" is looked up under the asset directory of an
// fs.FS as "databases/bible.db", "databases/bible.db.gz" or
// "databases/bible.db.xz" and copied (decompressed) into the data directory
// on first open. An existing copy in the data directory is never replaced.
package asset

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ranaparamveer/tablecreator/sqlitedb"
	"github.com/ulikunitz/xz"
)

var (
	ErrAssetNotFound = errors.New("asset: database asset not found")
	ErrInvalidName   = errors.New("asset: invalid database name")
)

const DefaultAssetDir = "databases"

type Option func(p *Provisioner)

// WithAssetDir sets the directory inside the asset FS that holds bundled
// databases. The default is "databases".
func WithAssetDir(dir string) Option {
	return func(p *Provisioner) {
		p.assetDir = dir
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Provisioner) {
		p.logger = logger
	}
}

// Provisioner opens named databases from dataDir, copying them out of
// assets the first time.
type Provisioner struct {
	assets   fs.FS
	dataDir  string
	assetDir string
	logger   *slog.Logger
}

func NewProvisioner(assets fs.FS, dataDir string, opts ...Option) *Provisioner {
	p := &Provisioner{
		assets:   assets,
		dataDir:  dataDir,
		assetDir: DefaultAssetDir,
	}
	for _, op := range opts {
		op(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// Path returns the on-disk location of the named database.
func (p *Provisioner) Path(name string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}

	return filepath.Join(p.dataDir, name), nil
}

// OpenReadable provisions name if needed and opens it read-only.
func (p *Provisioner) OpenReadable(ctx context.Context, name string) (*sqlitedb.DB, error) {
	dst, err := p.provision(ctx, name)
	if err != nil {
		return nil, err
	}

	return sqlitedb.OpenReadOnly(dst)
}

// OpenWritable provisions name if needed and opens it for writing.
func (p *Provisioner) OpenWritable(ctx context.Context, name string) (*sqlitedb.DB, error) {
	dst, err := p.provision(ctx, name)
	if err != nil {
		return nil, err
	}

	return sqlitedb.Open(dst)
}

func (p *Provisioner) provision(ctx context.Context, name string) (string, error) {
	dst, err := p.Path(name)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(dst); err == nil {
		return dst, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("asset: stat %s: %w", dst, err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	src, assetPath, err := p.openAsset(name)
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(p.dataDir, 0o755); err != nil {
		return "", fmt.Errorf("asset: create data dir: %w", err)
	}

	if err := writeAtomic(dst, src); err != nil {
		return "", fmt.Errorf("asset: copy %s: %w", assetPath, err)
	}

	p.logger.Info("database provisioned", "asset", assetPath, "path", dst)
	return dst, nil
}

// openAsset returns a reader over the decompressed contents of the first
// asset found for name.
func (p *Provisioner) openAsset(name string) (io.ReadCloser, string, error) {
	base := path.Join(p.assetDir, name)
	for _, candidate := range []string{base, base + ".gz", base + ".xz"} {
		f, err := p.assets.Open(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, "", fmt.Errorf("asset: open %s: %w", candidate, err)
		}

		rc, err := decompress(candidate, f)
		if err != nil {
			_ = f.Close()
			return nil, "", fmt.Errorf("asset: open %s: %w", candidate, err)
		}

		return rc, candidate, nil
	}

	return nil, "", fmt.Errorf("%w: %s", ErrAssetNotFound, base)
}

func decompress(name string, f fs.File) (io.ReadCloser, error) {
	switch {
	case strings.HasSuffix(name, ".gz"):
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		return &stackedReader{Reader: zr, closers: []io.Closer{zr, f}}, nil
	case strings.HasSuffix(name, ".xz"):
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, err
		}
		return &stackedReader{Reader: xr, closers: []io.Closer{f}}, nil
	default:
		return f, nil
	}
}

type stackedReader struct {
	io.Reader
	closers []io.Closer
}

func (r *stackedReader) Close() error {
	var errs []error
	for _, c := range r.closers {
		errs = append(errs, c.Close())
	}

	return errors.Join(errs...)
}

// writeAtomic streams src into a temporary file next to dst and renames it
// into place, so a failed copy never leaves a partial database behind.
func writeAtomic(dst string, src io.Reader) error {
	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, src); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, dst); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	return nil
}

func checkName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	return nil
}
