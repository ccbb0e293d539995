// Package export writes final rankings to tabular artifacts.
package export

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/okian/rankr/internal/domain/types"
)

// File layout defaults.
const (
	defaultDir    = "results"
	defaultPrefix = "ranking"
	timeLayout    = "20060102_150405"
	dirPerm       = 0o755
	filePerm      = 0o644
	suffixLen     = 8
)

// DefaultHeader is the header row written when none is configured.
var DefaultHeader = [3]string{"Position", "Item", "Score"} //nolint:gochecknoglobals // read-only default

// Exporter persists a final ranking and returns where it went.
type Exporter interface {
	Export(ctx context.Context, standings []types.Entry) (string, error)
}

// CSVExporter writes one new CSV file per export into a directory.
type CSVExporter struct {
	dir    string
	prefix string
	header [3]string
	now    func() time.Time
}

// NewCSVExporter creates an exporter writing to ./results by default.
func NewCSVExporter(opts ...Option) *CSVExporter {
	x := &CSVExporter{
		dir:    defaultDir,
		prefix: defaultPrefix,
		header: DefaultHeader,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Dir returns the output directory.
func (x *CSVExporter) Dir() string { return x.dir }

// Header returns the column labels written on the first row.
func (x *CSVExporter) Header() [3]string { return x.header }

// Export writes standings to <dir>/<prefix>_<timestamp>.csv. An existing file
// is never overwritten: on a name clash a random suffix is added.
func (x *CSVExporter) Export(ctx context.Context, standings []types.Entry) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrExport, err)
	}
	if len(standings) == 0 {
		return "", ErrNoStanding
	}
	if err := os.MkdirAll(x.dir, dirPerm); err != nil {
		return "", fmt.Errorf("%w: create output dir: %w", ErrExport, err)
	}

	base := x.prefix + "_" + x.now().Format(timeLayout)
	f, path, err := x.create(base)
	if err != nil {
		return "", err
	}

	if err := WriteCSV(f, x.header, standings); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("%w: write %s: %w", ErrExport, path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("%w: close %s: %w", ErrExport, path, err)
	}
	return path, nil
}

func (x *CSVExporter) create(base string) (*os.File, string, error) {
	path := filepath.Join(x.dir, base+".csv")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if errors.Is(err, fs.ErrExist) {
		suffix := uuid.NewString()[:suffixLen]
		path = filepath.Join(x.dir, base+"_"+suffix+".csv")
		f, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	}
	if err != nil {
		return nil, "", fmt.Errorf("%w: create %s: %w", ErrExport, path, err)
	}
	return f, path, nil
}

// WriteCSV writes the header and one row per standing to w.
func WriteCSV(w io.Writer, header [3]string, standings []types.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header[:]); err != nil {
		return err
	}
	for _, s := range standings {
		row := []string{strconv.Itoa(s.Rank), s.Item, strconv.Itoa(s.Score)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
