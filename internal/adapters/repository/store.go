// Package repository loads the dataset file into the entity graph.
package repository

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/okian/olympstats/internal/domain/model"
	"github.com/okian/olympstats/pkg/logger"
)

// Format identifies the encoding of a dataset file.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// Source produces a fully linked graph.
type Source interface {
	// Load reads the whole dataset. It honors ctx for cancellation.
	Load(ctx context.Context) (model.Graph, error)
}

// FileSource loads a dataset from a CSV or YAML file.
type FileSource struct {
	path        string
	format      Format
	skipInvalid bool
	logger      logger.Logger
}

// NewFileSource creates a source for the file at path.
func NewFileSource(path string, opts ...Option) *FileSource {
	s := &FileSource{path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load opens the file and parses it with the configured or derived format.
func (s *FileSource) Load(ctx context.Context) (model.Graph, error) {
	format := s.format
	if format == "" {
		f, err := FormatFromPath(s.path)
		if err != nil {
			return model.Graph{}, err
		}
		format = f
	}

	f, err := os.Open(s.path)
	if err != nil {
		return model.Graph{}, fmt.Errorf("%w: %w", ErrLoadDataset, err)
	}
	defer func() { _ = f.Close() }()

	return s.parse(ctx, format, f)
}

func (s *FileSource) parse(ctx context.Context, format Format, r io.Reader) (model.Graph, error) {
	b := &graphBuilder{Builder: model.NewBuilder(), skipInvalid: s.skipInvalid, logger: s.logger}
	var err error
	switch format {
	case FormatCSV:
		err = readCSV(ctx, r, b)
	case FormatYAML:
		err = readYAML(ctx, r, b)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return model.Graph{}, err
	}
	if b.skipped > 0 && s.logger != nil {
		s.logger.Warn(ctx, "dataset rows skipped", logger.Int("skipped", b.skipped))
	}
	return b.Build(), nil
}

// Parse reads a dataset of the given format from r.
func Parse(ctx context.Context, format Format, r io.Reader, opts ...Option) (model.Graph, error) {
	return NewFileSource("", opts...).parse(ctx, format, r)
}

// graphBuilder feeds raw rows into a model.Builder, turning failures into
// row errors or skipped rows.
type graphBuilder struct {
	*model.Builder
	skipInvalid bool
	skipped     int
	logger      logger.Logger
}

func (b *graphBuilder) add(ctx context.Context, line int, raw rawRow) error {
	row, err := raw.toRow()
	if err == nil {
		_, err = b.Add(row)
	}
	if err == nil {
		return nil
	}
	return b.reject(ctx, line, err)
}

// reject fails the load with a row error, or logs and counts the row when
// invalid rows are skipped.
func (b *graphBuilder) reject(ctx context.Context, line int, err error) error {
	err = fmt.Errorf("%w at row %d: %w", ErrInvalidRow, line, err)
	if !b.skipInvalid {
		return err
	}
	b.skipped++
	if b.logger != nil {
		b.logger.Warn(ctx, "skipping dataset row", logger.Int("row", line), logger.Error(err))
	}
	return nil
}

// rawRow holds the textual fields of one participation.
type rawRow struct {
	Athlete string `yaml:"athlete"`
	Gender  string `yaml:"gender"`
	Country string `yaml:"country"`
	Sport   string `yaml:"sport"`
	Year    string `yaml:"year"`
	Medal   string `yaml:"medal"`
}

func (r rawRow) toRow() (model.Row, error) {
	gender, err := model.ParseGender(r.Gender)
	if err != nil {
		return model.Row{}, err
	}
	medal, err := model.ParseMedal(r.Medal)
	if err != nil {
		return model.Row{}, err
	}
	year, err := parseYear(r.Year)
	if err != nil {
		return model.Row{}, err
	}
	return model.Row{
		Athlete: r.Athlete,
		Gender:  gender,
		Country: r.Country,
		Sport:   r.Sport,
		Year:    year,
		Medal:   medal,
	}, nil
}
