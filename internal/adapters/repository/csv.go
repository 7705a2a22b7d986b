package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ctxCheckEvery bounds how many rows are read between cancellation checks.
const ctxCheckEvery = 1024

// columnAliases lists the accepted headers for each field.
var columnAliases = map[string][]string{
	"athlete": {"athlete", "name", "atleta", "nombre"},
	"gender":  {"gender", "genero", "género"},
	"country": {"country", "pais", "país"},
	"sport":   {"sport", "event", "evento", "deporte"},
	"year":    {"year", "anio", "año"},
	"medal":   {"medal", "medalla"},
}

func readCSV(ctx context.Context, r io.Reader, b *graphBuilder) error {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	// Row width is checked against the mapped columns so short rows can be
	// skipped like any other invalid row.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: read header: %w", ErrLoadDataset, err)
	}
	cols, err := mapColumns(header)
	if err != nil {
		return err
	}
	width := 0
	for _, i := range cols {
		width = max(width, i+1)
	}

	for line := 2; ; line++ {
		if line%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("%w: %w", ErrLoadDataset, err)
			}
		}
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w at row %d: %w", ErrInvalidRow, line, err)
		}
		if isBlank(rec) {
			continue
		}
		if len(rec) < width {
			if err := b.reject(ctx, line, fmt.Errorf("%w: got %d fields, want %d", ErrShortRow, len(rec), width)); err != nil {
				return err
			}
			continue
		}
		raw := rawRow{
			Athlete: rec[cols["athlete"]],
			Gender:  rec[cols["gender"]],
			Country: rec[cols["country"]],
			Sport:   rec[cols["sport"]],
			Year:    rec[cols["year"]],
			Medal:   rec[cols["medal"]],
		}
		if err := b.add(ctx, line, raw); err != nil {
			return err
		}
	}
}

// mapColumns resolves each field to its column index.
func mapColumns(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	cols := make(map[string]int, len(columnAliases))
	for field, aliases := range columnAliases {
		found := false
		for _, alias := range aliases {
			if i, ok := index[alias]; ok {
				cols[field] = i
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, field)
		}
	}
	return cols, nil
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func parseYear(s string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("year %q: %w", s, err)
	}
	return year, nil
}
