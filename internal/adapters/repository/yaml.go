package repository

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// yamlDataset is the YAML document layout:
//
//	participations:
//	  - athlete: Ana
//	    gender: female
//	    country: Colombia
//	    sport: Swimming
//	    year: 2021
//	    medal: gold
type yamlDataset struct {
	Participations []yaml.Node `yaml:"participations"`
}

func readYAML(ctx context.Context, r io.Reader, b *graphBuilder) error {
	var doc yamlDataset
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: decode yaml: %w", ErrLoadDataset, err)
	}

	for i := range doc.Participations {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrLoadDataset, err)
		}
		node := &doc.Participations[i]
		var raw rawRow
		if err := node.Decode(&raw); err != nil {
			if err := b.reject(ctx, node.Line, err); err != nil {
				return err
			}
			continue
		}
		if err := b.add(ctx, node.Line, raw); err != nil {
			return err
		}
	}
	return nil
}
