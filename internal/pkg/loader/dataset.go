package loader

import (
	"context"
	"fmt"
	"time"

	"github.com/ougirez/wagedash/internal/domain"
	"github.com/ougirez/wagedash/internal/pkg/config"
	"github.com/ougirez/wagedash/internal/pkg/logger"
	"github.com/ougirez/wagedash/internal/pkg/table"
	"golang.org/x/sync/errgroup"
)

// Source отдает исходную таблицу по схеме: из файлов или из postgres.
type Source interface {
	LoadTable(ctx context.Context, schema domain.Schema) (*table.Table, error)
}

type fileSpec struct {
	path     string
	encoding string
}

// FileSource читает таблицы из CSV-файлов каталога данных.
type FileSource struct {
	files map[string]fileSpec
}

func NewFileSource(cfg config.DataConfig) *FileSource {
	return &FileSource{files: map[string]fileSpec{
		domain.NationalSchema.Name:    {cfg.Path(cfg.NationalFile), cfg.WageEncoding},
		domain.IndustrySchema.Name:    {cfg.Path(cfg.IndustryFile), cfg.WageEncoding},
		domain.PrefectureSchema.Name:  {cfg.Path(cfg.PrefectureFile), cfg.WageEncoding},
		domain.CoordinatesSchema.Name: {cfg.Path(cfg.CoordinatesFile), cfg.CoordinatesEncoding},
	}}
}

func (s *FileSource) LoadTable(_ context.Context, schema domain.Schema) (*table.Table, error) {
	spec, ok := s.files[schema.Name]
	if !ok {
		return nil, fmt.Errorf("%w: no file configured for %s", ErrReadFile, schema.Name)
	}
	return LoadFile(spec.path, spec.encoding, schema)
}

// LoadDataset загружает все четыре таблицы параллельно. Любая ошибка
// фатальна для запуска.
func LoadDataset(ctx context.Context, src Source) (*domain.Dataset, error) {
	var ds domain.Dataset

	targets := []struct {
		schema domain.Schema
		dst    **table.Table
	}{
		{domain.NationalSchema, &ds.National},
		{domain.IndustrySchema, &ds.Industry},
		{domain.PrefectureSchema, &ds.Prefecture},
		{domain.CoordinatesSchema, &ds.Coordinates},
	}

	eg, egCtx := errgroup.WithContext(ctx)
	for _, target := range targets {
		target := target
		eg.Go(func() error {
			start := time.Now()
			t, err := src.LoadTable(egCtx, target.schema)
			if err != nil {
				return fmt.Errorf("load %s: %w", target.schema.Name, err)
			}

			logger.Infof(ctx, "loaded %s: %d rows in %s", target.schema.Name, t.Len(), time.Since(start))
			*target.dst = t
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return &ds, nil
}
