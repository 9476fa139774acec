package catalogload

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	catalogrepo "github.com/yungbote/tastebook-backend/internal/data/repos/catalog"
	types "github.com/yungbote/tastebook-backend/internal/domain"
	"github.com/yungbote/tastebook-backend/internal/platform/logger"
)

const defaultBatchSize = 500

// Loader imports an ingredient catalog CSV (name,measurement_unit per row).
// Rows whose (name, unit) pair already exists are skipped, so re-running the
// import is safe.
type Loader struct {
	log         *logger.Logger
	ingredients catalogrepo.IngredientRepo
	batchSize   int
}

func NewLoader(baseLog *logger.Logger, ingredients catalogrepo.IngredientRepo) *Loader {
	return &Loader{
		log:         baseLog.With("service", "CatalogLoader"),
		ingredients: ingredients,
		batchSize:   defaultBatchSize,
	}
}

type Result struct {
	Parsed   int
	Inserted int64
	Skipped  int64
}

// Run streams the CSV through a parse stage and a batched insert stage
// joined by an errgroup; either side failing cancels the other.
func (l *Loader) Run(ctx context.Context, r io.Reader) (*Result, error) {
	rows := make(chan *types.Ingredient, l.batchSize)
	res := &Result{}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(rows)
		reader := csv.NewReader(r)
		reader.FieldsPerRecord = -1
		first := true
		for {
			record, err := reader.Read()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return fmt.Errorf("parse csv: %w", err)
			}
			// Header row, if present, has no data worth keeping.
			if first {
				first = false
				if strings.EqualFold(strings.TrimSpace(record[0]), "name") {
					continue
				}
			}
			row, err := parseRecord(record)
			if err != nil {
				return err
			}
			res.Parsed++
			select {
			case rows <- row:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	g.Go(func() error {
		batch := make([]*types.Ingredient, 0, l.batchSize)
		flush := func() error {
			if len(batch) == 0 {
				return nil
			}
			inserted, err := l.ingredients.CreateIgnoreExisting(ctx, nil, batch)
			if err != nil {
				return fmt.Errorf("insert batch: %w", err)
			}
			res.Inserted += inserted
			res.Skipped += int64(len(batch)) - inserted
			batch = batch[:0]
			return nil
		}
		for row := range rows {
			batch = append(batch, row)
			if len(batch) >= l.batchSize {
				if err := flush(); err != nil {
					return err
				}
			}
		}
		return flush()
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	l.log.Info("Catalog import finished", "parsed", res.Parsed, "inserted", res.Inserted, "skipped", res.Skipped)
	return res, nil
}

func parseRecord(record []string) (*types.Ingredient, error) {
	if len(record) < 2 {
		return nil, fmt.Errorf("row %v: want name,measurement_unit", record)
	}
	name := strings.TrimSpace(record[0])
	unit := strings.TrimSpace(record[1])
	if name == "" || unit == "" {
		return nil, fmt.Errorf("row %v: empty name or unit", record)
	}
	return &types.Ingredient{ID: uuid.New(), Name: name, MeasurementUnit: unit}, nil
}
