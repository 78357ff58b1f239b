// Package importer loads recipes from the csv export of the old site.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/yacook/yacook/internal/cache"
	"github.com/yacook/yacook/internal/db/controller/group"
	"github.com/yacook/yacook/internal/db/controller/recipe"
	"github.com/yacook/yacook/internal/db/controller/user"
	"github.com/yacook/yacook/internal/db/models"
)

// Columns every import file must have.
var Columns = []string{"title", "description", "ingredients", "technology", "name", "group"}

// ErrMissingColumn is returned when the header lacks one of Columns.
var ErrMissingColumn = errors.New("missing csv column")

const batchSize = 100

// Result summarizes an import.
type Result struct {
	Recipes       int
	GroupsCreated int
}

// Importer inserts csv rows as recipes of one author.
type Importer struct {
	db       *gorm.DB
	authorID uint
	cache    cache.Cache
}

// New returns an Importer attributing every recipe to authorID.
func New(db *gorm.DB, authorID uint) *Importer {
	return &Importer{db: db, authorID: authorID}
}

// WithCache sets the cache holding the group sidebar, dropped when an import creates groups.
func (i *Importer) WithCache(c cache.Cache) *Importer {
	i.cache = c

	return i
}

// ImportFile imports the csv file at path.
func (i *Importer) ImportFile(ctx context.Context, path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	return i.Import(ctx, f)
}

// Import reads comma separated rows with a header line from r and inserts them in one transaction.
func (i *Importer) Import(ctx context.Context, r io.Reader) (Result, error) {
	var res Result

	db := i.db.WithContext(ctx)

	if _, err := user.GetByID(db, i.authorID); err != nil {
		return res, fmt.Errorf("import author %d: %w", i.authorID, err)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return res, fmt.Errorf("read csv header: %w", err)
	}

	idx, err := columnIndex(header)
	if err != nil {
		return res, err
	}

	var rows [][]string

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return res, fmt.Errorf("read csv: %w", err)
		}

		rows = append(rows, row)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		groups := map[string]uint{}
		recipes := make([]models.Recipe, 0, len(rows))

		for n, row := range rows {
			line := n + 2 // header is line 1
			get := func(col string) string {
				if j := idx[col]; j < len(row) {
					return row[j]
				}

				return ""
			}

			rcp, err := i.recipe(get)
			if err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}

			if title := strings.TrimSpace(get("group")); title != "" {
				gid, ok := groups[title]
				if !ok {
					g, created, err := group.GetOrCreate(tx, title, group.Slugify(title))
					if err != nil {
						return fmt.Errorf("line %d: %w", line, err)
					}

					if created {
						res.GroupsCreated++
					}

					gid = g.ID
					groups[title] = gid
				}

				rcp.GroupID = &gid
			}

			recipes = append(recipes, *rcp)
		}

		if err := recipe.CreateBatch(tx, recipes, batchSize); err != nil {
			return err //nolint:wrapcheck
		}

		res.Recipes = len(recipes)

		return nil
	})
	if err != nil {
		return Result{}, err
	}

	if res.GroupsCreated > 0 {
		group.InvalidateRefs(ctx, i.cache)
	}

	log.Info().Int("recipes", res.Recipes).Int("groups", res.GroupsCreated).Msg("recipes imported")

	return res, nil
}

func (i *Importer) recipe(get func(string) string) (*models.Recipe, error) {
	description, err := ParseList(get("description"))
	if err != nil {
		return nil, err
	}

	technology, err := ParseList(get("technology"))
	if err != nil {
		return nil, err
	}

	ingredients, err := ParseDict(get("ingredients"))
	if err != nil {
		return nil, err
	}

	r := &models.Recipe{
		Title:       get("title"),
		Description: strings.Join(description, "\n"),
		Ingredients: Lines(ingredients),
		Technology:  strings.Join(technology, "\n"),
		AuthorID:    i.authorID,
	}

	if name := strings.TrimSpace(get("name")); name != "" {
		r.Image = models.ImagePrefix + name + ".jpg"
	}

	return r, nil
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for j, h := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = j
	}

	for _, col := range Columns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	return idx, nil
}
