package records

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/seed"
	"go.mongodb.org/mongo-driver/mongo"
	"gopkg.in/yaml.v3"
)

const recordsSeedApplication = "records"

const seedFile = "seed.yaml"

// SeedDocument is the bootstrap catalog: the floor plan and the menu.
type SeedDocument struct {
	Tables     []TableSeed    `yaml:"tables"`
	Categories []CategorySeed `yaml:"categories"`
}

type TableSeed struct {
	Number   int `yaml:"number"`
	Capacity int `yaml:"capacity"`
}

type CategorySeed struct {
	Name   string     `yaml:"name"`
	Dishes []DishSeed `yaml:"dishes"`
}

type DishSeed struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Price       float64 `yaml:"price"`
	Available   *bool   `yaml:"available"`
}

func LoadSeedDocument(seedFS fs.FS) (*SeedDocument, error) {
	seedBytes, err := fs.ReadFile(seedFS, seedFile)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", seedFile, err)
	}

	if len(seedBytes) == 0 {
		return nil, errors.New("records seed file is empty")
	}

	var doc SeedDocument
	if err := yaml.Unmarshal(seedBytes, &doc); err != nil {
		return nil, fmt.Errorf("decode records seed file: %w", err)
	}

	if len(doc.Tables) == 0 {
		return nil, errors.New("records seed file does not contain tables")
	}

	return &doc, nil
}

// BuildSeeds turns the document into idempotent seed steps.
func BuildSeeds(doc *SeedDocument, tables TableRepo, menu MenuRepo, logger apt.Logger) []seed.Seed {
	var defs []seed.Seed

	for _, t := range doc.Tables {
		tableSeed := t
		if tableSeed.Number <= 0 {
			logger.Info("Skipping seed table with invalid number", "number", tableSeed.Number)
			continue
		}
		defs = append(defs, seed.Seed{
			ID:          fmt.Sprintf("2025-01-10_table_%d", tableSeed.Number),
			Description: fmt.Sprintf("Ensure table %d exists", tableSeed.Number),
			Run: func(ctx context.Context) error {
				return tableSeed.ensure(ctx, tables, logger)
			},
		})
	}

	for _, c := range doc.Categories {
		categorySeed := c
		if strings.TrimSpace(categorySeed.Name) == "" {
			logger.Info("Skipping seed category with empty name")
			continue
		}
		defs = append(defs, seed.Seed{
			ID:          fmt.Sprintf("2025-01-10_category_%s", seedIdentifier(categorySeed.Name)),
			Description: fmt.Sprintf("Ensure category %s and its dishes exist", categorySeed.Name),
			Run: func(ctx context.Context) error {
				return categorySeed.ensure(ctx, menu, logger)
			},
		})
	}

	return defs
}

func seedIdentifier(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return "unknown"
	}

	var builder strings.Builder
	for _, r := range value {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			builder.WriteRune(r)
		case r == ' ' || r == '-' || r == '_' || r == '/':
			builder.WriteRune('_')
		}
	}

	if builder.Len() == 0 {
		return "seed"
	}
	return builder.String()
}

func (s TableSeed) ensure(ctx context.Context, repo TableRepo, logger apt.Logger) error {
	existing, err := repo.GetByNumber(ctx, s.Number)
	if err != nil {
		return fmt.Errorf("lookup table %d: %w", s.Number, err)
	}
	if existing != nil {
		logger.Info("Seed table already exists", "number", s.Number)
		return nil
	}

	table := NewTable()
	table.Number = s.Number
	table.Capacity = s.Capacity
	table.CreatedBy = "seed:bootstrap"
	table.UpdatedBy = "seed:bootstrap"
	table.BeforeCreate()

	if err := repo.Create(ctx, table); err != nil {
		return fmt.Errorf("create seed table %d: %w", s.Number, err)
	}

	logger.Info("Seed table created", "number", s.Number, "id", table.ID.String())
	return nil
}

func (s CategorySeed) ensure(ctx context.Context, repo MenuRepo, logger apt.Logger) error {
	category, err := repo.GetCategoryByName(ctx, s.Name)
	if err != nil {
		return fmt.Errorf("lookup category %s: %w", s.Name, err)
	}
	if category == nil {
		category = NewCategory(s.Name)
		if err := repo.CreateCategory(ctx, category); err != nil {
			return fmt.Errorf("create seed category %s: %w", s.Name, err)
		}
	}

	for _, d := range s.Dishes {
		dish := NewDish(d.Name, category.ID, d.Price)
		dish.Description = d.Description
		if d.Available != nil {
			dish.Available = *d.Available
		}
		if err := repo.CreateDish(ctx, dish); err != nil {
			return fmt.Errorf("create seed dish %s: %w", d.Name, err)
		}
	}

	logger.Info("Seed category applied", "name", s.Name, "dishes", len(s.Dishes))
	return nil
}

type mongoDatabaseProvider interface {
	GetDatabase() *mongo.Database
}

// ApplySeeds ensures the bootstrap tables and menu exist. Each step is
// recorded by the seed tracker and runs once.
func ApplySeeds(ctx context.Context, provider mongoDatabaseProvider, tables TableRepo, menu MenuRepo, seedFS fs.FS, logger apt.Logger) error {
	if tables == nil || menu == nil {
		return errors.New("table and menu repositories are required")
	}

	doc, err := LoadSeedDocument(seedFS)
	if err != nil {
		return err
	}

	defs := BuildSeeds(doc, tables, menu, logger)
	if len(defs) == 0 {
		logger.Info("No records seeds to apply")
		return nil
	}

	db := provider.GetDatabase()
	if db == nil {
		return errors.New("records database is not initialized")
	}

	logger.Info("Applying records seeds", "count", len(defs))
	if err := seed.Apply(ctx, seed.NewMongoTracker(db), defs, recordsSeedApplication); err != nil {
		return err
	}
	logger.Info("Records seeds applied successfully")
	return nil
}

// SeedingFunc returns a lifecycle OnStart function which applies seeds in
// the background.
func SeedingFunc(seedCtx context.Context, provider mongoDatabaseProvider, tables TableRepo, menu MenuRepo, seedFS fs.FS, logger apt.Logger) func(ctx context.Context) error {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}

	return func(ctx context.Context) error {
		logger.Info("Starting records seeding in background")
		go func() {
			if err := ApplySeeds(seedCtx, provider, tables, menu, seedFS, logger); err != nil && !errors.Is(err, context.Canceled) {
				logger.Errorf("Records seeds failed: %v", err)
			}
		}()
		return nil
	}
}

// StopFunc returns a lifecycle OnStop function which cancels background
// seeding.
func StopFunc(cancelFunc context.CancelFunc) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if cancelFunc != nil {
			cancelFunc()
		}
		return nil
	}
}
