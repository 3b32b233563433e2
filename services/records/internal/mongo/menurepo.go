package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/appetiteclub/frontdesk/services/records/internal/records"
)

const (
	categoriesCollection = "categories"
	dishesCollection     = "dishes"
)

type MenuRepo struct {
	categories *mongo.Collection
	dishes     *mongo.Collection
}

func NewMenuRepo(db *mongo.Database) *MenuRepo {
	return &MenuRepo{
		categories: db.Collection(categoriesCollection),
		dishes:     db.Collection(dishesCollection),
	}
}

func (r *MenuRepo) CreateCategory(ctx context.Context, category *records.Category) error {
	if category == nil {
		return fmt.Errorf("category is nil")
	}

	if _, err := r.categories.InsertOne(ctx, category); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("category %s: %w", category.Name, records.ErrDuplicate)
		}
		return fmt.Errorf("cannot create category: %w", err)
	}

	return nil
}

func (r *MenuRepo) ListCategories(ctx context.Context) ([]*records.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.categories.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("cannot list categories: %w", err)
	}
	defer cursor.Close(ctx)

	result := []*records.Category{}
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode categories: %w", err)
	}

	return result, nil
}

func (r *MenuRepo) GetCategoryByName(ctx context.Context, name string) (*records.Category, error) {
	var category records.Category
	err := r.categories.FindOne(ctx, bson.M{"name": name}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot get category: %w", err)
	}
	return &category, nil
}

func (r *MenuRepo) CreateDish(ctx context.Context, dish *records.Dish) error {
	if dish == nil {
		return fmt.Errorf("dish is nil")
	}

	if _, err := r.dishes.InsertOne(ctx, dish); err != nil {
		return fmt.Errorf("cannot create dish: %w", err)
	}

	return nil
}

func (r *MenuRepo) GetDish(ctx context.Context, id uuid.UUID) (*records.Dish, error) {
	var dish records.Dish
	err := r.dishes.FindOne(ctx, bson.M{"_id": id}).Decode(&dish)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot get dish: %w", err)
	}
	return &dish, nil
}

func (r *MenuRepo) ListDishes(ctx context.Context, filter records.DishFilter) ([]*records.Dish, error) {
	query := bson.M{}
	if filter.CategoryID != nil {
		query["category_id"] = *filter.CategoryID
	}
	if filter.AvailableOnly {
		query["available"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.dishes.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("cannot list dishes: %w", err)
	}
	defer cursor.Close(ctx)

	result := []*records.Dish{}
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode dishes: %w", err)
	}

	return result, nil
}
