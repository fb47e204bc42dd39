package repository

import (
	"app/internal/domain/model"
	"context"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	FindBySlug(ctx context.Context, slug string) (model.Category, error)
}
