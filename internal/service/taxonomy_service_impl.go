package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/chetan-code/missioncontrol/internal/db"
	"github.com/chetan-code/missioncontrol/internal/models"
	"github.com/chetan-code/missioncontrol/internal/repository"
	"github.com/google/uuid"
)

type taxonomyService struct {
	taxonomy repository.TaxonomyRepo
	uow      db.UnitOfWork
}

func NewTaxonomyService(taxonomy repository.TaxonomyRepo, uow db.UnitOfWork) TaxonomyService {
	return &taxonomyService{taxonomy: taxonomy, uow: uow}
}

func (s *taxonomyService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	name, err := requireText("name", name)
	if err != nil {
		return nil, err
	}
	c := &models.Category{ID: uuid.New().String(), Name: name, CreatedAt: time.Now().UTC()}
	if err := s.taxonomy.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *taxonomyService) CreateType(ctx context.Context, name, categoryID string) (*models.Type, error) {
	name, err := requireText("name", name)
	if err != nil {
		return nil, err
	}
	categoryID, err = requireText("category_id", categoryID)
	if err != nil {
		return nil, err
	}
	t := &models.Type{ID: uuid.New().String(), Name: name, CategoryID: categoryID, CreatedAt: time.Now().UTC()}
	if err := s.taxonomy.CreateType(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *taxonomyService) CreateItem(ctx context.Context, name, typeID string) (*models.Item, error) {
	name, err := requireText("name", name)
	if err != nil {
		return nil, err
	}
	typeID, err = requireText("type_id", typeID)
	if err != nil {
		return nil, err
	}
	i := &models.Item{ID: uuid.New().String(), Name: name, TypeID: typeID, CreatedAt: time.Now().UTC()}
	if err := s.taxonomy.CreateItem(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

func (s *taxonomyService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.taxonomy.ListCategories(ctx)
}

func (s *taxonomyService) ListTypes(ctx context.Context, categoryID string) ([]models.Type, error) {
	return s.taxonomy.ListTypes(ctx, categoryID)
}

func (s *taxonomyService) ListItems(ctx context.Context, typeID string) ([]models.Item, error) {
	return s.taxonomy.ListItems(ctx, typeID)
}

// DeleteCategory removes the category with its types and items. Tasks that
// reference any of them keep their ids and read back as unresolved.
func (s *taxonomyService) DeleteCategory(ctx context.Context, id string) error {
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewTaxonomyRepo(tx).DeleteCategory(ctx, id)
	})
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "taxonomy_category_deleted", "category_id", id)
	return nil
}

func (s *taxonomyService) DeleteType(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewTaxonomyRepo(tx).DeleteType(ctx, id)
	})
}

func (s *taxonomyService) DeleteItem(ctx context.Context, id string) error {
	return s.taxonomy.DeleteItem(ctx, id)
}
