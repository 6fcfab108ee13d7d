package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"sokoni/internal/models"
)

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) List(activeOnly bool) ([]models.PointPackage, error) {
	var packages []models.PointPackage
	query := r.db.Order("display_order ASC, id ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	if err := query.Find(&packages).Error; err != nil {
		return nil, fmt.Errorf("failed to list point packages: %w", err)
	}
	return packages, nil
}

func (r *catalogRepository) Get(id uint) (*models.PointPackage, error) {
	var pkg models.PointPackage
	if err := r.db.First(&pkg, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("failed to get point package: %w", err)
	}
	return &pkg, nil
}

func (r *catalogRepository) Create(pkg *models.PointPackage) error {
	if err := r.db.Create(pkg).Error; err != nil {
		return fmt.Errorf("failed to create point package: %w", err)
	}
	return nil
}
