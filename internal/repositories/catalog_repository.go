package repositories

import (
	"errors"

	"sokoni/internal/models"
)

var (
	ErrPackageNotFound = errors.New("point package not found")
)

// CatalogRepository reads the point package catalog. The catalog is owned by
// an external subsystem; the core only lists and fetches rows (Create exists
// for the seed command).
type CatalogRepository interface {
	List(activeOnly bool) ([]models.PointPackage, error)
	Get(id uint) (*models.PointPackage, error)
	Create(pkg *models.PointPackage) error
}
