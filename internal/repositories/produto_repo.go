package repositories

import (
	"errors"

	"github.com/shopspring/decimal"

	"estoque/internal/models"
)

// ErrNotFound reports that the target row does not exist. Mutations return
// it when the row vanished between the caller's existence check and the
// write; callers map it to their own not-found signal.
var ErrNotFound = errors.New("produto not found")

// ListParams carries the filters and pagination applied by List.
type ListParams struct {
	Search string
	Page   int
	Limit  int
	Ativo  *bool
}

// ProdutoStats is the aggregate over active products.
type ProdutoStats struct {
	TotalProducts   int64           `json:"totalProducts"`
	TotalStockValue decimal.Decimal `json:"totalStockValue"`
}

// ProdutoRepository defines the interface for product data access.
type ProdutoRepository interface {
	// List returns one page of products plus the total count matching the
	// filters, both read from the same snapshot.
	List(params ListParams) ([]models.Produto, int64, error)
	// FindByID returns (nil, nil) when no product has the given id.
	FindByID(id int64) (*models.Produto, error)
	Create(produto *models.Produto) error
	// Update applies only the supplied columns and returns the fresh row.
	Update(id int64, fields map[string]interface{}) (*models.Produto, error)
	Delete(id int64) error
	Stats() (*ProdutoStats, error)
	ListRecent(limit int) ([]models.Produto, error)
}
