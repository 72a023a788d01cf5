package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"estoque/internal/models"
)

// GORMProdutoRepository is a GORM implementation of ProdutoRepository.
type GORMProdutoRepository struct {
	db *gorm.DB
}

// NewGORMProdutoRepository creates a new instance of GORMProdutoRepository.
func NewGORMProdutoRepository(db *gorm.DB) *GORMProdutoRepository {
	return &GORMProdutoRepository{
		db: db,
	}
}

// List retrieves one page of products ordered by id descending, plus the
// total count matching the filters. Count and page run inside a single
// transaction so they see the same snapshot under concurrent writes.
func (r *GORMProdutoRepository) List(params ListParams) ([]models.Produto, int64, error) {
	produtos := make([]models.Produto, 0)
	var total int64

	filter := func(tx *gorm.DB) *gorm.DB {
		q := tx.Model(&models.Produto{})
		if params.Ativo != nil {
			q = q.Where("ativo = ?", *params.Ativo)
		}
		if params.Search != "" {
			pattern := "%" + escapeLike(params.Search) + "%"
			q = q.Where("nome LIKE ? ESCAPE '\\' OR descricao LIKE ? ESCAPE '\\'", pattern, pattern)
		}
		return q
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := filter(tx).Count(&total).Error; err != nil {
			return err
		}
		offset := (params.Page - 1) * params.Limit
		return filter(tx).
			Order("id_produto DESC").
			Offset(offset).
			Limit(params.Limit).
			Find(&produtos).Error
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list produtos: %w", err)
	}
	return produtos, total, nil
}

// FindByID retrieves a single product by its ID. Absence is not an error:
// the caller gets (nil, nil) and decides whether that is fatal.
func (r *GORMProdutoRepository) FindByID(id int64) (*models.Produto, error) {
	var produto models.Produto
	if err := r.db.First(&produto, "id_produto = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get produto by ID %d: %w", id, err)
	}
	return &produto, nil
}

// Create inserts a new product. The generated id and criado_em are written
// back into the given struct.
func (r *GORMProdutoRepository) Create(produto *models.Produto) error {
	if err := r.db.Create(produto).Error; err != nil {
		return fmt.Errorf("failed to create produto: %w", err)
	}
	return nil
}

// Update applies only the supplied columns and returns the fresh row.
// Zero affected rows means the row vanished since the caller's existence
// check; that benign race is reported as ErrNotFound.
func (r *GORMProdutoRepository) Update(id int64, fields map[string]interface{}) (*models.Produto, error) {
	res := r.db.Model(&models.Produto{}).Where("id_produto = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update produto %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	produto, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	if produto == nil {
		return nil, ErrNotFound
	}
	return produto, nil
}

// Delete hard-deletes a product. Same race caveat as Update.
func (r *GORMProdutoRepository) Delete(id int64) error {
	res := r.db.Delete(&models.Produto{}, "id_produto = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete produto %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats returns the count of active products and the sum of preco*estoque
// over them. The sum is accumulated with decimal arithmetic; floating-point
// accumulation drifts at the cent level once the table grows.
func (r *GORMProdutoRepository) Stats() (*ProdutoStats, error) {
	var produtos []models.Produto
	if err := r.db.Where("ativo = ?", true).Find(&produtos).Error; err != nil {
		return nil, fmt.Errorf("failed to load active produtos for stats: %w", err)
	}

	totalValue := decimal.Zero
	for _, p := range produtos {
		totalValue = totalValue.Add(p.Preco.Mul(decimal.NewFromInt(int64(p.Estoque))))
	}
	return &ProdutoStats{
		TotalProducts:   int64(len(produtos)),
		TotalStockValue: totalValue,
	}, nil
}

// ListRecent returns the most recently created products, newest first.
// id_produto breaks ties between rows created in the same instant.
func (r *GORMProdutoRepository) ListRecent(limit int) ([]models.Produto, error) {
	produtos := make([]models.Produto, 0)
	err := r.db.
		Order("criado_em DESC, id_produto DESC").
		Limit(limit).
		Find(&produtos).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recent produtos: %w", err)
	}
	return produtos, nil
}

// escapeLike escapes LIKE wildcards so search input matches literally.
func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
