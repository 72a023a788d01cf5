package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categoria is the closed set of product categories.
type Categoria string

const (
	CategoriaHardware   Categoria = "HARDWARE"
	CategoriaSoftware   Categoria = "SOFTWARE"
	CategoriaAcessorios Categoria = "ACESSORIOS"
	CategoriaServicos   Categoria = "SERVICOS"
	CategoriaOutros     Categoria = "OUTROS"
)

// Categorias lists every valid category value.
var Categorias = []Categoria{
	CategoriaHardware,
	CategoriaSoftware,
	CategoriaAcessorios,
	CategoriaServicos,
	CategoriaOutros,
}

// IsValid reports whether c is one of the known categories.
func (c Categoria) IsValid() bool {
	for _, known := range Categorias {
		if c == known {
			return true
		}
	}
	return false
}

// Produto represents a product in the inventory.
// Price uses decimal.Decimal so stock-value aggregation stays exact.
type Produto struct {
	ID        int64           `json:"id_produto" gorm:"column:id_produto;primaryKey;autoIncrement"`
	Nome      string          `json:"nome" gorm:"column:nome;type:varchar(120);not null"`
	Descricao *string         `json:"descricao" gorm:"column:descricao;type:varchar(500)"`
	Preco     decimal.Decimal `json:"preco" gorm:"column:preco;type:decimal(10,2);not null"`
	Estoque   int             `json:"estoque" gorm:"column:estoque;not null"`
	Categoria Categoria       `json:"categoria" gorm:"column:categoria;type:varchar(20);not null"`
	Ativo     bool            `json:"ativo" gorm:"column:ativo;not null"`
	CriadoEm  time.Time       `json:"criado_em" gorm:"column:criado_em;autoCreateTime"`
}

// TableName overrides the default GORM table name.
func (Produto) TableName() string {
	return "produtos"
}
