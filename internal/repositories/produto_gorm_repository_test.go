package repositories_test

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"estoque/internal/models"
	"estoque/internal/repositories"
)

// setupRepo opens a fresh in-memory SQLite database for one test. The DSN is
// keyed by the test name so tests never share state, and LIKE is forced
// case-sensitive to match the PostgreSQL search semantics.
func setupRepo(t *testing.T) *repositories.GORMProdutoRepository {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_case_sensitive_like=1", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "failed to open in-memory database")

	require.NoError(t, db.AutoMigrate(&models.Produto{}))

	return repositories.NewGORMProdutoRepository(db)
}

func newProduto(nome string, preco string, estoque int, ativo bool) *models.Produto {
	return &models.Produto{
		Nome:      nome,
		Preco:     decimal.RequireFromString(preco),
		Estoque:   estoque,
		Categoria: models.CategoriaAcessorios,
		Ativo:     ativo,
	}
}

func TestGORMProdutoRepository_CreateAndFindByID(t *testing.T) {
	repo := setupRepo(t)

	first := newProduto("Mouse Gamer", "99.90", 10, true)
	second := newProduto("Teclado", "510.00", 38, true)

	assert.NoError(t, repo.Create(first))
	assert.NoError(t, repo.Create(second))

	assert.Greater(t, first.ID, int64(0), "id is assigned by the store")
	assert.Greater(t, second.ID, first.ID, "ids grow with insertion order")
	assert.False(t, first.CriadoEm.IsZero())

	found, err := repo.FindByID(first.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Mouse Gamer", found.Nome)
	assert.Equal(t, 10, found.Estoque)
	assert.Equal(t, models.CategoriaAcessorios, found.Categoria)
	assert.Nil(t, found.Descricao)
	assert.True(t, found.Preco.Equal(decimal.RequireFromString("99.90")))
}

func TestGORMProdutoRepository_FindByIDAbsent(t *testing.T) {
	repo := setupRepo(t)

	found, err := repo.FindByID(999)

	assert.NoError(t, err, "absence is not an error")
	assert.Nil(t, found)
}

func TestGORMProdutoRepository_ListPagination(t *testing.T) {
	repo := setupRepo(t)

	for i := 1; i <= 15; i++ {
		require.NoError(t, repo.Create(newProduto(fmt.Sprintf("Item %02d", i), "10.00", 1, true)))
	}

	page1, total, err := repo.List(repositories.ListParams{Page: 1, Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(15), total)
	assert.Len(t, page1, 10)
	assert.Equal(t, "Item 15", page1[0].Nome, "newest id first")

	page2, total, err := repo.List(repositories.ListParams{Page: 2, Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(15), total, "total ignores pagination")
	assert.Len(t, page2, 5)
	assert.Equal(t, "Item 05", page2[0].Nome)
}

func TestGORMProdutoRepository_ListSearchCaseSensitive(t *testing.T) {
	repo := setupRepo(t)

	descricao := "acompanha mouse pad"
	comDescricao := newProduto("Teclado", "510.00", 38, true)
	comDescricao.Descricao = &descricao

	require.NoError(t, repo.Create(newProduto("Mouse Gamer", "99.90", 10, true)))
	require.NoError(t, repo.Create(comDescricao))

	// Capital M only matches the product name.
	produtos, total, err := repo.List(repositories.ListParams{Search: "Mouse", Page: 1, Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Mouse Gamer", produtos[0].Nome)

	// Lowercase m only matches the description.
	produtos, total, err = repo.List(repositories.ListParams{Search: "mouse", Page: 1, Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Teclado", produtos[0].Nome)

	// No match yields an empty page with total zero.
	produtos, total, err = repo.List(repositories.ListParams{Search: "monitor", Page: 1, Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, produtos)
}

func TestGORMProdutoRepository_ListAtivoFilter(t *testing.T) {
	repo := setupRepo(t)

	require.NoError(t, repo.Create(newProduto("Ativo", "10.00", 1, true)))
	require.NoError(t, repo.Create(newProduto("Inativo", "10.00", 1, false)))

	ativo := true
	produtos, total, err := repo.List(repositories.ListParams{Page: 1, Limit: 10, Ativo: &ativo})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Ativo", produtos[0].Nome)

	inativo := false
	produtos, total, err = repo.List(repositories.ListParams{Page: 1, Limit: 10, Ativo: &inativo})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Inativo", produtos[0].Nome)
}

func TestGORMProdutoRepository_UpdatePartial(t *testing.T) {
	repo := setupRepo(t)

	produto := newProduto("Mouse", "99.90", 10, true)
	require.NoError(t, repo.Create(produto))

	updated, err := repo.Update(produto.ID, map[string]interface{}{"estoque": 5})

	assert.NoError(t, err)
	assert.Equal(t, 5, updated.Estoque)
	assert.Equal(t, "Mouse", updated.Nome, "unsupplied fields stay unchanged")
	assert.True(t, updated.Preco.Equal(decimal.RequireFromString("99.90")))
	assert.Equal(t, produto.ID, updated.ID)
}

func TestGORMProdutoRepository_UpdateAbsent(t *testing.T) {
	repo := setupRepo(t)

	updated, err := repo.Update(999, map[string]interface{}{"estoque": 5})

	assert.Nil(t, updated)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMProdutoRepository_Delete(t *testing.T) {
	repo := setupRepo(t)

	produto := newProduto("Mouse", "99.90", 10, true)
	require.NoError(t, repo.Create(produto))

	assert.NoError(t, repo.Delete(produto.ID))

	found, err := repo.FindByID(produto.ID)
	assert.NoError(t, err)
	assert.Nil(t, found, "hard delete removes the row")

	assert.ErrorIs(t, repo.Delete(produto.ID), repositories.ErrNotFound)
}

func TestGORMProdutoRepository_Stats(t *testing.T) {
	repo := setupRepo(t)

	mouse := newProduto("Mouse", "99.90", 10, true)
	cabo := newProduto("Cabo", "10.50", 3, true)
	require.NoError(t, repo.Create(mouse))
	require.NoError(t, repo.Create(cabo))
	require.NoError(t, repo.Create(newProduto("Fora de linha", "5.00", 100, false)))

	stats, err := repo.Stats()

	assert.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalProducts, "inactive products are excluded")
	// 99.90*10 + 10.50*3 = 1030.50
	assert.True(t, stats.TotalStockValue.Equal(decimal.RequireFromString("1030.50")),
		"expected 1030.50, got %s", stats.TotalStockValue)

	// Deactivating a product removes it from the next computation.
	_, err = repo.Update(mouse.ID, map[string]interface{}{"ativo": false})
	require.NoError(t, err)

	stats, err = repo.Stats()
	assert.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalProducts)
	assert.True(t, stats.TotalStockValue.Equal(decimal.RequireFromString("31.50")),
		"expected 31.50, got %s", stats.TotalStockValue)
}

func TestGORMProdutoRepository_ListRecent(t *testing.T) {
	repo := setupRepo(t)

	for i := 1; i <= 6; i++ {
		require.NoError(t, repo.Create(newProduto(fmt.Sprintf("Item %d", i), "10.00", 1, true)))
	}

	produtos, err := repo.ListRecent(5)

	assert.NoError(t, err)
	assert.Len(t, produtos, 5)
	assert.Equal(t, "Item 6", produtos[0].Nome, "newest first")
	assert.Equal(t, "Item 2", produtos[4].Nome, "oldest item falls off the feed")
}
