package services

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"estoque/internal/apperrors"
	"estoque/internal/models"
	"estoque/internal/repositories"
	"estoque/internal/validation"
)

// recentLimit is how many products the recent feed returns.
const recentLimit = 5

const produtoNaoEncontrado = "Produto não encontrado"

// EventPublisher publishes product domain events to the message broker.
type EventPublisher interface {
	Publish(eventType string, body []byte) error
}

// ProdutoService handles business logic related to products.
type ProdutoService struct {
	repo     repositories.ProdutoRepository
	mqClient EventPublisher
}

// NewProdutoService creates a new ProdutoService. mqClient may be nil, in
// which case event publication is skipped.
func NewProdutoService(repo repositories.ProdutoRepository, mqClient EventPublisher) *ProdutoService {
	return &ProdutoService{
		repo:     repo,
		mqClient: mqClient,
	}
}

// Create persists a new product from validated input. Ativo defaults to
// true when omitted.
func (s *ProdutoService) Create(input *validation.CreateProdutoInput) (*models.Produto, error) {
	produto := &models.Produto{
		Nome:      input.Nome,
		Descricao: input.Descricao,
		Preco:     *input.Preco,
		Estoque:   *input.Estoque,
		Categoria: models.Categoria(input.Categoria),
		Ativo:     true,
	}
	if input.Ativo != nil {
		produto.Ativo = *input.Ativo
	}

	if err := s.repo.Create(produto); err != nil {
		return nil, err
	}

	s.publishEvent("produto.criado", produto.ID)
	return produto, nil
}

// FindByID retrieves a single product; absence becomes a 404 domain error.
func (s *ProdutoService) FindByID(id int64) (*models.Produto, error) {
	produto, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if produto == nil {
		return nil, apperrors.NewNotFound(produtoNaoEncontrado)
	}
	return produto, nil
}

// List retrieves one page of products plus the total filtered count.
func (s *ProdutoService) List(query *validation.ListQuery) ([]models.Produto, int64, error) {
	return s.repo.List(repositories.ListParams{
		Search: query.Search,
		Page:   query.Page,
		Limit:  query.Limit,
		Ativo:  query.Ativo,
	})
}

// Update checks existence first, then applies the supplied fields. If the
// row vanishes between the two steps the repository's not-found degrades to
// the same 404 the existence check would have produced.
func (s *ProdutoService) Update(id int64, input *validation.UpdateProdutoInput) (*models.Produto, error) {
	if _, err := s.FindByID(id); err != nil {
		return nil, err
	}

	produto, err := s.repo.Update(id, input.Fields())
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFound(produtoNaoEncontrado)
		}
		return nil, err
	}

	s.publishEvent("produto.atualizado", produto.ID)
	return produto, nil
}

// Remove checks existence first, then hard-deletes. Same race handling as
// Update.
func (s *ProdutoService) Remove(id int64) error {
	if _, err := s.FindByID(id); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFound(produtoNaoEncontrado)
		}
		return err
	}

	s.publishEvent("produto.removido", id)
	return nil
}

// Stats returns the aggregate over active products.
func (s *ProdutoService) Stats() (*repositories.ProdutoStats, error) {
	return s.repo.Stats()
}

// ListRecent returns the 5 most recently created products.
func (s *ProdutoService) ListRecent() ([]models.Produto, error) {
	return s.repo.ListRecent(recentLimit)
}

// publishEvent sends a product event to the broker. Publication is best
// effort: a broker failure is logged and never fails the request.
func (s *ProdutoService) publishEvent(eventType string, produtoID int64) {
	if s.mqClient == nil {
		return
	}

	payload := map[string]interface{}{
		"eventID":    uuid.New().String(),
		"produtoID":  produtoID,
		"occurredAt": time.Now().Format(time.RFC3339),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event for produto %d: %v", eventType, produtoID, err)
		return
	}

	if err := s.mqClient.Publish(eventType, body); err != nil {
		log.Printf("Warning: failed to publish %s event for produto %d: %v", eventType, produtoID, err)
	}
}
