package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"estoque/internal/apperrors"
)

var validate = newValidator()

// newValidator builds the validator used by every parse function, reporting
// violations under the JSON field names instead of the Go struct names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// CreateProdutoInput is the typed, validated body of POST /products.
type CreateProdutoInput struct {
	Nome      string           `json:"nome" validate:"required,min=2,max=120"`
	Descricao *string          `json:"descricao" validate:"omitnil,max=500"`
	Preco     *decimal.Decimal `json:"preco" validate:"required"`
	Categoria string           `json:"categoria" validate:"required,oneof=HARDWARE SOFTWARE ACESSORIOS SERVICOS OUTROS"`
	Estoque   *int             `json:"estoque" validate:"required,gte=0"`
	Ativo     *bool            `json:"ativo"`
}

// UpdateProdutoInput is the typed, validated body of PUT /products/:id.
// Every field is optional but at least one must be present.
type UpdateProdutoInput struct {
	Nome      *string          `json:"nome" validate:"omitnil,min=2,max=120"`
	Descricao *string          `json:"descricao" validate:"omitnil,max=500"`
	Preco     *decimal.Decimal `json:"preco"`
	Categoria *string          `json:"categoria" validate:"omitnil,oneof=HARDWARE SOFTWARE ACESSORIOS SERVICOS OUTROS"`
	Estoque   *int             `json:"estoque" validate:"omitnil,gte=0"`
	Ativo     *bool            `json:"ativo"`
}

// IsEmpty reports whether no field was supplied.
func (u *UpdateProdutoInput) IsEmpty() bool {
	return u.Nome == nil && u.Descricao == nil && u.Preco == nil &&
		u.Categoria == nil && u.Estoque == nil && u.Ativo == nil
}

// Fields maps the supplied fields to their column names for a partial update.
func (u *UpdateProdutoInput) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if u.Nome != nil {
		fields["nome"] = *u.Nome
	}
	if u.Descricao != nil {
		fields["descricao"] = *u.Descricao
	}
	if u.Preco != nil {
		fields["preco"] = *u.Preco
	}
	if u.Categoria != nil {
		fields["categoria"] = *u.Categoria
	}
	if u.Estoque != nil {
		fields["estoque"] = *u.Estoque
	}
	if u.Ativo != nil {
		fields["ativo"] = *u.Ativo
	}
	return fields
}

// ListQuery carries the parsed query string of GET /products.
type ListQuery struct {
	Search string
	Page   int
	Limit  int
	Ativo  *bool
}

// ParseCreateProduto parses and validates a create request body.
func ParseCreateProduto(body []byte) (*CreateProdutoInput, *apperrors.ValidationError) {
	if verr := precheckBody(body); verr != nil {
		return nil, verr
	}
	input := new(CreateProdutoInput)
	if verr := decodeStrict(body, input); verr != nil {
		return nil, verr
	}

	input.Nome = strings.TrimSpace(input.Nome)
	trimOptional(&input.Descricao)

	verr := apperrors.NewValidationError()
	collectStructErrors(validate.Struct(input), verr)
	if input.Preco != nil && !input.Preco.IsPositive() {
		verr.AddField("preco", "preço deve ser um número positivo")
	}
	if verr.HasErrors() {
		return nil, verr
	}
	return input, nil
}

// ParseUpdateProduto parses and validates a partial update request body.
func ParseUpdateProduto(body []byte) (*UpdateProdutoInput, *apperrors.ValidationError) {
	if verr := precheckBody(body); verr != nil {
		return nil, verr
	}
	input := new(UpdateProdutoInput)
	if verr := decodeStrict(body, input); verr != nil {
		return nil, verr
	}

	trimOptional(&input.Nome)
	trimOptional(&input.Descricao)

	verr := apperrors.NewValidationError()
	if input.IsEmpty() {
		verr.AddForm("envie pelo menos um campo para atualizar")
		return nil, verr
	}
	collectStructErrors(validate.Struct(input), verr)
	if input.Preco != nil && !input.Preco.IsPositive() {
		verr.AddField("preco", "preço deve ser um número positivo")
	}
	if verr.HasErrors() {
		return nil, verr
	}
	return input, nil
}

// ParseProdutoID parses the :id path parameter into a positive integer.
func ParseProdutoID(raw string) (int64, *apperrors.ValidationError) {
	verr := apperrors.NewValidationError()

	raw = strings.TrimSpace(raw)
	if raw == "" {
		verr.AddField("id", "id do produto é obrigatório")
		return 0, verr
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		verr.AddField("id", "id do produto deve ser um número inteiro")
		return 0, verr
	}
	if id <= 0 {
		verr.AddField("id", "id do produto deve ser um número positivo")
		return 0, verr
	}
	return id, nil
}

// ParseListQuery parses the query string of GET /products. Unknown keys are
// rejected; page defaults to 1 and limit to 10, with limit capped at 100.
func ParseListQuery(raw map[string]string) (*ListQuery, *apperrors.ValidationError) {
	verr := apperrors.NewValidationError()
	query := &ListQuery{Page: 1, Limit: 10}

	allowed := map[string]bool{"search": true, "page": true, "limit": true, "active": true}
	for key := range raw {
		if !allowed[key] {
			verr.AddForm(fmt.Sprintf("parâmetro não reconhecido: %q", key))
		}
	}

	if rawSearch, ok := raw["search"]; ok {
		search := strings.TrimSpace(rawSearch)
		if search == "" {
			verr.AddField("search", "search não pode ser vazio")
		} else {
			query.Search = search
		}
	}

	if rawPage, ok := raw["page"]; ok {
		page, err := strconv.Atoi(strings.TrimSpace(rawPage))
		if err != nil || page <= 0 {
			verr.AddField("page", "page deve ser um número inteiro positivo")
		} else {
			query.Page = page
		}
	}

	if rawLimit, ok := raw["limit"]; ok {
		limit, err := strconv.Atoi(strings.TrimSpace(rawLimit))
		switch {
		case err != nil || limit <= 0:
			verr.AddField("limit", "limit deve ser um número inteiro positivo")
		case limit > 100:
			verr.AddField("limit", "limit deve ser no máximo 100")
		default:
			query.Limit = limit
		}
	}

	if rawAtivo, ok := raw["active"]; ok {
		ativo, err := strconv.ParseBool(strings.TrimSpace(rawAtivo))
		if err != nil {
			verr.AddField("active", "active deve ser um valor booleano")
		} else {
			query.Ativo = &ativo
		}
	}

	if verr.HasErrors() {
		return nil, verr
	}
	return query, nil
}

// produtoBodyFields are the keys accepted in create and update bodies.
var produtoBodyFields = map[string]bool{
	"nome":      true,
	"descricao": true,
	"preco":     true,
	"categoria": true,
	"estoque":   true,
	"ativo":     true,
}

// precheckBody walks the raw top-level object before decoding, reporting
// every unknown key at once (json.Decoder would stop at the first) and
// rejecting a quoted preco, which decimal.Decimal would otherwise accept.
// Bodies that are not JSON objects fall through to decodeStrict.
func precheckBody(body []byte) *apperrors.ValidationError {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	verr := apperrors.NewValidationError()
	for _, name := range names {
		if !produtoBodyFields[name] {
			verr.AddForm(fmt.Sprintf("campo não reconhecido: %q", name))
			continue
		}
		if name == "preco" {
			if value := bytes.TrimSpace(raw[name]); len(value) > 0 && value[0] == '"' {
				verr.AddField("preco", "preco deve ser um número")
			}
		}
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}

// decodeStrict decodes a JSON body rejecting unknown fields. An empty body
// decodes to the zero value so field-level validation reports the misses.
func decodeStrict(body []byte, dst interface{}) *apperrors.ValidationError {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	verr := apperrors.NewValidationError()
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		verr.AddField(typeErr.Field, typeMessage(typeErr.Field))
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		name := strings.TrimPrefix(err.Error(), "json: unknown field ")
		verr.AddForm(fmt.Sprintf("campo não reconhecido: %s", name))
	case strings.Contains(err.Error(), "decimal"):
		// decimal.Decimal reports its own unmarshal failures; preco is the
		// only decimal field in the request bodies.
		verr.AddField("preco", "preco deve ser um número")
	default:
		verr.AddForm("corpo da requisição inválido")
	}
	return verr
}

// typeMessage translates a JSON type mismatch into the field's message.
func typeMessage(field string) string {
	switch field {
	case "nome":
		return "nome deve ser um texto"
	case "descricao":
		return "descrição deve ser um texto"
	case "preco":
		return "preco deve ser um número"
	case "categoria":
		return "A categoria deve ser um dos valores válidos"
	case "estoque":
		return "estoque deve ser um número inteiro"
	case "ativo":
		return "ativo deve ser um booleano"
	default:
		return fmt.Sprintf("%s é inválido", field)
	}
}

// collectStructErrors converts validator violations into field messages.
func collectStructErrors(err error, verr *apperrors.ValidationError) {
	if err == nil {
		return
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.AddForm("corpo da requisição inválido")
		return
	}
	for _, fe := range fieldErrs {
		verr.AddField(fe.Field(), fieldMessage(fe))
	}
}

// fieldMessage maps a violated constraint to its user-facing message.
func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "nome":
		switch fe.Tag() {
		case "required":
			return "nome é obrigatório"
		case "min":
			return "nome deve ter pelo menos 2 caracteres"
		case "max":
			return "nome deve ter no máximo 120 caracteres"
		}
	case "descricao":
		if fe.Tag() == "max" {
			return "descrição deve ter no máximo 500 caracteres"
		}
	case "preco":
		if fe.Tag() == "required" {
			return "preco é obrigatório"
		}
	case "categoria":
		switch fe.Tag() {
		case "required":
			return "A categoria é obrigatória"
		case "oneof":
			return "A categoria deve ser um dos valores válidos"
		}
	case "estoque":
		switch fe.Tag() {
		case "required":
			return "estoque é obrigatório"
		case "gte":
			return "estoque deve ser maior ou igual a zero"
		}
	}
	return fmt.Sprintf("%s é inválido", fe.Field())
}

// trimOptional trims an optional string field in place.
func trimOptional(s **string) {
	if *s != nil {
		trimmed := strings.TrimSpace(**s)
		*s = &trimmed
	}
}
