package dto

type CriarPaleteRequest struct {
	// NoPalete empty means "use the next suggested number".
	NoPalete     string  `json:"no_palete"`
	FornecedorID string  `json:"fornecedor_id" validate:"required,uuid"`
	NoGuiaForn   *string `json:"no_guia_forn"`
	RefCartao    *string `json:"ref_cartao"`
	QtPalete     *int    `json:"qt_palete" validate:"omitempty,gt=0"`
	Data         *string `json:"data"`
	AuthorID     string  `json:"author_id" validate:"required,uuid"`
}

type AtualizarPaleteRequest struct {
	NoPalete     string  `json:"no_palete" validate:"required"`
	FornecedorID string  `json:"fornecedor_id" validate:"required,uuid"`
	NoGuiaForn   *string `json:"no_guia_forn"`
	RefCartao    *string `json:"ref_cartao"`
	QtPalete     *int    `json:"qt_palete" validate:"omitempty,gt=0"`
	Data         *string `json:"data"`
	AuthorID     string  `json:"author_id" validate:"required,uuid"`
}

type PaleteResponse struct {
	ID             string  `json:"id"`
	NoPalete       string  `json:"no_palete"`
	FornecedorID   *string `json:"fornecedor_id"`
	FornecedorNome string  `json:"fornecedor_nome"`
	NoGuiaForn     *string `json:"no_guia_forn"`
	RefCartao      *string `json:"ref_cartao"`
	QtPalete       *int    `json:"qt_palete"`
	Data           string  `json:"data"`
	AuthorID       *string `json:"author_id"`
	CreatedAt      string  `json:"created_at"`
}

// PaleteFilter drives the filtered/paginated pallet listing. Search matches
// no_palete, no_guia_forn and ref_cartao (ILIKE).
type PaleteFilter struct {
	Search     string `form:"search"`
	Referencia string `form:"referencia"`
	Fornecedor string `form:"fornecedor"`
	AuthorID   string `form:"author_id"`
	DateFrom   string `form:"date_from"` // YYYY-MM-DD
	DateTo     string `form:"date_to"`
	SortBy     string `form:"sort_by,default=data"`
	SortDesc   bool   `form:"sort_desc"`
	Page       int    `form:"page,default=1"`
	Limit      int    `form:"limit,default=100"`
}

type PaleteListResponse struct {
	Data  []PaleteResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

type ProximoNumeroResponse struct {
	NoPalete string `json:"no_palete"`
}
