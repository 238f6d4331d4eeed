// internal/handler/dto.go
package handler

type LoginRequest struct {
	UserID string `json:"user_id" validate:"omitempty,uuid"`
}

type SetCurrencyValueRequest struct {
	CurrencyID string   `json:"currency_id" validate:"required,notblank"`
	ValueCents *float64 `json:"value_cents" validate:"required,gte=0"`
}

type SelectTemplateRequest struct {
	TemplateID string `json:"template_id" validate:"required,notblank"`
}

// AddWalletCardRequest: даты в формате YYYY-MM-DD; пустая approval_date — заявка ещё не одобрена
type AddWalletCardRequest struct {
	PlayerNumber int    `json:"player_number" validate:"required,min=1"`
	CardID       string `json:"card_id" validate:"required,notblank"`
	ApprovalDate string `json:"approval_date" validate:"omitempty,datetime=2006-01-02"`
	ClosedDate   string `json:"closed_date" validate:"omitempty,datetime=2006-01-02"`
}
