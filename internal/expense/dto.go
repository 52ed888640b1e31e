package expense

// ParticipantRequest is one participant in an expense creation request.
// Amount (for EXACT splits) is a decimal string; Percentage (for PERCENTAGE
// splits) is a decimal number with up to 4 meaningful decimal digits.
type ParticipantRequest struct {
	MemberID   int64    `json:"member_id" validate:"required"`
	Percentage *float64 `json:"percentage,omitempty"`
	Amount     *string  `json:"amount,omitempty"`
}

// CreateExpenseRequest represents the request to create an expense. Amount is
// a decimal string in the original currency, e.g. "45.90".
type CreateExpenseRequest struct {
	GroupID      int64                 `json:"group_id" validate:"required"`
	Description  string                `json:"description" validate:"required,min=1,max=255"`
	Amount       string                `json:"amount" validate:"required"`
	CurrencyCode string                `json:"currency_code" validate:"required,len=3,uppercase"`
	SplitType    string                `json:"split_type" validate:"required,oneof=EQUAL PERCENTAGE EXACT"`
	Participants []*ParticipantRequest `json:"participants" validate:"required,min=1,dive"`
}

// ExpenseResponse represents the response for an expense. Monetary fields are
// rendered at 2 decimal digits; the exchange rate keeps all 4.
type ExpenseResponse struct {
	ID              int64            `json:"id"`
	GroupID         int64            `json:"group_id"`
	PayerID         int64            `json:"payer_id"`
	PayerName       string           `json:"payer_name,omitempty"`
	Description     string           `json:"description"`
	Amount          string           `json:"amount"`
	CurrencyCode    string           `json:"currency_code"`
	ExchangeRate    string           `json:"exchange_rate"`
	ConvertedAmount string           `json:"converted_amount"`
	PaymentType     PaymentType      `json:"payment_type"`
	SplitType       string           `json:"split_type"`
	CreatedAt       string           `json:"created_at"`
	Shares          []*ShareResponse `json:"shares,omitempty"`
}

// ShareResponse represents the response for a share
type ShareResponse struct {
	ID              int64  `json:"id"`
	ExpenseID       int64  `json:"expense_id"`
	MemberID        int64  `json:"member_id"`
	MemberName      string `json:"member_name,omitempty"`
	Amount          string `json:"amount"`
	ConvertedAmount string `json:"converted_amount"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	return &ExpenseResponse{
		ID:              e.ID,
		GroupID:         e.GroupID,
		PayerID:         e.PayerID,
		PayerName:       e.PayerName,
		Description:     e.Description,
		Amount:          e.Amount.Format(),
		CurrencyCode:    e.CurrencyCode,
		ExchangeRate:    e.ExchangeRate.Decimal().String(),
		ConvertedAmount: e.ConvertedAmount.Format(),
		PaymentType:     e.PaymentType,
		SplitType:       e.SplitType,
		CreatedAt:       e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a Share model to a ShareResponse DTO
func (s *Share) ToResponse() *ShareResponse {
	return &ShareResponse{
		ID:              s.ID,
		ExpenseID:       s.ExpenseID,
		MemberID:        s.MemberID,
		MemberName:      s.MemberName,
		Amount:          s.Amount.Format(),
		ConvertedAmount: s.ConvertedAmount.Format(),
	}
}
