package settlement

import "fmt"

// RecordSettlementRequest asks to materialize a computed settlement as a
// transfer in the ledger. Amount is a decimal string, e.g. "12.34".
type RecordSettlementRequest struct {
	PayerID int64  `json:"payer_id" validate:"required"`
	PayeeID int64  `json:"payee_id" validate:"required"`
	Amount  string `json:"amount" validate:"required"`
}

// SettlementResponse represents one recommended transfer
type SettlementResponse struct {
	PayerID   int64  `json:"payer_id"`
	PayerName string `json:"payer_name,omitempty"`
	PayeeID   int64  `json:"payee_id"`
	PayeeName string `json:"payee_name,omitempty"`
	Amount    string `json:"amount"`
}

// MemberBalanceResponse represents one member's net balance
type MemberBalanceResponse struct {
	MemberID int64  `json:"member_id"`
	Name     string `json:"name"`
	Amount   string `json:"amount"`
	Message  string `json:"message"`
}

// StepResponse is one frame of the simplification trace
type StepResponse struct {
	Settlements []SettlementResponse `json:"settlements"`
	Highlighted []int                `json:"highlighted,omitempty"`
	Result      []int                `json:"result,omitempty"`
}

// ToResponse converts a Settlement to its DTO, rendering the amount at two
// decimal digits
func (s Settlement) ToResponse() SettlementResponse {
	return SettlementResponse{
		PayerID:   s.PayerID,
		PayerName: s.PayerName,
		PayeeID:   s.PayeeID,
		PayeeName: s.PayeeName,
		Amount:    s.Amount.Format(),
	}
}

// ToResponse converts a MemberBalance to its DTO
func (b MemberBalance) ToResponse() MemberBalanceResponse {
	var message string
	switch {
	case b.Amount > 0:
		message = fmt.Sprintf("%s is owed %s", b.Name, b.Amount.Format())
	case b.Amount < 0:
		message = fmt.Sprintf("%s owes %s", b.Name, (-b.Amount).Format())
	default:
		message = fmt.Sprintf("%s is settled up", b.Name)
	}

	return MemberBalanceResponse{
		MemberID: b.MemberID,
		Name:     b.Name,
		Amount:   b.Amount.Format(),
		Message:  message,
	}
}

// ToResponse converts a Step to its DTO
func (s Step) ToResponse() StepResponse {
	settlements := make([]SettlementResponse, len(s.Settlements))
	for i, st := range s.Settlements {
		settlements[i] = st.ToResponse()
	}
	return StepResponse{
		Settlements: settlements,
		Highlighted: s.Highlighted,
		Result:      s.Result,
	}
}
