package settlement

import (
	"context"
	"errors"

	"github.com/akasem/divvy/internal/balance"
	"github.com/akasem/divvy/internal/expense"
	"github.com/akasem/divvy/internal/money"
	"github.com/akasem/divvy/internal/validate"
)

// Common errors
var (
	ErrCannotSettleSelf = errors.New("cannot record a settlement with yourself")
	ErrNothingToSettle  = errors.New("no outstanding settlement between these members")
)

// Service computes balances and settlement recommendations for a group and
// records accepted settlements back into the ledger as transfers.
type Service struct {
	repo           *Repository
	expenseService *expense.Service
}

// NewService creates a new settlement service
func NewService(repo *Repository, expenseService *expense.Service) *Service {
	return &Service{
		repo:           repo,
		expenseService: expenseService,
	}
}

// Balances returns every member's net balance in the group's main currency.
func (s *Service) Balances(ctx context.Context, groupID int64) ([]MemberBalance, error) {
	ledger, err := s.repo.GetGroupLedger(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := validateLedger(ledger); err != nil {
		return nil, err
	}

	balances := balance.Compute(ledger.Entries, ledger.MemberIDs())

	result := make([]MemberBalance, len(ledger.Members))
	for i, m := range ledger.Members {
		result[i] = MemberBalance{
			MemberID: m.ID,
			Name:     m.Name,
			Amount:   balances[m.ID],
		}
	}
	return result, nil
}

// Settlements returns the group's settlement recommendations. With simplified
// set, the greedy minimal-transfer list over net balances is returned;
// otherwise the literal pairwise debts.
func (s *Service) Settlements(ctx context.Context, groupID int64, simplified bool) ([]Settlement, error) {
	ledger, err := s.repo.GetGroupLedger(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := validateLedger(ledger); err != nil {
		return nil, err
	}

	var settlements []Settlement
	if simplified {
		balances := balance.Compute(ledger.Entries, ledger.MemberIDs())
		settlements = Simplify(balances, ledger.MemberIDs())
	} else {
		settlements = NoSimplify(ledger.Entries)
	}

	decorate(settlements, ledger.memberNames())
	return settlements, nil
}

// SimplificationSteps returns the replayable trace from the pairwise debt
// list down to the simplified settlement list.
func (s *Service) SimplificationSteps(ctx context.Context, groupID int64) ([]Step, error) {
	ledger, err := s.repo.GetGroupLedger(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := validateLedger(ledger); err != nil {
		return nil, err
	}

	steps := Steps(ledger.Entries, ledger.MemberIDs())

	names := ledger.memberNames()
	for i := range steps {
		decorate(steps[i].Settlements, names)
	}
	return steps, nil
}

// Record materializes a settlement as a transfer-type expense in the group's
// main currency: the payer pays, the payee holds the sole share. On the next
// computation the pair's outstanding amount shrinks accordingly.
func (s *Service) Record(ctx context.Context, groupID, payerID, payeeID int64, amount money.Amount) (*expense.ExpenseWithShares, error) {
	if payerID == payeeID {
		return nil, ErrCannotSettleSelf
	}
	if amount <= 0 {
		return nil, ErrNothingToSettle
	}

	ledger, err := s.repo.GetGroupLedger(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := validate.MembersResolve("settlement", []int64{payerID, payeeID}, ledger.MemberIDs()); err != nil {
		return nil, err
	}

	return s.expenseService.CreateTransfer(ctx, groupID, payerID, payeeID, amount)
}

// validateLedger guards the solver against malformed snapshots: duplicate
// members and shares or payers referencing unknown members are rejected
// before any computation runs.
func validateLedger(ledger *Ledger) error {
	memberIDs := ledger.MemberIDs()
	if err := validate.NoDuplicateIDs("members", memberIDs); err != nil {
		return err
	}

	var refs []int64
	for _, entry := range ledger.Entries {
		refs = append(refs, entry.Expense.PayerID)
		for _, share := range entry.Shares {
			refs = append(refs, share.MemberID)
			if err := validate.NonNegativeAmount("share.converted_amount", share.ConvertedAmount); err != nil {
				return err
			}
		}
		if err := validate.NonNegativeAmount("expense.converted_amount", entry.Expense.ConvertedAmount); err != nil {
			return err
		}
	}
	return validate.MembersResolve("expenses", refs, memberIDs)
}

func decorate(settlements []Settlement, names map[int64]string) {
	for i := range settlements {
		settlements[i].PayerName = names[settlements[i].PayerID]
		settlements[i].PayeeName = names[settlements[i].PayeeID]
	}
}
