package expense

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/akasem/divvy/internal/activity"
	"github.com/akasem/divvy/internal/exchange"
	"github.com/akasem/divvy/internal/expense/split"
	"github.com/akasem/divvy/internal/group"
	"github.com/akasem/divvy/internal/money"
	"github.com/akasem/divvy/internal/validate"
)

// Common errors
var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrGroupNotFound   = errors.New("group not found")
	ErrNotGroupMember  = errors.New("user is not a member of the group")
	ErrNotPayer        = errors.New("only the payer can delete an expense")
)

// Service handles expense business logic
type Service struct {
	repo         *Repository
	groupRepo    *group.Repository
	splitFactory *split.Factory // Factory pattern for creating split strategies
	rates        *exchange.Service
	feed         *activity.Service
}

// NewService creates a new expense service with dependencies injected
func NewService(repo *Repository, groupRepo *group.Repository, splitFactory *split.Factory, rates *exchange.Service, feed *activity.Service) *Service {
	return &Service{
		repo:         repo,
		groupRepo:    groupRepo,
		splitFactory: splitFactory,
		rates:        rates,
		feed:         feed,
	}
}

// CreateExpense creates a new expense and calculates shares using the
// appropriate split strategy. The amount is given in the expense's original
// currency; the current rate to the group's main currency is snapshotted on
// the expense, and both the total and every share are stored in both
// currencies, each summing exactly to its total.
func (s *Service) CreateExpense(ctx context.Context, payerID int64, req *CreateExpenseRequest) (*ExpenseWithShares, error) {
	total, err := money.FromString(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", req.Amount, err)
	}
	if err := validate.NonNegativeAmount("amount", total); err != nil {
		return nil, err
	}

	grp, err := s.groupRepo.GetByID(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}
	if grp == nil {
		return nil, ErrGroupNotFound
	}

	members, err := s.groupRepo.GetMembers(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}
	memberIDs := make([]int64, len(members))
	for i, m := range members {
		memberIDs[i] = m.UserID
	}

	participantIDs := make([]int64, len(req.Participants))
	for i, p := range req.Participants {
		participantIDs[i] = p.MemberID
	}
	if err := validate.MembersResolve("payer_id", []int64{payerID}, memberIDs); err != nil {
		return nil, ErrNotGroupMember
	}
	if err := validate.MembersResolve("participants", participantIDs, memberIDs); err != nil {
		return nil, err
	}

	inputs, err := parseParticipants(req.Participants)
	if err != nil {
		return nil, err
	}

	// Use FACTORY PATTERN to get the appropriate split strategy
	strategy, err := s.splitFactory.CreateFromString(req.SplitType)
	if err != nil {
		return nil, err
	}

	// Use STRATEGY PATTERN - calculate shares using the selected strategy
	shares, err := strategy.Calculate(total, inputs)
	if err != nil {
		return nil, err
	}

	rate, err := s.snapshotRate(ctx, req.CurrencyCode, grp.MainCurrency)
	if err != nil {
		return nil, err
	}
	convertedTotal := exchange.Apply(total, rate)
	convertedShares := convertShares(shares, rate, convertedTotal)

	created, err := s.repo.CreateExpense(ctx, &Expense{
		GroupID:         req.GroupID,
		PayerID:         payerID,
		Description:     req.Description,
		Amount:          total,
		CurrencyCode:    req.CurrencyCode,
		ExchangeRate:    rate,
		ConvertedAmount: convertedTotal,
		PaymentType:     PaymentTypeExpense,
		SplitType:       req.SplitType,
	})
	if err != nil {
		return nil, err
	}

	persisted := make([]*Share, len(shares))
	for i, share := range shares {
		// TODO: Should rollback expense creation in a transaction
		persisted[i], err = s.repo.CreateShare(ctx, created.ID, share.MemberID, share.Amount, convertedShares[i])
		if err != nil {
			return nil, err
		}
	}

	// Feed entries never fail the expense
	payerName := memberName(members, payerID)
	for _, share := range persisted {
		if share.MemberID == payerID {
			continue
		}
		if _, err := s.feed.RecordExpenseAdded(ctx, share.MemberID, payerName, share.ConvertedAmount, grp.MainCurrency, created.ID); err != nil {
			log.Printf("failed to record expense activity: %v", err)
		}
	}

	return &ExpenseWithShares{
		Expense: created,
		Shares:  persisted,
	}, nil
}

// CreateTransfer records a direct payment from one member to another in the
// group's main currency. A transfer carries a single share, the recipient's,
// so the balance engine credits the payer and debits the payee.
func (s *Service) CreateTransfer(ctx context.Context, groupID, payerID, payeeID int64, amount money.Amount) (*ExpenseWithShares, error) {
	if err := validate.NonNegativeAmount("amount", amount); err != nil {
		return nil, err
	}

	grp, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if grp == nil {
		return nil, ErrGroupNotFound
	}

	members, err := s.groupRepo.GetMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}
	memberIDs := make([]int64, len(members))
	for i, m := range members {
		memberIDs[i] = m.UserID
	}
	if err := validate.MembersResolve("members", []int64{payerID, payeeID}, memberIDs); err != nil {
		return nil, ErrNotGroupMember
	}

	created, err := s.repo.CreateExpense(ctx, &Expense{
		GroupID:         groupID,
		PayerID:         payerID,
		Description:     "Settlement payment",
		Amount:          amount,
		CurrencyCode:    grp.MainCurrency,
		ExchangeRate:    money.Scale,
		ConvertedAmount: amount,
		PaymentType:     PaymentTypeTransfer,
		SplitType:       string(split.TypeExact),
	})
	if err != nil {
		return nil, err
	}

	share, err := s.repo.CreateShare(ctx, created.ID, payeeID, amount, amount)
	if err != nil {
		return nil, err
	}

	if _, err := s.feed.RecordTransfer(ctx, payeeID, memberName(members, payerID), amount, grp.MainCurrency, created.ID); err != nil {
		log.Printf("failed to record transfer activity: %v", err)
	}

	return &ExpenseWithShares{
		Expense: created,
		Shares:  []*Share{share},
	}, nil
}

// GetExpenseByID retrieves an expense with its shares
func (s *Service) GetExpenseByID(ctx context.Context, id int64) (*ExpenseWithShares, error) {
	expense, err := s.repo.GetExpenseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, ErrExpenseNotFound
	}

	shares, err := s.repo.GetSharesByExpenseID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ExpenseWithShares{
		Expense: expense,
		Shares:  shares,
	}, nil
}

// ListExpensesByGroupID retrieves expenses for a group
func (s *Service) ListExpensesByGroupID(ctx context.Context, groupID int64, page, perPage int) ([]*Expense, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListExpensesByGroupID(ctx, groupID, perPage, offset)
}

// DeleteExpense deletes an expense and its shares
func (s *Service) DeleteExpense(ctx context.Context, id, userID int64) error {
	expense, err := s.repo.GetExpenseByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return ErrExpenseNotFound
	}

	// Only the payer can delete
	if expense.PayerID != userID {
		return ErrNotPayer
	}

	shares, err := s.repo.GetSharesByExpenseID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteExpense(ctx, id); err != nil {
		return err
	}

	// Feed entries never fail the delete
	for _, share := range shares {
		if share.MemberID == userID {
			continue
		}
		if _, err := s.feed.RecordExpenseDeleted(ctx, share.MemberID, expense.PayerName, expense.Description); err != nil {
			log.Printf("failed to record expense deletion activity: %v", err)
		}
	}

	return nil
}

// snapshotRate picks the conversion rate stored on the expense. Same-currency
// expenses get the identity rate without touching the provider.
func (s *Service) snapshotRate(ctx context.Context, from, to string) (money.Amount, error) {
	if from == to {
		return money.Scale, nil
	}
	return s.rates.Rate(ctx, from, to)
}

// parseParticipants turns request participants into split inputs, rejecting
// malformed percentages and exact amounts up front.
func parseParticipants(participants []*ParticipantRequest) ([]split.Input, error) {
	inputs := make([]split.Input, len(participants))
	for i, p := range participants {
		participant := &Participant{MemberID: p.MemberID}
		if p.Percentage != nil {
			if err := validate.FiniteNumber("percentage", *p.Percentage); err != nil {
				return nil, err
			}
			pct, err := money.PercentageFromFloat(*p.Percentage)
			if err != nil {
				return nil, fmt.Errorf("invalid percentage for member %d: %w", p.MemberID, err)
			}
			participant.Percentage = &pct
		}
		if p.Amount != nil {
			amount, err := money.FromString(*p.Amount)
			if err != nil {
				return nil, fmt.Errorf("invalid amount for member %d: %w", p.MemberID, err)
			}
			participant.Amount = &amount
		}
		inputs[i] = participant.ToSplitInput()
	}
	return inputs, nil
}

// memberName resolves a member's username from an already-loaded member list.
func memberName(members []*group.GroupMember, userID int64) string {
	for _, m := range members {
		if m.UserID == userID {
			return m.Username
		}
	}
	return "Someone"
}

// convertShares converts each original-currency share with the snapshot rate,
// then redistributes truncation leftovers so the converted shares sum exactly
// to the converted total.
func convertShares(shares []split.Share, rate, convertedTotal money.Amount) []money.Amount {
	converted := make([]money.Amount, len(shares))
	for i, share := range shares {
		converted[i] = exchange.Apply(share.Amount, rate)
	}
	return split.NormalizeExact(converted, convertedTotal)
}
