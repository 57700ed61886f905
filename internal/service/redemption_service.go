package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/messkit/meal-access-service/internal/domain"
	"github.com/messkit/meal-access-service/internal/events"
	"github.com/messkit/meal-access-service/internal/mealwindow"
	"github.com/messkit/meal-access-service/internal/observability"
	"github.com/messkit/meal-access-service/internal/repository"
)

// Literal denial reasons. Existing scanner clients match on these strings.
const (
	ReasonNoActiveSession = "No active meal session. Supervisor must set timings first."
	ReasonInvalidToken    = "Invalid Token"
	ReasonTokenExpired    = "Token Expired"
	ReasonUserNotFound    = "User not found"
	ReasonAccountDisabled = "Account Disabled"
	ReasonAlreadyConsumed = "Already Consumed"
	ReasonAccessGranted   = "Access Granted"
)

// StudentSummary is the scanner-facing view of an allowed student.
type StudentSummary struct {
	Name       string          `json:"name"`
	ID         string          `json:"id"`
	Meal       domain.MealType `json:"meal"`
	Department string          `json:"department"`
	Year       string          `json:"year"`
}

// RedemptionResult is the outcome of one scan. DENIED is a business
// result, not an error; errors are reserved for infrastructure failures.
type RedemptionResult struct {
	Status  domain.MealLogStatus
	Reason  string
	Student *StudentSummary
}

// Allowed reports whether the scan granted access.
func (r *RedemptionResult) Allowed() bool {
	return r.Status == domain.StatusAllowed
}

// RedemptionService decides ALLOWED or DENIED for a presented QR payload.
type RedemptionService struct {
	tokens     repository.TokenStore
	accounts   repository.AccountRepository
	logs       repository.MealLogRepository
	window     mealwindow.Policy
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	loc        *time.Location
	now        func() time.Time
}

// RedemptionDependencies bundles collaborators for the redemption engine.
type RedemptionDependencies struct {
	Tokens     repository.TokenStore
	Accounts   repository.AccountRepository
	Logs       repository.MealLogRepository
	Window     mealwindow.Policy
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
	Location   *time.Location
	Now        func() time.Time
}

// NewRedemptionService constructs the engine.
func NewRedemptionService(deps RedemptionDependencies) *RedemptionService {
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedemptionService{
		tokens:     deps.Tokens,
		accounts:   deps.Accounts,
		logs:       deps.Logs,
		window:     deps.Window,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
		loc:        loc,
		now:        now,
	}
}

// Redeem validates a presented payload against the full chain and records
// the outcome. Each failing gate short-circuits. The early gates (window,
// token lookup, expiry, account resolution) write no audit entry because
// there is no attributable user or no business outcome; every later gate
// writes exactly one entry and notifies the student's live session.
func (s *RedemptionService) Redeem(ctx context.Context, payload, supervisorID string) (*RedemptionResult, error) {
	now := s.now()

	win, err := s.window.ActiveWindow(ctx, now)
	if err != nil {
		return nil, err
	}
	if win == nil {
		return s.denied(ReasonNoActiveSession), nil
	}

	token, err := s.tokens.Lookup(ctx, payload)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return s.denied(ReasonInvalidToken), nil
		}
		return nil, err
	}

	if token.Expired(now) {
		// The token is logically gone; reclaim it early.
		if err := s.tokens.Delete(ctx, payload); err != nil {
			s.logger.Warn("failed to delete expired token", zap.Error(err))
		}
		return s.denied(ReasonTokenExpired), nil
	}

	account, err := s.accounts.GetByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Tokens are only issued to resolved accounts; a miss here
			// means the row disappeared out of band.
			return s.denied(ReasonUserNotFound), nil
		}
		return nil, err
	}

	date := domain.MealDate(now, s.loc)

	if !account.IsActive {
		if err := s.recordDenial(ctx, account, token.MealType, supervisorID, date, ReasonAccountDisabled); err != nil {
			return nil, err
		}
		return s.denied(ReasonAccountDisabled), nil
	}

	weekday := domain.WeekdayName(now, s.loc)
	if !account.ValidOn(weekday) {
		reason := fmt.Sprintf("Not valid for %s", weekday)
		if err := s.recordDenial(ctx, account, token.MealType, supervisorID, date, reason); err != nil {
			return nil, err
		}
		return s.denied(reason), nil
	}

	consumed, err := s.logs.HasAllowed(ctx, account.ID, date, token.MealType)
	if err != nil {
		return nil, err
	}
	if consumed {
		if err := s.recordDenial(ctx, account, token.MealType, supervisorID, date, ReasonAlreadyConsumed); err != nil {
			return nil, err
		}
		return s.denied(ReasonAlreadyConsumed), nil
	}

	entry := &domain.MealLog{
		UserID:       account.ID,
		Date:         date,
		MealType:     token.MealType,
		SupervisorID: supervisorID,
		Status:       domain.StatusAllowed,
		Reason:       ReasonAccessGranted,
	}
	if err := s.logs.Insert(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrDuplicateAllowed) {
			// A concurrent redemption won the race between the duplicate
			// check and this insert.
			if err := s.recordDenial(ctx, account, token.MealType, supervisorID, date, ReasonAlreadyConsumed); err != nil {
				return nil, err
			}
			return s.denied(ReasonAlreadyConsumed), nil
		}
		return nil, err
	}
	s.notify(ctx, account, entry)

	// Consumption happens after the audit write: an observer must never see
	// a deleted token without a corresponding ALLOWED entry. Delete failure
	// is tolerable because the ALLOWED entry already blocks any replay.
	if err := s.tokens.Delete(ctx, payload); err != nil {
		s.logger.Warn("failed to consume token after grant", zap.Error(err))
	}

	s.metrics.RecordRedemption(string(domain.StatusAllowed), ReasonAccessGranted)
	return &RedemptionResult{
		Status: domain.StatusAllowed,
		Reason: ReasonAccessGranted,
		Student: &StudentSummary{
			Name:       account.Name,
			ID:         account.UserID,
			Meal:       token.MealType,
			Department: account.Department,
			Year:       account.Year,
		},
	}, nil
}

func (s *RedemptionService) denied(reason string) *RedemptionResult {
	s.metrics.RecordRedemption(string(domain.StatusDenied), reason)
	return &RedemptionResult{Status: domain.StatusDenied, Reason: reason}
}

func (s *RedemptionService) recordDenial(ctx context.Context, account *domain.Account, meal domain.MealType, supervisorID, date, reason string) error {
	entry := &domain.MealLog{
		UserID:       account.ID,
		Date:         date,
		MealType:     meal,
		SupervisorID: supervisorID,
		Status:       domain.StatusDenied,
		Reason:       reason,
	}
	if err := s.logs.Insert(ctx, entry); err != nil {
		return err
	}
	s.notify(ctx, account, entry)
	return nil
}

// notify publishes the log entry to the student's live session. Best
// effort: failures never affect the redemption outcome.
func (s *RedemptionService) notify(ctx context.Context, account *domain.Account, entry *domain.MealLog) {
	if s.dispatcher == nil {
		return
	}
	supervisorName := ""
	if supervisor, err := s.accounts.GetByID(ctx, entry.SupervisorID); err == nil {
		supervisorName = supervisor.Name
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventMealLogCreated,
		UserID:    account.ID,
		Timestamp: s.now(),
		Payload: events.MealLogCreatedPayload{
			LogID:          entry.ID,
			Date:           entry.Date,
			MealType:       entry.MealType,
			SupervisorID:   entry.SupervisorID,
			SupervisorName: supervisorName,
			Status:         entry.Status,
			Reason:         entry.Reason,
			Timestamp:      entry.Timestamp,
		},
	})
}
