package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/messkit/meal-access-service/internal/domain"
	"github.com/messkit/meal-access-service/internal/events"
	"github.com/messkit/meal-access-service/internal/mealwindow"
	"github.com/messkit/meal-access-service/internal/repository"
	apperrors "github.com/messkit/meal-access-service/pkg/util"
)

// payloadBytes gives 256 bits of entropy. Payload unguessability is the
// sole defense against forgery; QR tokens carry no signature.
const payloadBytes = 32

// TokenService issues short-lived single-use QR tokens. Issuance always
// succeeds for a valid account: a student may hold several live tokens at
// once (refreshing a QR code does not invalidate the old one), but the
// audit log's per-day-per-meal constraint lets only one ever be redeemed.
type TokenService struct {
	tokens        repository.TokenStore
	window        mealwindow.Policy
	dispatcher    events.Dispatcher
	logger        *zap.Logger
	ttl           time.Duration
	requireWindow bool
	now           func() time.Time
}

// TokenDependencies bundles collaborators for issuance.
type TokenDependencies struct {
	Tokens        repository.TokenStore
	Window        mealwindow.Policy
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
	TTL           time.Duration
	RequireWindow bool
	Now           func() time.Time
}

// NewTokenService constructs the service.
func NewTokenService(deps TokenDependencies) *TokenService {
	ttl := deps.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TokenService{
		tokens:        deps.Tokens,
		window:        deps.Window,
		dispatcher:    deps.Dispatcher,
		logger:        logger,
		ttl:           ttl,
		requireWindow: deps.RequireWindow,
		now:           now,
	}
}

// Issue creates and stores a fresh token bound to the account and meal
// type. The meal type recorded at redemption is always this one, never
// recomputed from the redemption-time window.
func (s *TokenService) Issue(ctx context.Context, account *domain.Account, meal domain.MealType) (*domain.Token, error) {
	if !domain.ValidMealType(meal) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown meal type %q", meal), nil)
	}

	now := s.now()
	if s.requireWindow {
		win, err := s.window.ActiveWindow(ctx, now)
		if err != nil {
			return nil, err
		}
		if win == nil {
			return nil, apperrors.NewValidationError("no active meal session", nil)
		}
		if win.MealType != meal {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("current session serves %s", win.MealType), nil)
		}
	}

	payload, err := generatePayload()
	if err != nil {
		return nil, err
	}

	token := &domain.Token{
		UserID:    account.ID,
		Payload:   payload,
		MealType:  meal,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.tokens.Save(ctx, token); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventTokenIssued,
			UserID:    account.ID,
			Timestamp: now,
			Payload: events.TokenIssuedPayload{
				MealType:  meal,
				ExpiresAt: token.ExpiresAt,
			},
		})
	}
	return token, nil
}

func generatePayload() (string, error) {
	buf := make([]byte, payloadBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
