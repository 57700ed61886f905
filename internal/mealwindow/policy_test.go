package mealwindow

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/messkit/meal-access-service/internal/domain"
)

func newTestTablePolicy(t *testing.T) *TablePolicy {
	t.Helper()
	policy, err := NewTablePolicy(time.UTC, "07:30-09:30", "12:00-14:30", "19:00-21:30")
	if err != nil {
		t.Fatalf("new table policy: %v", err)
	}
	return policy
}

func TestTablePolicyRanges(t *testing.T) {
	policy := newTestTablePolicy(t)

	cases := []struct {
		name string
		hour int
		min  int
		want domain.MealType
		open bool
	}{
		{"before breakfast", 7, 29, "", false},
		{"breakfast opens", 7, 30, domain.MealBreakfast, true},
		{"breakfast closes inclusive", 9, 30, domain.MealBreakfast, true},
		{"between meals", 10, 0, "", false},
		{"lunch opens", 12, 0, domain.MealLunch, true},
		{"mid lunch", 13, 15, domain.MealLunch, true},
		{"lunch closes inclusive", 14, 30, domain.MealLunch, true},
		{"after lunch", 14, 31, "", false},
		{"dinner", 20, 0, domain.MealDinner, true},
		{"late night", 23, 0, "", false},
		{"midnight", 0, 0, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			now := time.Date(2025, 3, 10, tc.hour, tc.min, 0, 0, time.UTC)
			window, err := policy.ActiveWindow(context.Background(), now)
			if err != nil {
				t.Fatalf("active window: %v", err)
			}
			if !tc.open {
				if window != nil {
					t.Fatalf("want closed, got %+v", window)
				}
				return
			}
			if window == nil {
				t.Fatalf("want %s open, got closed", tc.want)
			}
			if window.MealType != tc.want {
				t.Fatalf("want %s, got %s", tc.want, window.MealType)
			}
		})
	}
}

func TestTablePolicyUsesConfiguredLocation(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	policy, err := NewTablePolicy(kolkata, "07:30-09:30", "12:00-14:30", "19:00-21:30")
	if err != nil {
		t.Fatalf("new table policy: %v", err)
	}

	// 07:30 UTC is 13:00 in Kolkata: lunch, not breakfast.
	now := time.Date(2025, 3, 10, 7, 30, 0, 0, time.UTC)
	window, err := policy.ActiveWindow(context.Background(), now)
	if err != nil {
		t.Fatalf("active window: %v", err)
	}
	if window == nil || window.MealType != domain.MealLunch {
		t.Fatalf("want LUNCH in configured location, got %+v", window)
	}
}

func TestTablePolicyRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name                     string
		breakfast, lunch, dinner string
	}{
		{"malformed", "seven-ish", "12:00-14:30", "19:00-21:30"},
		{"inverted", "09:30-07:30", "12:00-14:30", "19:00-21:30"},
		{"overlap", "07:30-12:30", "12:00-14:30", "19:00-21:30"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewTablePolicy(time.UTC, tc.breakfast, tc.lunch, tc.dinner); err == nil {
				t.Fatalf("want config error")
			}
		})
	}
}

type fakeSessionRepo struct {
	active *domain.MealSession
	err    error
}

func (r *fakeSessionRepo) Declare(_ context.Context, session *domain.MealSession) error {
	if r.active != nil {
		r.active.IsActive = false
	}
	session.IsActive = true
	r.active = session
	return nil
}

func (r *fakeSessionRepo) GetActive(context.Context) (*domain.MealSession, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.active == nil || !r.active.IsActive {
		return nil, pgx.ErrNoRows
	}
	return r.active, nil
}

func TestSessionPolicy(t *testing.T) {
	now := time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC)

	t.Run("no session declared", func(t *testing.T) {
		policy := NewSessionPolicy(&fakeSessionRepo{})
		window, err := policy.ActiveWindow(context.Background(), now)
		if err != nil || window != nil {
			t.Fatalf("want closed with no error, got %+v err=%v", window, err)
		}
	})

	t.Run("session in effect", func(t *testing.T) {
		policy := NewSessionPolicy(&fakeSessionRepo{active: &domain.MealSession{
			MealType:  domain.MealLunch,
			StartTime: now.Add(-time.Hour),
			EndTime:   now.Add(time.Hour),
			IsActive:  true,
		}})
		window, err := policy.ActiveWindow(context.Background(), now)
		if err != nil {
			t.Fatalf("active window: %v", err)
		}
		if window == nil || window.MealType != domain.MealLunch {
			t.Fatalf("want LUNCH window, got %+v", window)
		}
	})

	t.Run("session ended", func(t *testing.T) {
		policy := NewSessionPolicy(&fakeSessionRepo{active: &domain.MealSession{
			MealType:  domain.MealLunch,
			StartTime: now.Add(-3 * time.Hour),
			EndTime:   now.Add(-time.Hour),
			IsActive:  true,
		}})
		window, err := policy.ActiveWindow(context.Background(), now)
		if err != nil || window != nil {
			t.Fatalf("ended session must not open a window, got %+v err=%v", window, err)
		}
	})

	t.Run("session not started", func(t *testing.T) {
		policy := NewSessionPolicy(&fakeSessionRepo{active: &domain.MealSession{
			MealType:  domain.MealDinner,
			StartTime: now.Add(time.Hour),
			EndTime:   now.Add(3 * time.Hour),
			IsActive:  true,
		}})
		window, err := policy.ActiveWindow(context.Background(), now)
		if err != nil || window != nil {
			t.Fatalf("future session must not open a window, got %+v err=%v", window, err)
		}
	})

	t.Run("deactivated session", func(t *testing.T) {
		repo := &fakeSessionRepo{active: &domain.MealSession{
			MealType:  domain.MealLunch,
			StartTime: now.Add(-time.Hour),
			EndTime:   now.Add(time.Hour),
			IsActive:  false,
		}}
		policy := NewSessionPolicy(repo)
		window, err := policy.ActiveWindow(context.Background(), now)
		if err != nil || window != nil {
			t.Fatalf("inactive session must not open a window, got %+v err=%v", window, err)
		}
	})

	t.Run("declaring supersedes", func(t *testing.T) {
		repo := &fakeSessionRepo{}
		first := &domain.MealSession{MealType: domain.MealLunch, StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour)}
		if err := repo.Declare(context.Background(), first); err != nil {
			t.Fatalf("declare: %v", err)
		}
		second := &domain.MealSession{MealType: domain.MealDinner, StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour)}
		if err := repo.Declare(context.Background(), second); err != nil {
			t.Fatalf("declare: %v", err)
		}
		if first.IsActive {
			t.Fatalf("first session must be superseded")
		}
		window, err := NewSessionPolicy(repo).ActiveWindow(context.Background(), now)
		if err != nil {
			t.Fatalf("active window: %v", err)
		}
		if window == nil || window.MealType != domain.MealDinner {
			t.Fatalf("want DINNER from the new session, got %+v", window)
		}
	})
}
