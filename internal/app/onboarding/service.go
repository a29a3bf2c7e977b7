package onboarding

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"fivetakes/internal/ports"
)

const defaultWelcomeBonusCoins = 500

// Result captures non-fatal onboarding outcomes.
type Result struct {
	// ProfileUpdateErr is set when the profile update failed but
	// onboarding continued.
	ProfileUpdateErr error
	// WelcomeBonusGranted is false when the bonus was already granted.
	WelcomeBonusGranted bool
}

// Service handles post-auth onboarding for new users.
type Service struct {
	accounts ports.AccountPort
	bonus    ports.WelcomeBonusPort
	rng      *rand.Rand
}

// NewService constructs an onboarding service with required ports.
// accounts/bonus must be non-nil; rng may be nil to use a time-seeded
// default.
func NewService(accounts ports.AccountPort, bonus ports.WelcomeBonusPort, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		accounts: accounts,
		bonus:    bonus,
		rng:      rng,
	}
}

// OnboardNewUser initializes profile and wallet for a newly created
// account. Profile updates are best-effort; a failed bonus grant is an
// error.
func (s *Service) OnboardNewUser(ctx context.Context, userID string) (Result, error) {
	if s.accounts == nil || s.bonus == nil {
		return Result{}, fmt.Errorf("onboarding service not configured")
	}

	result := Result{}
	displayName := s.generateFriendlyName()
	if err := s.accounts.UpdateProfile(ctx, userID, displayName, displayName); err != nil {
		result.ProfileUpdateErr = err
	}

	granted, err := s.bonus.GrantWelcomeBonusOnce(ctx, userID, defaultWelcomeBonusCoins, map[string]interface{}{
		"reason": "welcome_bonus",
	})
	if err != nil {
		return result, fmt.Errorf("failed to grant welcome bonus: %w", err)
	}
	result.WelcomeBonusGranted = granted

	return result, nil
}

func (s *Service) generateFriendlyName() string {
	adjectives := []string{"Lucky", "Bold", "Quick", "Quiet", "Sunny", "Sharp", "Merry", "Steady", "Keen", "Daring"}
	nouns := []string{"Heron", "Badger", "Lynx", "Magpie", "Marten", "Osprey", "Stoat", "Raven", "Ibex", "Crane"}

	adj := adjectives[s.rng.Intn(len(adjectives))]
	noun := nouns[s.rng.Intn(len(nouns))]
	num := s.rng.Intn(9000) + 1000

	return fmt.Sprintf("%s%s%d", adj, noun, num)
}
