package onboarding

import (
	"context"
	"errors"
	"math/rand"
	"testing"
)

type fakeAccounts struct {
	updated map[string]string
	err     error
}

func (f *fakeAccounts) UpdateProfile(ctx context.Context, userID, username, displayName string) error {
	if f.err != nil {
		return f.err
	}
	if f.updated == nil {
		f.updated = make(map[string]string)
	}
	f.updated[userID] = displayName
	return nil
}

type fakeBonus struct {
	granted map[string]int64
	already bool
	err     error
}

func (f *fakeBonus) GrantWelcomeBonusOnce(ctx context.Context, userID string, amount int64, metadata map[string]interface{}) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.already {
		return false, nil
	}
	if f.granted == nil {
		f.granted = make(map[string]int64)
	}
	f.granted[userID] = amount
	return true, nil
}

func TestOnboardNewUserGrantsBonus(t *testing.T) {
	accounts := &fakeAccounts{}
	bonus := &fakeBonus{}
	svc := NewService(accounts, bonus, rand.New(rand.NewSource(5)))

	result, err := svc.OnboardNewUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("onboard error: %v", err)
	}
	if !result.WelcomeBonusGranted {
		t.Errorf("bonus not granted")
	}
	if bonus.granted["u1"] != defaultWelcomeBonusCoins {
		t.Errorf("bonus amount = %d, want %d", bonus.granted["u1"], defaultWelcomeBonusCoins)
	}
	if accounts.updated["u1"] == "" {
		t.Errorf("profile display name not set")
	}
}

func TestOnboardNewUserToleratesProfileFailure(t *testing.T) {
	accounts := &fakeAccounts{err: errors.New("profile down")}
	bonus := &fakeBonus{}
	svc := NewService(accounts, bonus, rand.New(rand.NewSource(5)))

	result, err := svc.OnboardNewUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("onboard error: %v", err)
	}
	if result.ProfileUpdateErr == nil {
		t.Errorf("profile error not surfaced")
	}
	if !result.WelcomeBonusGranted {
		t.Errorf("bonus should still be granted")
	}
}

func TestOnboardNewUserBonusAlreadyGranted(t *testing.T) {
	svc := NewService(&fakeAccounts{}, &fakeBonus{already: true}, rand.New(rand.NewSource(5)))

	result, err := svc.OnboardNewUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("onboard error: %v", err)
	}
	if result.WelcomeBonusGranted {
		t.Errorf("bonus reported granted twice")
	}
}

func TestOnboardNewUserBonusFailure(t *testing.T) {
	svc := NewService(&fakeAccounts{}, &fakeBonus{err: errors.New("wallet down")}, rand.New(rand.NewSource(5)))

	if _, err := svc.OnboardNewUser(context.Background(), "u1"); err == nil {
		t.Errorf("wallet failure not surfaced")
	}
}
