package core

import (
	"testing"

	"github.com/ahmed2844ah-star/bokogaming/internal/domain"
)

func TestSignIn_InsertsOnlyWhenAbsent(t *testing.T) {
	s, _ := newTestState(t)
	s.SignIn(domain.User{ID: "u1", Username: "alice", Balance: 100})

	// A later sign-in with the same identity must not touch the roster
	// record, even when the caller passes a stale copy.
	s.SignIn(domain.User{ID: "u1", Username: "alice", Balance: 0})

	u, ok := s.FindByID("u1")
	if !ok || u.Balance != 100 {
		t.Fatalf("roster record overwritten on repeat sign-in: %+v", u)
	}
	if got := len(s.Users()); got != 1 {
		t.Fatalf("roster size: want 1, got %d", got)
	}
}

func TestSignOut_LeavesRoster(t *testing.T) {
	s, _ := newTestState(t)
	s.SignIn(domain.User{ID: "u1", Username: "alice"})
	s.SignOut()

	if _, ok := s.CurrentUser(); ok {
		t.Fatal("session survived sign-out")
	}
	if _, ok := s.FindByID("u1"); !ok {
		t.Fatal("sign-out removed the roster record")
	}
}

func TestUpsertPresence_Uniqueness(t *testing.T) {
	s, _ := newTestState(t)
	s.SignIn(domain.User{ID: "u1", Username: "alice"})
	s.UpsertPresence(domain.User{ID: "u1", Username: "alice"})
	s.UpsertPresence(domain.User{ID: "u1", Username: "alice"})

	count := 0
	for _, u := range s.Users() {
		if u.ID == "u1" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("identity u1 appears %d times in the roster", count)
	}
}

func TestReplace_OverwritesByIdentity(t *testing.T) {
	s, mirror := newTestState(t)
	s.UpsertPresence(domain.User{ID: "u1", Username: "alice", Balance: 100})
	saves := mirror.rosterSave

	s.Replace(domain.User{ID: "u1", Username: "alice", Balance: 250, Role: "user"})

	u, _ := s.FindByID("u1")
	if u.Balance != 250 {
		t.Fatalf("replace did not overwrite: %+v", u)
	}
	if mirror.rosterSave != saves+1 {
		t.Fatal("replace did not persist")
	}

	// Absent identity is a no-op, not an error and not an insert.
	s.Replace(domain.User{ID: "ghost", Username: "ghost"})
	if got := len(s.Users()); got != 1 {
		t.Fatalf("replace inserted a missing identity, roster size %d", got)
	}
}

func TestNew_LoadsPersistedRoster(t *testing.T) {
	mirror := &fakeMirror{roster: []domain.User{
		{ID: "u1", Username: "alice", Balance: 40, BonusBalance: 5},
	}}
	s := New(mirror, discardLogger())

	u, ok := s.FindByID("u1")
	if !ok || u.Balance != 40 || u.BonusBalance != 5 {
		t.Fatalf("persisted roster not loaded: %+v", u)
	}
	if _, ok := s.CurrentUser(); ok {
		t.Fatal("a fresh state must start signed out")
	}
}

func TestTheme_WriteThrough(t *testing.T) {
	s, mirror := newTestState(t)
	if s.Theme() != "dark" {
		t.Fatalf("default theme: want dark, got %s", s.Theme())
	}
	s.SetTheme("light")
	if s.Theme() != "light" || mirror.theme != "light" {
		t.Fatalf("theme not persisted: state=%s mirror=%s", s.Theme(), mirror.theme)
	}
}

func TestSettings_SnapshotIsolation(t *testing.T) {
	s, _ := newTestState(t)

	snap := s.Settings()
	snap.GameSettings[domain.GameDice] = domain.GameConfig{Enabled: false}
	snap.DepositMethods[0].Enabled = false
	snap.MinDeposit = 1

	fresh := s.Settings()
	if !fresh.GameSettings[domain.GameDice].Enabled {
		t.Fatal("mutating a snapshot reached the stored game settings")
	}
	if !fresh.DepositMethods[0].Enabled {
		t.Fatal("mutating a snapshot reached the stored deposit methods")
	}
	if fresh.MinDeposit != 50 {
		t.Fatalf("stored minimum deposit changed: %v", fresh.MinDeposit)
	}
}

func TestReplaceSettings_Wholesale(t *testing.T) {
	s, _ := newTestState(t)

	next := s.Settings()
	next.MinDeposit = 75
	cfg := next.GameSettings[domain.GameSlots]
	cfg.Enabled = false
	next.GameSettings[domain.GameSlots] = cfg
	s.ReplaceSettings(next)

	got := s.Settings()
	if got.MinDeposit != 75 {
		t.Fatalf("minimum deposit: want 75, got %v", got.MinDeposit)
	}
	if got.GameSettings[domain.GameSlots].Enabled {
		t.Fatal("slots still enabled after replacement")
	}
	// Untouched fields carry over wholesale.
	if got.MinWithdrawal != 100 || got.WithdrawalFee != 5 {
		t.Fatalf("unrelated fields changed: %+v", got)
	}
}

func TestRecordReferral(t *testing.T) {
	s, _ := newTestState(t)
	s.UpsertPresence(domain.User{ID: "ref", Username: "carol", ReferralCode: "BOKO-CAROL"})
	newcomer := domain.User{ID: "new", Username: "dave"}
	s.UpsertPresence(newcomer)

	if !s.RecordReferral("BOKO-CAROL", newcomer) {
		t.Fatal("known code not credited")
	}
	referrer, _ := s.FindByID("ref")
	if referrer.ReferralCount != 1 || referrer.ReferralEarnings != ReferralCommission {
		t.Fatalf("referral totals: %+v", referrer)
	}
	if referrer.BonusBalance != ReferralCommission {
		t.Fatalf("commission not credited as bonus funds: %v", referrer.BonusBalance)
	}
	if referrer.ReferralLevel != domain.ReferralBronze {
		t.Fatalf("level after one referral: %s", referrer.ReferralLevel)
	}
	if len(referrer.ReferralHistory) != 1 || referrer.ReferralHistory[0].ID != "new" {
		t.Fatalf("history: %+v", referrer.ReferralHistory)
	}

	txs := s.Transactions()
	if len(txs) != 1 || txs[0].Kind != domain.KindReferralBonus || txs[0].Status != domain.StatusCompleted {
		t.Fatalf("referral settlement: %+v", txs)
	}

	if s.RecordReferral("NO-SUCH-CODE", newcomer) {
		t.Fatal("unknown code was credited")
	}
	if s.RecordReferral("", newcomer) {
		t.Fatal("empty code was credited")
	}
}

func TestReferralLevels(t *testing.T) {
	type tc struct {
		count int
		want  string
	}
	tests := []tc{
		{0, domain.ReferralBronze},
		{4, domain.ReferralBronze},
		{5, domain.ReferralSilver},
		{14, domain.ReferralSilver},
		{15, domain.ReferralGold},
		{39, domain.ReferralGold},
		{40, domain.ReferralDiamond},
	}
	for _, tt := range tests {
		if got := referralLevel(tt.count); got != tt.want {
			t.Fatalf("level for %d referrals: want %s, got %s", tt.count, tt.want, got)
		}
	}
}
