package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"shiftware/internal/modules/session/domain"
	sessiondto "shiftware/internal/modules/session/dto"
	"shiftware/internal/modules/session/service"
	"shiftware/internal/modules/session/usecase"
	apperrors "shiftware/internal/platform/errors"
)

type fakeClock struct{ now time.Time }

func (f fakeClock) Now() time.Time { return f.now }

type fakeAuthAPI struct {
	loginToken string
	loginErr   error
	profile    domain.Profile
	profileErr error
	probeErr   error

	logoutCalls int
}

func (f *fakeAuthAPI) Login(context.Context, string, string) (string, error) {
	return f.loginToken, f.loginErr
}

func (f *fakeAuthAPI) Logout(context.Context) error {
	f.logoutCalls++
	return nil
}

func (f *fakeAuthAPI) Profile(context.Context) (domain.Profile, error) {
	return f.profile, f.profileErr
}

func (f *fakeAuthAPI) Probe(context.Context) error { return f.probeErr }

type fakeVault struct {
	saved   *domain.PersistedSession
	saveErr error
}

func (f *fakeVault) Save(_ context.Context, s domain.PersistedSession) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = &s
	return nil
}

func (f *fakeVault) Load(context.Context) (domain.PersistedSession, error) {
	if f.saved == nil {
		return domain.PersistedSession{}, apperrors.ErrNoSavedSession
	}
	return *f.saved, nil
}

func (f *fakeVault) Clear(context.Context) error {
	f.saved = nil
	return nil
}

type fakeCache struct{ resets int }

func (f *fakeCache) ResetData() { f.resets++ }

func newInteractor(api *fakeAuthAPI, vault *fakeVault) (*usecase.Interactor, *fakeCache) {
	cache := &fakeCache{}
	uc := usecase.NewInteractor(service.NewSessionService(), api, vault,
		fakeClock{now: time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)})
	uc.RegisterCaches(cache)
	return uc, cache
}

func TestLoginPersistsTokenAndAuthenticates(t *testing.T) {
	t.Parallel()
	api := &fakeAuthAPI{loginToken: "tok-1"}
	vault := &fakeVault{}
	uc, _ := newInteractor(api, vault)

	out, err := uc.Login(context.Background(), sessiondto.LoginInput{Email: "jo@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !out.Authenticated || out.Email != "jo@example.com" {
		t.Fatalf("unexpected session output: %+v", out)
	}
	if vault.saved == nil || vault.saved.Token != "tok-1" {
		t.Fatalf("token was not persisted: %+v", vault.saved)
	}
	if vault.saved.SavedAt.IsZero() {
		t.Fatalf("persisted session missing timestamp")
	}
}

func TestLoginRejectsMissingCredentials(t *testing.T) {
	t.Parallel()
	uc, _ := newInteractor(&fakeAuthAPI{}, &fakeVault{})

	_, err := uc.Login(context.Background(), sessiondto.LoginInput{Email: " ", Password: "pw"})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestLoginNetworkFailureLeavesExistingSessionIntact(t *testing.T) {
	t.Parallel()
	api := &fakeAuthAPI{loginToken: "tok-1"}
	vault := &fakeVault{}
	uc, cache := newInteractor(api, vault)

	if _, err := uc.Login(context.Background(), sessiondto.LoginInput{Email: "jo@example.com", Password: "pw"}); err != nil {
		t.Fatalf("first login: %v", err)
	}

	api.loginErr = &apperrors.NetworkError{Op: "POST /login", Err: errors.New("connection refused")}
	_, err := uc.Login(context.Background(), sessiondto.LoginInput{Email: "jo@example.com", Password: "pw"})
	if !apperrors.IsNetwork(err) {
		t.Fatalf("expected network error, got %v", err)
	}
	if !uc.Authenticated() {
		t.Fatalf("network failure must not end the existing session")
	}
	if cache.resets != 0 {
		t.Fatalf("network failure must not drop aggregated data, got %d resets", cache.resets)
	}
}

func TestLoginAuthRejectionTearsDownWithoutServerNotify(t *testing.T) {
	t.Parallel()
	api := &fakeAuthAPI{loginErr: apperrors.ErrUnauthorized}
	vault := &fakeVault{}
	uc, cache := newInteractor(api, vault)

	_, err := uc.Login(context.Background(), sessiondto.LoginInput{Email: "jo@example.com", Password: "bad"})
	if !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if uc.Authenticated() {
		t.Fatalf("rejected credentials must not authenticate")
	}
	if api.logoutCalls != 0 {
		t.Fatalf("a rejected login has no server session to end")
	}
	if cache.resets == 0 {
		t.Fatalf("teardown must drop aggregated data")
	}
}

func TestLoginIsAllOrNothingWhenVaultWriteFails(t *testing.T) {
	t.Parallel()
	api := &fakeAuthAPI{loginToken: "tok-1"}
	vault := &fakeVault{saveErr: &apperrors.PersistenceError{Op: "save", Err: errors.New("disk full")}}
	uc, _ := newInteractor(api, vault)

	_, err := uc.Login(context.Background(), sessiondto.LoginInput{Email: "jo@example.com", Password: "pw"})
	if !apperrors.IsPersistence(err) {
		t.Fatalf("expected persistence error, got %v", err)
	}
	if uc.Authenticated() {
		t.Fatalf("a login that could not persist must not leave an active session")
	}
	if api.logoutCalls != 1 {
		t.Fatalf("rollback must tell the server while the token is still live, got %d calls", api.logoutCalls)
	}
}

func TestRestoreLogoutRestoreIsRepeatable(t *testing.T) {
	t.Parallel()
	api := &fakeAuthAPI{loginToken: "tok-1"}
	vault := &fakeVault{}
	uc, _ := newInteractor(api, vault)

	if _, err := uc.Login(context.Background(), sessiondto.LoginInput{Email: "jo@example.com", Password: "pw"}); err != nil {
		t.Fatalf("login: %v", err)
	}

	for round := 0; round < 2; round++ {
		if err := uc.Logout(context.Background(), true); err != nil {
			t.Fatalf("logout round %d: %v", round, err)
		}
		if uc.Authenticated() {
			t.Fatalf("logout round %d left the session active", round)
		}
		out, err := uc.Restore(context.Background())
		if err != nil {
			t.Fatalf("restore round %d: %v", round, err)
		}
		if !out.Authenticated {
			t.Fatalf("restore round %d did not adopt the saved token", round)
		}
	}
}

func TestRestoreWithoutSavedSession(t *testing.T) {
	t.Parallel()
	uc, _ := newInteractor(&fakeAuthAPI{}, &fakeVault{})

	_, err := uc.Restore(context.Background())
	if !errors.Is(err, apperrors.ErrNoSavedSession) {
		t.Fatalf("expected no saved session, got %v", err)
	}
	if uc.Authenticated() {
		t.Fatalf("failed restore must not authenticate")
	}
}

func TestValidateRevokedTokenForcesLogout(t *testing.T) {
	t.Parallel()
	api := &fakeAuthAPI{loginToken: "tok-1"}
	vault := &fakeVault{}
	uc, cache := newInteractor(api, vault)

	if _, err := uc.Login(context.Background(), sessiondto.LoginInput{Email: "jo@example.com", Password: "pw"}); err != nil {
		t.Fatalf("login: %v", err)
	}

	api.probeErr = apperrors.ErrUnauthorized
	valid, err := uc.Validate(context.Background())
	if err != nil {
		t.Fatalf("a revoked token is a clean answer, not an error: %v", err)
	}
	if valid {
		t.Fatalf("revoked token reported valid")
	}
	if uc.Authenticated() {
		t.Fatalf("revoked token must end the session")
	}
	if cache.resets == 0 {
		t.Fatalf("revoked token must drop aggregated data")
	}
}

func TestValidateNetworkFailureKeepsSession(t *testing.T) {
	t.Parallel()
	api := &fakeAuthAPI{loginToken: "tok-1"}
	uc, _ := newInteractor(api, &fakeVault{})

	if _, err := uc.Login(context.Background(), sessiondto.LoginInput{Email: "jo@example.com", Password: "pw"}); err != nil {
		t.Fatalf("login: %v", err)
	}

	api.probeErr = &apperrors.NetworkError{Op: "GET /profile", Err: errors.New("timeout")}
	valid, err := uc.Validate(context.Background())
	if valid || !apperrors.IsNetwork(err) {
		t.Fatalf("expected (false, network error), got (%v, %v)", valid, err)
	}
	if !uc.Authenticated() {
		t.Fatalf("connectivity failure must not end the session")
	}
}

func TestValidateWithoutSession(t *testing.T) {
	t.Parallel()
	uc, _ := newInteractor(&fakeAuthAPI{}, &fakeVault{})

	valid, err := uc.Validate(context.Background())
	if valid || err != nil {
		t.Fatalf("expected (false, nil) with no session, got (%v, %v)", valid, err)
	}
}

func TestLoadProfileRevocationTearsDown(t *testing.T) {
	t.Parallel()
	api := &fakeAuthAPI{loginToken: "tok-1"}
	uc, _ := newInteractor(api, &fakeVault{})

	if _, err := uc.Login(context.Background(), sessiondto.LoginInput{Email: "jo@example.com", Password: "pw"}); err != nil {
		t.Fatalf("login: %v", err)
	}

	api.profileErr = apperrors.ErrUnauthorized
	if _, err := uc.LoadProfile(context.Background()); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if uc.Authenticated() {
		t.Fatalf("revoked token during profile load must end the session")
	}
}

func TestLogoutLeavesVaultEntryForLaterRestore(t *testing.T) {
	t.Parallel()
	api := &fakeAuthAPI{loginToken: "tok-1"}
	vault := &fakeVault{}
	uc, _ := newInteractor(api, vault)

	if _, err := uc.Login(context.Background(), sessiondto.LoginInput{Email: "jo@example.com", Password: "pw"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := uc.Logout(context.Background(), true); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if api.logoutCalls != 1 {
		t.Fatalf("expected one server notification, got %d", api.logoutCalls)
	}
	if vault.saved == nil {
		t.Fatalf("logout must not clear the persisted session")
	}
	if !uc.HasPersisted(context.Background()) {
		t.Fatalf("HasPersisted must still see the saved entry")
	}
}
