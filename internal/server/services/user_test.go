package services

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vvitsh/ticketstore/internal/common"
	"github.com/Vvitsh/ticketstore/internal/dbx"
	"github.com/Vvitsh/ticketstore/internal/server/auth"
	"github.com/Vvitsh/ticketstore/internal/server/config"
	"github.com/Vvitsh/ticketstore/internal/server/models"
	attachmentsrepo "github.com/Vvitsh/ticketstore/internal/server/repositories/attachments"
	ticketsrepo "github.com/Vvitsh/ticketstore/internal/server/repositories/tickets"
	usersrepo "github.com/Vvitsh/ticketstore/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) *sql.DB {
	t.Helper()
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:             "k",
		TokenValidityDuration: 2 * time.Hour,
	}
}

// memUsersRepo is an in-memory users.Repository so auth flow properties can
// be asserted end to end without a database.
type memUsersRepo struct {
	nextID int64
	byID   map[int64]*models.User

	createErr error
	getErr    error
	updateErr error
}

func newMemUsersRepo() *memUsersRepo {
	return &memUsersRepo{nextID: 1, byID: map[int64]*models.User{}}
}

func (f *memUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, existing := range f.byID {
		if existing.Username == u.Username {
			return nil, common.ErrConflict
		}
	}
	u.ID = f.nextID
	f.nextID++
	stored := *u
	f.byID[u.ID] = &stored
	return u, nil
}

func (f *memUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *memUsersRepo) GetByToken(ctx context.Context, token string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if u.Token != nil && *u.Token == token {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *memUsersRepo) UpdateToken(ctx context.Context, id int64, token *string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	u, ok := f.byID[id]
	if !ok {
		return common.ErrNotFound
	}
	u.Token = token
	return nil
}

type fakeRepoManager struct {
	users       usersrepo.Repository
	tickets     ticketsrepo.Repository
	attachments attachmentsrepo.Repository
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.users }
func (m *fakeRepoManager) Tickets(db dbx.DBTX) ticketsrepo.Repository   { return m.tickets }
func (m *fakeRepoManager) Attachments(db dbx.DBTX) attachmentsrepo.Repository {
	return m.attachments
}

func newUserService(t *testing.T, repo usersrepo.Repository) *UserService {
	t.Helper()
	return NewUserService(newSQLMockDB(t), &fakeRepoManager{users: repo}, testConfig())
}

// --- tests ---

func TestRegister_HashesPasswordAndIssuesToken(t *testing.T) {
	repo := newMemUsersRepo()
	svc := newUserService(t, repo)

	user, err := svc.Register(context.Background(), "alice", "secret")
	require.NoError(t, err)

	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "alice", user.Username)
	require.NotNil(t, user.Token)
	require.NoError(t, auth.ValidateToken(*user.Token, []byte("k")))

	assert.NotEqual(t, "secret", user.PasswordHash, "plaintext must never be persisted")
	require.NoError(t, auth.CheckPassword("secret", user.PasswordHash))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := newMemUsersRepo()
	svc := newUserService(t, repo)

	_, err := svc.Register(context.Background(), "alice", "secret")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice", "other")
	require.ErrorIs(t, err, common.ErrConflict)
}

func TestLogin_RotatesToken(t *testing.T) {
	repo := newMemUsersRepo()
	svc := newUserService(t, repo)

	registered, err := svc.Register(context.Background(), "alice", "secret")
	require.NoError(t, err)
	first := *registered.Token

	time.Sleep(1100 * time.Millisecond) // iat has second resolution

	loggedIn, err := svc.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	require.NotNil(t, loggedIn.Token)
	second := *loggedIn.Token

	assert.NotEqual(t, first, second, "login must mint a fresh token")

	// the rotated-away token no longer gates requests
	_, err = svc.Authenticate(context.Background(), first)
	require.ErrorIs(t, err, common.ErrUnauthenticated)

	authed, err := svc.Authenticate(context.Background(), second)
	require.NoError(t, err)
	assert.Equal(t, "alice", authed.Username)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := newUserService(t, newMemUsersRepo())

	_, err := svc.Login(context.Background(), "ghost", "secret")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestLogin_WrongPasswordLeavesTokenUntouched(t *testing.T) {
	repo := newMemUsersRepo()
	svc := newUserService(t, repo)

	registered, err := svc.Register(context.Background(), "alice", "secret")
	require.NoError(t, err)
	issued := *registered.Token

	_, err = svc.Login(context.Background(), "alice", "wrong")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)

	// the previously issued token still authenticates
	authed, err := svc.Authenticate(context.Background(), issued)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, authed.ID)
}

func TestLogout_RevokesUnexpiredToken(t *testing.T) {
	repo := newMemUsersRepo()
	svc := newUserService(t, repo)

	user, err := svc.Register(context.Background(), "alice", "secret")
	require.NoError(t, err)
	issued := *user.Token

	require.NoError(t, svc.Logout(context.Background(), user))
	assert.Nil(t, user.Token)

	// token is cryptographically fine but no longer stored anywhere
	require.NoError(t, auth.ValidateToken(issued, []byte("k")))
	_, err = svc.Authenticate(context.Background(), issued)
	require.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestAuthenticate_UnknownToken(t *testing.T) {
	svc := newUserService(t, newMemUsersRepo())

	_, err := svc.Authenticate(context.Background(), "sometoken")
	require.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestAuthenticate_StoredButExpiredToken(t *testing.T) {
	repo := newMemUsersRepo()
	svc := newUserService(t, repo)

	expired, err := auth.GenerateToken([]byte("k"), -time.Minute)
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), &models.User{Username: "alice", PasswordHash: "h", Token: &expired})
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), expired)
	require.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestAuthenticate_StoredButForgedToken(t *testing.T) {
	repo := newMemUsersRepo()
	svc := newUserService(t, repo)

	forged, err := auth.GenerateToken([]byte("other-secret"), time.Hour)
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), &models.User{Username: "alice", PasswordHash: "h", Token: &forged})
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), forged)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestAuthenticate_RepoFailureIsInternal(t *testing.T) {
	repo := newMemUsersRepo()
	repo.getErr = assert.AnError
	svc := newUserService(t, repo)

	_, err := svc.Authenticate(context.Background(), "tok")
	require.ErrorIs(t, err, common.ErrInternal)
	assert.Contains(t, err.Error(), assert.AnError.Error(), "cause must stay attached for server-side logging")
}

func TestRegister_HashFailureKeepsCause(t *testing.T) {
	svc := newUserService(t, newMemUsersRepo())

	// bcrypt rejects passwords longer than 72 bytes
	_, err := svc.Register(context.Background(), "alice", strings.Repeat("p", 100))
	require.ErrorIs(t, err, common.ErrInternal)
	assert.NotEqual(t, common.ErrInternal.Error(), err.Error(), "cause must stay attached for server-side logging")
}
