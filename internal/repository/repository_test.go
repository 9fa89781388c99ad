package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-desk/internal/domain"
	"github.com/spec-kit/complaint-desk/internal/persistence"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, persistence.InitSchema(context.Background(), db, zap.NewNop()))
	return db
}

func mustCreateUser(t *testing.T, repo UserRepository, name, email string, role domain.Role) *domain.User {
	t.Helper()
	user := &domain.User{Name: name, Email: email, Role: role, CreatedAt: time.Now()}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestUserRepositoryDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewUserRepository(db)

	first := mustCreateUser(t, repo, "Maria", "maria@example.com", domain.RoleRegular)

	second := &domain.User{Name: "Impostor", Email: "maria@example.com", Role: domain.RoleAdmin, CreatedAt: time.Now()}
	err := repo.Create(ctx, second)
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)

	count, err := repo.CountAll(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	// the first registration stays queryable
	got, err := repo.GetByEmail(ctx, "maria@example.com")
	require.NoError(t, err)
	require.Equal(t, first.ID, got.ID)
	require.Equal(t, "Maria", got.Name)
	require.Equal(t, domain.RoleRegular, got.Role)
}

func TestUserRepositoryNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = repo.GetByID(context.Background(), 42)
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestComplaintRepositoryOwnerScoping(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	complaints := NewComplaintRepository(db)

	alice := mustCreateUser(t, users, "Alice", "alice@example.com", domain.RoleRegular)
	bob := mustCreateUser(t, users, "Bob", "bob@example.com", domain.RoleRegular)

	ours := &domain.Complaint{UserID: alice.ID, Subject: "noise", Description: "too loud", CreatedAt: time.Now()}
	require.NoError(t, complaints.Create(ctx, ours))
	theirs := &domain.Complaint{UserID: bob.ID, Subject: "parking", Description: "blocked", CreatedAt: time.Now()}
	require.NoError(t, complaints.Create(ctx, theirs))

	own, err := complaints.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, own, 1)
	require.Equal(t, ours.ID, own[0].ID)

	all, err := complaints.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestComplaintRepositoryEmptyStringsAccepted(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	complaints := NewComplaintRepository(db)

	owner := mustCreateUser(t, users, "Ana", "ana@example.com", domain.RoleRegular)

	complaint := &domain.Complaint{UserID: owner.ID, Subject: "", Description: "", CreatedAt: time.Now()}
	require.NoError(t, complaints.Create(ctx, complaint))

	got, err := complaints.GetByID(ctx, complaint.ID)
	require.NoError(t, err)
	require.Equal(t, "", got.Subject)
	require.Equal(t, "", got.Description)
	require.Equal(t, domain.ComplaintStatusPending, got.Status)
}

func TestComplaintRepositoryNotFound(t *testing.T) {
	db := newTestDB(t)
	complaints := NewComplaintRepository(db)

	_, err := complaints.GetByID(context.Background(), 999)
	require.ErrorIs(t, err, domain.ErrComplaintNotFound)
}

func TestResponseRepositoryCreateAndResolve(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	complaints := NewComplaintRepository(db)
	responses := NewResponseRepository(db)

	owner := mustCreateUser(t, users, "Ana", "ana@example.com", domain.RoleRegular)
	complaint := &domain.Complaint{UserID: owner.ID, Subject: "leak", Description: "drips", CreatedAt: time.Now()}
	require.NoError(t, complaints.Create(ctx, complaint))

	response := &domain.Response{ComplaintID: complaint.ID, Content: "fixed", CreatedAt: time.Now()}
	require.NoError(t, responses.CreateAndResolve(ctx, response))
	require.NotZero(t, response.ID)

	got, err := complaints.GetByID(ctx, complaint.ID)
	require.NoError(t, err)
	require.Equal(t, domain.ComplaintStatusResolved, got.Status)

	listed, err := responses.ListByComplaint(ctx, complaint.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, "fixed", listed[0].Content)

	// a second response keeps the complaint resolved
	again := &domain.Response{ComplaintID: complaint.ID, Content: "still fixed", CreatedAt: time.Now()}
	require.NoError(t, responses.CreateAndResolve(ctx, again))

	got, err = complaints.GetByID(ctx, complaint.ID)
	require.NoError(t, err)
	require.Equal(t, domain.ComplaintStatusResolved, got.Status)
}

func TestResponseRepositoryMissingComplaint(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	responses := NewResponseRepository(db)

	response := &domain.Response{ComplaintID: 555, Content: "ghost", CreatedAt: time.Now()}
	require.ErrorIs(t, responses.CreateAndResolve(ctx, response), domain.ErrComplaintNotFound)

	listed, err := responses.ListByComplaint(ctx, 555)
	require.NoError(t, err)
	require.Empty(t, listed)
}
