package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"taskvault/internal/adapter/storage/file"
	"taskvault/internal/app/service"
	"taskvault/internal/core/domain"
)

func newAuthService(t *testing.T) *service.AuthService {
	t.Helper()

	users, err := file.NewUserStore(t.TempDir())
	require.NoError(t, err)
	return service.NewAuthService(users, "test-secret", time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "Ada", "ada@example.com", "correct horse")
	require.NoError(t, err)
	require.NotEmpty(t, registered.Token)
	require.Equal(t, "ada@example.com", registered.User.Email)
	// The stored credential is a hash, never the password itself.
	require.NotEqual(t, "correct horse", registered.User.PasswordHash)

	session, err := svc.Login(ctx, "ada@example.com", "correct horse")
	require.NoError(t, err)
	require.Equal(t, registered.User.ID, session.User.ID)

	id, err := svc.VerifyToken(session.Token)
	require.NoError(t, err)
	require.Equal(t, registered.User.ID, id)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ada", "ada@example.com", "correct horse")
	require.NoError(t, err)

	// Unknown email and wrong password fail identically.
	_, err = svc.Login(ctx, "nobody@example.com", "correct horse")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "ada@example.com", "wrong")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ada", "ada@example.com", "pw123456")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Imposter", "ada@example.com", "pw654321")
	require.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestVerifyTokenRejectsForgedToken(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	session, err := svc.Register(ctx, "Ada", "ada@example.com", "pw123456")
	require.NoError(t, err)

	users, err := file.NewUserStore(t.TempDir())
	require.NoError(t, err)
	other := service.NewAuthService(users, "another-secret", time.Hour)
	_, err = other.VerifyToken(session.Token)
	require.Error(t, err)

	_, err = svc.VerifyToken("not-a-token")
	require.Error(t, err)
}
