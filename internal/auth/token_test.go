package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/citizen-engagement/internal/domain"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenManager_RoundTrip(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager(testSecret, time.Hour)
	token, expiresAt, err := tm.GenerateToken("user-1", domain.RoleAgencyStaff)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, domain.RoleAgencyStaff, claims.Role)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager(testSecret, time.Minute)
	tm.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := tm.GenerateToken("user-1", domain.RoleCitizen)
	require.NoError(t, err)

	tm.now = time.Now
	_, err = tm.ParseToken(token)
	assert.Error(t, err)
}

func TestTokenManager_RejectsForeignSignature(t *testing.T) {
	t.Parallel()

	issuer := NewTokenManager("another-secret-another-secret-xx", time.Hour)
	token, _, err := issuer.GenerateToken("user-1", domain.RoleAdmin)
	require.NoError(t, err)

	_, err = NewTokenManager(testSecret, time.Hour).ParseToken(token)
	assert.Error(t, err)
}

func TestPassword_HashAndCompare(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("s3cret-pass", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)
	assert.NoError(t, ComparePassword(hash, "s3cret-pass"))
	assert.Error(t, ComparePassword(hash, "wrong"))
}

func TestPassword_RejectsTruncatedLength(t *testing.T) {
	t.Parallel()

	_, err := HashPassword(strings.Repeat("é", 37), 4)
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	_, err = HashPassword(strings.Repeat("a", 72), 4)
	assert.NoError(t, err)
}

func TestDecoyHash_NeverMatches(t *testing.T) {
	t.Parallel()

	decoy, err := DecoyHash(4)
	require.NoError(t, err)
	assert.Error(t, ComparePassword(decoy, ""))
	assert.Error(t, ComparePassword(decoy, "s3cret-pass"))
}
