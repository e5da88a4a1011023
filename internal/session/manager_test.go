package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazz187/taskmarket/pkg/cerr"
)

func TestManager_IssueAndVerify(t *testing.T) {
	m := NewManager("secret", time.Hour)
	token, err := m.Issue("user-1")
	require.NoError(t, err)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.NotEmpty(t, claims.ID)

	other, err := m.Issue("user-1")
	require.NoError(t, err)
	otherClaims, err := m.Verify(other)
	require.NoError(t, err)
	assert.NotEqual(t, claims.ID, otherClaims.ID)
}

func TestManager_VerifyRejects(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	m := NewManager("secret", time.Hour, WithClock(clock))
	valid, err := m.Issue("user-1")
	require.NoError(t, err)

	foreign, err := NewManager("another secret", time.Hour, WithClock(clock)).Issue("user-1")
	require.NoError(t, err)

	expired, err := NewManager("secret", time.Hour, WithClock(func() time.Time { return now.Add(-2 * time.Hour) })).Issue("user-1")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"tampered", valid + "x"},
		{"wrong secret", foreign},
		{"expired", expired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Verify(tt.token)
			require.Error(t, err)
			assert.True(t, cerr.IsCode(err, cerr.Unauthenticated))
		})
	}
}

func TestManager_Revoke(t *testing.T) {
	m := NewManager("secret", time.Hour)
	token, err := m.Issue("user-1")
	require.NoError(t, err)
	claims, err := m.Verify(token)
	require.NoError(t, err)

	m.Revoke(claims)
	_, err = m.Verify(token)
	require.Error(t, err)
	assert.True(t, cerr.IsCode(err, cerr.Unauthenticated))

	fresh, err := m.Issue("user-1")
	require.NoError(t, err)
	_, err = m.Verify(fresh)
	assert.NoError(t, err)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", BearerToken("Bearer abc"))
	assert.Equal(t, "", BearerToken("Basic abc"))
	assert.Equal(t, "", BearerToken(""))
}
