package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPassword(hash, "correct horse battery staple"))
	assert.False(t, CheckPassword(hash, "wrong password"))
}

func TestJWTManagerRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret", 1)

	token, err := manager.GenerateToken("acct-1", "patient@example.com", "patient")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "acct-1", claims.AccountID)
	assert.Equal(t, "patient@example.com", claims.Email)
	assert.Equal(t, "patient", claims.Role)
	assert.Equal(t, "mediguard", claims.Issuer)
}

func TestJWTManagerRejectsForeignToken(t *testing.T) {
	manager := NewJWTManager("test-secret", 1)
	other := NewJWTManager("different-secret", 1)

	token, err := other.GenerateToken("acct-1", "patient@example.com", "patient")
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.Error(t, err)

	_, err = manager.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateEmail(t *testing.T) {
	v := NewValidator()

	assert.True(t, v.ValidateEmail("patient@example.com"))
	assert.True(t, v.ValidateEmail("first.last+tag@sub.example.co.uk"))

	assert.False(t, v.ValidateEmail(""))
	assert.False(t, v.ValidateEmail("no-at-sign"))
	assert.False(t, v.ValidateEmail("missing@tld"))
}

func TestValidateHHMM(t *testing.T) {
	v := NewValidator()

	for _, ok := range []string{"00:00", "09:30", "23:59"} {
		assert.True(t, v.ValidateHHMM(ok), ok)
	}
	for _, bad := range []string{"24:00", "9:30", "09:60", "0930", ""} {
		assert.False(t, v.ValidateHHMM(bad), bad)
	}
}

func TestValidateDateRange(t *testing.T) {
	v := NewValidator()
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, v.ValidateDateRange(start, start))
	assert.True(t, v.ValidateDateRange(start, start.AddDate(0, 1, 0)))
	assert.False(t, v.ValidateDateRange(start, start.AddDate(0, 0, -1)))
}

func TestSanitizeInput(t *testing.T) {
	v := NewValidator()

	assert.Equal(t, "hello", v.SanitizeInput("  hello  "))
	assert.Equal(t, "ab", v.SanitizeInput("a\x00b"))
	assert.Equal(t, "clean", v.SanitizeInput("clean\x1f"))
}

func TestPagination(t *testing.T) {
	p := NewPagination(2, 20, 45)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 20, p.GetOffset())

	// Out-of-range inputs are normalized
	p = NewPagination(0, 0, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 1, p.TotalPages)
	assert.Equal(t, 0, p.GetOffset())

	p = NewPagination(1, 500, 10)
	assert.Equal(t, 100, p.Limit)
}
