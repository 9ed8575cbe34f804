package utils

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-access-portal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetUserFromContext_Found verifies that a user stored under UserCtxKey
// is retrieved with ok == true.
func TestGetUserFromContext_Found(t *testing.T) {
	want := models.User{UserID: 42, Login: "alice", IsStaff: true}
	ctx := context.WithValue(context.Background(), UserCtxKey, want)

	got, ok := GetUserFromContext(ctx)

	require.True(t, ok)
	assert.Equal(t, want, got)
}

// TestGetUserFromContext_Missing verifies that an empty context yields ok == false.
func TestGetUserFromContext_Missing(t *testing.T) {
	_, ok := GetUserFromContext(context.Background())
	assert.False(t, ok)
}

// TestGetUserFromContext_WrongType verifies that a value of the wrong type
// under the key yields ok == false instead of panicking.
func TestGetUserFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), UserCtxKey, "not-a-user")

	_, ok := GetUserFromContext(ctx)
	assert.False(t, ok)
}

// TestContextKey_String verifies the fmt.Stringer implementation.
func TestContextKey_String(t *testing.T) {
	assert.Equal(t, "user", UserCtxKey.String())
}
