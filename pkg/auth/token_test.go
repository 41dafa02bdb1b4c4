package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestTokenLifecycle(t *testing.T) {
	keyring.MockInit()

	token, err := GetToken()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, SaveToken("abc123"))

	token, err = GetToken()
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	require.NoError(t, DeleteToken())

	token, err = GetToken()
	require.NoError(t, err)
	assert.Empty(t, token)

	// deleting again is a no-op
	require.NoError(t, DeleteToken())
}

func TestSaveToken_Empty(t *testing.T) {
	keyring.MockInit()
	assert.Error(t, SaveToken(""))
}
