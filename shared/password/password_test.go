package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lodgehub/shared/password"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := password.Hash("reception123")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "reception123", hash)

	assert.NoError(t, password.Verify("reception123", hash))
	assert.ErrorIs(t, password.Verify("wrong-password", hash), password.ErrInvalidPassword)
}

func TestHashEmptyPassword(t *testing.T) {
	_, err := password.Hash("")
	assert.Error(t, err)
}

func TestVerifyEmptyInputs(t *testing.T) {
	assert.ErrorIs(t, password.Verify("", "hash"), password.ErrInvalidPassword)
	assert.ErrorIs(t, password.Verify("secret", ""), password.ErrInvalidPassword)
}
