package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidtube/internal/model"
)

func TestUser_Redacted(t *testing.T) {
	token := "refresh"
	u := &model.User{UUID: "1", Username: "t1", PasswordHash: "$2a$10$hash", RefreshToken: &token}

	r := u.Redacted()

	assert.Empty(t, r.PasswordHash)
	assert.Nil(t, r.RefreshToken)
	assert.Equal(t, "t1", r.Username)
	assert.Equal(t, "$2a$10$hash", u.PasswordHash, "оригинал не должен меняться")
	assert.Nil(t, (*model.User)(nil).Redacted())
}

func TestUser_JSONNeverExposesSecrets(t *testing.T) {
	token := "refresh-value"
	u := &model.User{UUID: "1", Username: "t1", PasswordHash: "hash-value", RefreshToken: &token, AvatarPublicID: "media/a.png"}

	data, err := json.Marshal(u)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "hash-value")
	assert.NotContains(t, string(data), "refresh-value")
	assert.NotContains(t, string(data), "media/a.png")
	assert.Contains(t, string(data), `"username":"t1"`)
}

func TestUser_StoredRefreshToken(t *testing.T) {
	token := "r1"
	assert.Equal(t, "r1", (&model.User{RefreshToken: &token}).StoredRefreshToken())
	assert.Equal(t, "", (&model.User{}).StoredRefreshToken())
}
