package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdad(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	mayor := User{FechaNacimiento: time.Date(2000, 1, 15, 0, 0, 0, 0, time.UTC)}
	assert.GreaterOrEqual(t, mayor.Edad(now), 18)

	menor := User{FechaNacimiento: time.Date(2010, 1, 15, 0, 0, 0, 0, time.UTC)}
	assert.Less(t, menor.Edad(now), 18)
}

// El hash de password jamás se serializa, ni en User ni en PublicUser.
func TestPasswordHashNeverSerialized(t *testing.T) {
	u := User{Email: "a@b.com", PasswordHash: "$2a$10$secreto"}

	raw, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secreto")

	raw, err = json.Marshal(u.ToPublic())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secreto")
}
