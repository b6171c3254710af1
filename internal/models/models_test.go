package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserJSON_OmitsPasswordHash(t *testing.T) {
	u := User{ID: "u1", Name: "A", Email: "a@x.com", PasswordHash: "$2a$secret", CreatedAt: time.Now()}

	b, err := json.Marshal(u)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.NotContains(t, string(b), "$2a$secret")
	assert.NotContains(t, m, "passwordHash")
	assert.Equal(t, "", u.Public().PasswordHash)
}

func TestPost_HasAuthor(t *testing.T) {
	tests := []struct {
		name string
		post Post
		want bool
	}{
		{"nil author", Post{}, false},
		{"empty name", Post{Author: &Author{ID: "u1"}}, false},
		{"empty id", Post{Author: &Author{Name: "A"}}, false},
		{"complete", Post{Author: &Author{ID: "u1", Name: "A"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.post.HasAuthor())
		})
	}
}
