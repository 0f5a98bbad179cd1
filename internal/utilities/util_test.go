package utilities

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"CampusHire-backend/internal/model"
)

func TestMergeNonEmpty(t *testing.T) {
	dst := model.EditableProfileInfo{
		FullName: "Original Name",
		Bio:      "Original bio",
		Skills:   pq.StringArray{"Go"},
	}
	src := model.EditableProfileInfo{
		Bio:    "New bio",
		Skills: pq.StringArray{"Rust", "SQL"},
	}

	MergeNonEmpty(&dst, &src)

	assert.Equal(t, "Original Name", dst.FullName, "empty source fields must not overwrite")
	assert.Equal(t, "New bio", dst.Bio)
	assert.Equal(t, pq.StringArray{"Rust", "SQL"}, dst.Skills)
}

func TestMergeNonEmptyAllZero(t *testing.T) {
	dst := model.EditableCompanyInfo{Name: "Keep", Location: "Here"}
	src := model.EditableCompanyInfo{}

	MergeNonEmpty(&dst, &src)

	assert.Equal(t, "Keep", dst.Name)
	assert.Equal(t, "Here", dst.Location)
}

func TestContains(t *testing.T) {
	roles := []string{model.RoleStudent, model.RoleRecruiter}

	assert.True(t, Contains(roles, "student"))
	assert.False(t, Contains(roles, "admin"))
	assert.False(t, Contains(nil, "student"))
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	assert.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, VerifyPassword("correct horse battery staple", hash))
	assert.False(t, VerifyPassword("wrong password", hash))
}
