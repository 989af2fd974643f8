package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Remy-Arinze/agora-backend-sub002/internal/models"
)

func TestInferSchoolType(t *testing.T) {
	cases := []struct {
		name string
		want models.SchoolType
	}{
		{"JSS 1", models.SchoolTypeSecondary},
		{"jss2", models.SchoolTypeSecondary},
		{"SS 3", models.SchoolTypeSecondary},
		{"100L", models.SchoolTypeTertiary},
		{"Level 2", models.SchoolTypeTertiary},
		{"Primary 4", models.SchoolTypePrimary},
		{"Basic 6", models.SchoolTypePrimary},
		{"Nursery 1", ""},
		{"", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, InferSchoolType(tc.name))
		})
	}
}

func TestMatchesSchoolType(t *testing.T) {
	// an empty target matches everything
	assert.True(t, matchesSchoolType("", models.SchoolTypePrimary, "JSS 1"))

	// an explicit type on the linked level wins over the name
	assert.True(t, matchesSchoolType(models.SchoolTypePrimary, models.SchoolTypePrimary, "JSS 1"))
	assert.False(t, matchesSchoolType(models.SchoolTypeSecondary, models.SchoolTypePrimary, "JSS 1"))

	// without an explicit type the name heuristic decides
	assert.True(t, matchesSchoolType(models.SchoolTypeSecondary, "", "SS 2"))
	assert.False(t, matchesSchoolType(models.SchoolTypeTertiary, "", "SS 2"))

	// rows with no signal at all stay in the sweep
	assert.True(t, matchesSchoolType(models.SchoolTypeSecondary, "", "Nursery 1"))
}
