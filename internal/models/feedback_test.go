package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeedbackTypeValid(t *testing.T) {
	assert.True(t, TypeConsider.Valid())
	assert.True(t, TypeContinue.Valid())
	assert.False(t, FeedbackType("praise").Valid())
	assert.False(t, FeedbackType("").Valid())
}

func TestValidCategory(t *testing.T) {
	assert.True(t, ValidCategory(TypeConsider, "Communication"))
	assert.True(t, ValidCategory(TypeContinue, "Workplace Values"))

	// The lists are disjoint per type
	assert.False(t, ValidCategory(TypeConsider, "Workplace Values"))
	assert.False(t, ValidCategory(TypeContinue, "Communication"))

	assert.False(t, ValidCategory(TypeConsider, "Made Up"))
	assert.False(t, ValidCategory(FeedbackType("praise"), "Communication"))
}

func TestTaxonomySizes(t *testing.T) {
	assert.Len(t, ConsiderCategories, 10)
	assert.Len(t, ContinueCategories, 8)
}

func TestValidDepartment(t *testing.T) {
	for _, dept := range Departments {
		assert.True(t, ValidDepartment(dept))
	}
	assert.False(t, ValidDepartment("Product"))
	assert.False(t, ValidDepartment(""))
}
