package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryByID(t *testing.T) {
	s := Snapshot{Categories: []Category{
		{ID: "food", Name: "Food & Dining", Color: "#3B82F6", Icon: "utensils"},
	}}

	c, ok := s.CategoryByID("food")
	assert.True(t, ok)
	assert.Equal(t, "Food & Dining", c.Name)

	_, ok = s.CategoryByID("missing")
	assert.False(t, ok)
}

func TestCategoryOrPlaceholder(t *testing.T) {
	s := Snapshot{}
	c := s.CategoryOrPlaceholder("ghost")
	assert.Equal(t, "ghost", c.ID)
	assert.Equal(t, UnknownCategoryName, c.Name)
	assert.Equal(t, UnknownCategoryColor, c.Color)
}
