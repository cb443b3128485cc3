package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	p := NewPage([]int{1, 2}, 2, 10, 12)
	assert.Equal(t, 2, p.LastPage)
	assert.Equal(t, int64(12), p.Total)

	empty := NewPage[int](nil, 1, 10, 0)
	assert.NotNil(t, empty.Items)
	assert.Equal(t, 1, empty.LastPage)
}

func TestNormalizePage(t *testing.T) {
	page, offset := NormalizePage(0, 10)
	assert.Equal(t, 1, page)
	assert.Equal(t, 0, offset)

	page, offset = NormalizePage(3, 10)
	assert.Equal(t, 3, page)
	assert.Equal(t, 20, offset)
}

func TestUserType(t *testing.T) {
	assert.True(t, UserTypeAdmin.Valid())
	assert.False(t, UserType("root").Valid())
	assert.True(t, UserTypeEmployer.SelfRegistrable())
	assert.False(t, UserTypeAdmin.SelfRegistrable())
}
