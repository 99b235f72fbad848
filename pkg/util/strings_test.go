package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsString(t *testing.T) {
	roles := []string{"passenger", "conductor", "admin"}

	assert.True(t, ContainsString(roles, "conductor"))
	assert.False(t, ContainsString(roles, "driver"))
	assert.False(t, ContainsString(nil, "passenger"))
}

func TestTrimString(t *testing.T) {
	assert.Equal(t, "hello", TrimString("hello", 10))
	assert.Equal(t, "hello", TrimString("hello", 5))
	assert.Equal(t, "hel", TrimString("hello", 3))
	assert.Equal(t, "", TrimString("", 3))
}
