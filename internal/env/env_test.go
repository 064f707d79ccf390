package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetString(t *testing.T) {
	t.Setenv("BUDGETD_TEST_STR", "hello")

	assert.Equal(t, "hello", GetString("BUDGETD_TEST_STR", "fallback"))
	assert.Equal(t, "fallback", GetString("BUDGETD_TEST_MISSING", "fallback"))
}

func TestGetInt(t *testing.T) {
	t.Setenv("BUDGETD_TEST_INT", "42")
	t.Setenv("BUDGETD_TEST_BAD_INT", "not a number")

	assert.Equal(t, 42, GetInt("BUDGETD_TEST_INT", 7))
	assert.Equal(t, 7, GetInt("BUDGETD_TEST_BAD_INT", 7))
	assert.Equal(t, 7, GetInt("BUDGETD_TEST_MISSING", 7))
}

func TestGetBool(t *testing.T) {
	t.Setenv("BUDGETD_TEST_BOOL", "true")
	t.Setenv("BUDGETD_TEST_BAD_BOOL", "yep")

	assert.True(t, GetBool("BUDGETD_TEST_BOOL", false))
	assert.False(t, GetBool("BUDGETD_TEST_BAD_BOOL", false))
	assert.True(t, GetBool("BUDGETD_TEST_MISSING", true))
}
