package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Run("unset and blank fall back to the default", func(t *testing.T) {
		t.Setenv("HOMEVISIT_TEST_BLANK", "   ")
		assert.Equal(t, "fallback", GetEnvString("HOMEVISIT_TEST_UNSET", "fallback"))
		assert.Equal(t, "fallback", GetEnvString("HOMEVISIT_TEST_BLANK", "fallback"))
	})

	t.Run("typed values are parsed", func(t *testing.T) {
		t.Setenv("HOMEVISIT_TEST_INT", "42")
		t.Setenv("HOMEVISIT_TEST_BOOL", "true")
		t.Setenv("HOMEVISIT_TEST_FLOAT", "0.7")
		assert.Equal(t, 42, GetEnvInt("HOMEVISIT_TEST_INT", 1))
		assert.True(t, GetEnvBool("HOMEVISIT_TEST_BOOL", false))
		assert.InDelta(t, 0.7, GetEnvFloat("HOMEVISIT_TEST_FLOAT", 0), 1e-9)
	})

	t.Run("unparsable values fall back to the default", func(t *testing.T) {
		t.Setenv("HOMEVISIT_TEST_INT", "forty")
		assert.Equal(t, 1, GetEnvInt("HOMEVISIT_TEST_INT", 1))
	})

	t.Run("string slice", func(t *testing.T) {
		t.Setenv("HOMEVISIT_TEST_SLICE", " https://a.example , ,https://b.example")
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, GetEnvStringSlice("HOMEVISIT_TEST_SLICE", nil))

		t.Setenv("HOMEVISIT_TEST_SLICE", " , ")
		assert.Equal(t, []string{"*"}, GetEnvStringSlice("HOMEVISIT_TEST_SLICE", []string{"*"}))
	})
}
