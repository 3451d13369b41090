package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReaders(t *testing.T) {
	t.Setenv("PF_TEST_BOOL", "TRUE")
	t.Setenv("PF_TEST_INT", "42")
	t.Setenv("PF_TEST_BAD_INT", "forty-two")
	t.Setenv("PF_TEST_FLOAT", "1.5")
	t.Setenv("PF_TEST_STRING", "hello")
	t.Setenv("PF_TEST_DURATION", "2.5")
	t.Setenv("PF_TEST_BAD_DURATION", "-1")

	assert.True(t, Bool("PF_TEST_BOOL", false))
	assert.True(t, Bool("PF_TEST_MISSING", true))
	assert.Equal(t, 42, Int("PF_TEST_INT", 1))
	assert.Equal(t, 1, Int("PF_TEST_BAD_INT", 1))
	assert.Equal(t, 1.5, Float64("PF_TEST_FLOAT", 0))
	assert.Equal(t, "hello", String("PF_TEST_STRING", "x"))
	assert.Equal(t, "x", String("PF_TEST_MISSING", "x"))
	assert.Equal(t, 2500*time.Millisecond, Duration("PF_TEST_DURATION", time.Second))
	assert.Equal(t, time.Second, Duration("PF_TEST_BAD_DURATION", time.Second))
	assert.Equal(t, time.Second, Duration("", time.Second))
}
