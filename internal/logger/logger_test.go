package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLogger_ReturnsSameInstance(t *testing.T) {
	first := GetLogger()
	second := GetLogger()

	assert.NotNil(t, first)
	assert.Same(t, first, second)

	Sync()
}
