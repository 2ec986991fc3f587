package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewSetsLevelByEnvironment(t *testing.T) {
	assert.Equal(t, logrus.InfoLevel, New("production").GetLevel())
	assert.Equal(t, logrus.DebugLevel, New("development").GetLevel())
	assert.Equal(t, logrus.DebugLevel, New("").GetLevel())
}

func TestNewUsesJSONFormatter(t *testing.T) {
	logger := New("development")
	_, ok := logger.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok)
}
