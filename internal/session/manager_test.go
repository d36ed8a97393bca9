package session

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestManager_CreateGetDelete(t *testing.T) {
	m := NewManager(sessionPool(), quietLogger())

	s := m.Create("Test FC")
	require.NotEmpty(t, s.ID())
	assert.Equal(t, 1, m.Count())

	got, ok := m.Get(s.ID())
	require.True(t, ok)
	assert.Same(t, s, got)
	assert.Equal(t, "Test FC", got.View().Team)

	m.Delete(s.ID())
	_, ok = m.Get(s.ID())
	assert.False(t, ok)
	assert.Equal(t, 0, m.Count())
}

func TestManager_CreateWithoutTeam(t *testing.T) {
	m := NewManager(sessionPool(), quietLogger())

	s := m.Create("")
	view := s.View()
	assert.Empty(t, view.Team)
	assert.Equal(t, 0, view.Assignment.OccupiedCount())
}

func TestManager_SessionIDsAreUnique(t *testing.T) {
	m := NewManager(sessionPool(), quietLogger())

	a := m.Create("")
	b := m.Create("")
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, 2, m.Count())
}
