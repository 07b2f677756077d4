package graph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netlayout/internal/domain"
)

func TestRemoveNode(t *testing.T) {
	t.Run("reattaches links to the group cloud", func(t *testing.T) {
		s, err := Load(chainDocument())
		require.NoError(t, err)

		r, err := s.RemoveNode(3)
		require.NoError(t, err)
		require.NotNil(t, r)

		assert.Equal(t, 3, r.ElementID)
		assert.Equal(t, 1, r.Placeholder)
		assert.Equal(t, 2, r.Retargeted)
		assert.True(t, s.Retired(3))

		_, ok := s.Element(3)
		assert.False(t, ok)
		for _, l := range s.Links() {
			assert.False(t, l.Touches(3), "link %d still references removed element", l.ID)
		}

		// 2-3 became 2-1, 3-4 became 1-4
		l, _ := s.Link(2)
		assert.Equal(t, 2, l.Source)
		assert.Equal(t, 1, l.Target)
		l, _ = s.Link(3)
		assert.Equal(t, 1, l.Source)
		assert.Equal(t, 4, l.Target)
	})

	t.Run("prunes links collapsed into self loops", func(t *testing.T) {
		s, err := Load(chainDocument())
		require.NoError(t, err)

		r, err := s.RemoveNode(2)
		require.NoError(t, err)

		// 1-2 became 1-1 and is dropped
		assert.Equal(t, 1, r.Pruned)
		_, ok := s.Link(1)
		assert.False(t, ok)
		for _, l := range s.Links() {
			assert.False(t, l.SelfLoop())
		}
	})

	t.Run("unhides the cloud", func(t *testing.T) {
		s, err := Load(chainDocument())
		require.NoError(t, err)
		s.SetCloudsVisible(false)

		_, err = s.RemoveNode(3)
		require.NoError(t, err)

		cloud, _ := s.Element(1)
		assert.False(t, cloud.Hidden)
		l, _ := s.Link(2)
		assert.False(t, l.Hidden)
	})

	t.Run("missing id is a no-op", func(t *testing.T) {
		s, err := Load(chainDocument())
		require.NoError(t, err)

		r, err := s.RemoveNode(99)
		assert.NoError(t, err)
		assert.Nil(t, r)
		assert.Equal(t, 5, s.Len())
	})

	t.Run("group without cloud is rejected unchanged", func(t *testing.T) {
		s, err := Load(chainDocument())
		require.NoError(t, err)
		before := s.Snapshot()

		r, err := s.RemoveNode(4)
		assert.Nil(t, r)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvariantViolation))

		assert.Equal(t, before, s.Snapshot())
		assert.False(t, s.Retired(4))
	})

	t.Run("only cloud of a group cannot be removed", func(t *testing.T) {
		s, err := Load(chainDocument())
		require.NoError(t, err)

		_, err = s.RemoveNode(1)
		assert.True(t, errors.Is(err, domain.ErrInvariantViolation))
		_, ok := s.Element(1)
		assert.True(t, ok)
	})
}
