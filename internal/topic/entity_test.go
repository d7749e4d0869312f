// AngelaMos | 2026
// entity_test.go

package topic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentTypeSetAllows(t *testing.T) {
	t.Run("empty set accepts everything", func(t *testing.T) {
		assert.True(t, ContentTypeSet(nil).Allows("ct-1"))
		assert.True(t, ContentTypeSet{}.Allows("ct-1"))
	})

	t.Run("non-empty set is a whitelist", func(t *testing.T) {
		set := ContentTypeSet{"ct-video", "ct-audio"}
		assert.True(t, set.Allows("ct-audio"))
		assert.False(t, set.Allows("ct-image"))
	})
}

func TestContentTypeSetRoundTrip(t *testing.T) {
	set := ContentTypeSet{"ct-video", "ct-audio"}

	value, err := set.Value()
	require.NoError(t, err)

	var scanned ContentTypeSet
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, set, scanned)

	var empty ContentTypeSet
	require.NoError(t, empty.Scan(nil))
	assert.Nil(t, empty)
}
