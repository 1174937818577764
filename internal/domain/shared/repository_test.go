package shared

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUniqueIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	assert.Equal(t, []uuid.UUID{a, b}, UniqueIDs([]uuid.UUID{a, b, a, b, a}))
	assert.Equal(t, []uuid.UUID{b, a}, UniqueIDs([]uuid.UUID{b, a}))
	assert.Empty(t, UniqueIDs(nil))
}

func TestFilter_Offset(t *testing.T) {
	assert.Equal(t, 0, Filter{Page: 1, PageSize: 20}.Offset())
	assert.Equal(t, 40, Filter{Page: 3, PageSize: 20}.Offset())
}
