package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSystemClock_ReturnsUTC(t *testing.T) {
	now := System().Now()
	assert.Equal(t, time.UTC, now.Location())
}

func TestFixedClock_ReturnsGivenInstant(t *testing.T) {
	instant := time.Date(2024, 1, 7, 0, 0, 0, 0, time.FixedZone("UTC+7", 7*3600))
	c := Fixed(instant)

	assert.Equal(t, instant.UTC(), c.Now())
	assert.Equal(t, time.UTC, c.Now().Location())
	assert.Equal(t, c.Now(), c.Now(), "fixed clock must not advance")
}
