package service

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var trackingPattern = regexp.MustCompile(`^ZPS-\d{8}-[0-9A-F]{6}$`)

func TestNewTrackingIDFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := NewTrackingID()
		require.Regexp(t, trackingPattern, id)
	}
}

func TestNewTrackingIDCollisionResistance(t *testing.T) {
	const samples = 10000
	seen := make(map[string]struct{}, samples)
	for i := 0; i < samples; i++ {
		id := NewTrackingID()
		_, dup := seen[id]
		assert.False(t, dup, "duplicate tracking id %s after %d samples", id, i)
		seen[id] = struct{}{}
	}
}
