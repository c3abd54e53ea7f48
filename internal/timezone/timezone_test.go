package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocation(t *testing.T) {
	assert.Equal(t, time.UTC, Location(""))
	assert.Equal(t, time.UTC, Location("Mars/Olympus_Mons"))
	assert.Equal(t, "America/Sao_Paulo", Location("America/Sao_Paulo").String())
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("Europe/Lisbon"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("Nowhere/City"))
}

func TestResolve(t *testing.T) {
	assert.Equal(t, time.UTC, Resolve(nil))
	loc := time.FixedZone("X", 3600)
	assert.Equal(t, loc, Resolve(loc))
}
