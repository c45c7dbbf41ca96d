package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.56, Round2(10.555))
	assert.Equal(t, 10.55, Round2(10.554))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, -3.33, Round2(-3.3349))
	assert.Equal(t, 2150.0, Round2(21500*0.10))
	// Classic float edge: 0.1+0.2 lands exactly on 0.30.
	assert.Equal(t, 0.30, Round2(0.1+0.2))
}
