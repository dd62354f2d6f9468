package imageprocessor

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDifferenceHash(t *testing.T) {
	h, err := ComputeDifferenceHash(horizontalGradient(256, 64))
	require.NoError(t, err)
	assert.Equal(t, "ffffffffffffffff", h)

	h, err = ComputeDifferenceHash(uniform(64, 64, color.RGBA{90, 90, 90, 255}))
	require.NoError(t, err)
	assert.Equal(t, "0000000000000000", h)
}

func TestComputePerceptualHashStable(t *testing.T) {
	img := horizontalGradient(128, 128)

	a, err := ComputePerceptualHash(img)
	require.NoError(t, err)
	b, err := ComputePerceptualHash(img)
	require.NoError(t, err)

	assert.Len(t, a, HashHexLength)
	assert.Equal(t, a, b)
}

func TestParseHash(t *testing.T) {
	v, err := ParseHash("00000000000000ff")
	require.NoError(t, err)
	assert.Equal(t, uint64(0xff), v)

	for _, bad := range []string{"", "ff", "zzzzzzzzzzzzzzzz", "00000000000000000"} {
		_, err := ParseHash(bad)
		assert.Error(t, err, bad)
	}
}
