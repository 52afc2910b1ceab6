package banner

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	imageutil "github.com/ar-codelabs/nova-web-grounding/common/image"
)

func TestStretchToTargetSize(t *testing.T) {
	out, err := Stretch(pngBytes(t, 200, 100, color.RGBA{R: 255, A: 255}), 300, 100)
	require.NoError(t, err)

	width, height, err := imageutil.Size(out)
	require.NoError(t, err)
	require.Equal(t, 300, width)
	require.Equal(t, 100, height)

	format, err := imageutil.DetectFormat(out)
	require.NoError(t, err)
	require.Equal(t, "png", format)
}

func TestStretchKeepsMatchingRatio(t *testing.T) {
	// 600x200 is already 3:1, so this is a plain downscale
	out, err := Stretch(pngBytes(t, 600, 200, color.RGBA{B: 255, A: 255}), 300, 100)
	require.NoError(t, err)

	width, height, err := imageutil.Size(out)
	require.NoError(t, err)
	require.Equal(t, 300, width)
	require.Equal(t, 100, height)
}

func TestStretchUpscalesBothAxes(t *testing.T) {
	out, err := Stretch(pngBytes(t, 100, 80, color.RGBA{G: 255, A: 255}), 3072, 1024)
	require.NoError(t, err)

	width, height, err := imageutil.Size(out)
	require.NoError(t, err)
	require.Equal(t, 3072, width)
	require.Equal(t, 1024, height)
}

func TestStretchRejectsGarbage(t *testing.T) {
	_, err := Stretch([]byte("definitely not an image"), 300, 100)
	require.Error(t, err)
}

func TestStretchRejectsInvalidTarget(t *testing.T) {
	img := pngBytes(t, 200, 100, color.RGBA{R: 255, A: 255})

	_, err := Stretch(img, 0, 100)
	require.Error(t, err)

	_, err = Stretch(img, 300, -1)
	require.Error(t, err)
}
