package banner

import (
	"image"
	"math"

	"github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"
	"golang.org/x/image/draw"

	imageutil "github.com/ar-codelabs/nova-web-grounding/common/image"
	"github.com/ar-codelabs/nova-web-grounding/common/logger"
)

// ratioTolerance is how close two aspect ratios must be to count as equal.
const ratioTolerance = 0.01

// Stretch resizes raw to the target size without cropping, so all vertical
// content survives at the cost of horizontal distortion. Images already at
// the target ratio get a plain high quality resize.
func Stretch(raw []byte, targetWidth, targetHeight int) ([]byte, error) {
	if targetWidth <= 0 || targetHeight <= 0 {
		return nil, errors.Errorf("invalid target size %dx%d", targetWidth, targetHeight)
	}

	src, err := imageutil.Decode(raw)
	if err != nil {
		return nil, errors.Wrap(err, "decode image")
	}

	bounds := src.Bounds()
	originalRatio := float64(bounds.Dx()) / float64(bounds.Dy())
	targetRatio := float64(targetWidth) / float64(targetHeight)

	if math.Abs(originalRatio-targetRatio) < ratioTolerance {
		logger.Logger.Info("ratio already matches, plain resize",
			zap.Int("width", targetWidth), zap.Int("height", targetHeight))
	} else {
		logger.Logger.Info("stretching to target ratio",
			zap.Float64("original_ratio", originalRatio),
			zap.Float64("target_ratio", targetRatio),
			zap.Float64("width_factor", float64(targetWidth)/float64(bounds.Dx())),
			zap.Float64("height_factor", float64(targetHeight)/float64(bounds.Dy())))
	}

	dst := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)

	return imageutil.EncodePNG(dst)
}
