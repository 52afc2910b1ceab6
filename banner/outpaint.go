package banner

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"

	"github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"golang.org/x/image/draw"

	imageutil "github.com/ar-codelabs/nova-web-grounding/common/image"
	"github.com/ar-codelabs/nova-web-grounding/common/logger"
)

const (
	taskTypeOutPainting    = "OUTPAINTING"
	outPaintingModeDefault = "DEFAULT"
	qualityPremium         = "premium"
)

// outPaintingRequest is the Nova Canvas OUTPAINTING request body.
type outPaintingRequest struct {
	TaskType              string                `json:"taskType"`
	OutPaintingParams     outPaintingParams     `json:"outPaintingParams"`
	ImageGenerationConfig imageGenerationConfig `json:"imageGenerationConfig"`
}

type outPaintingParams struct {
	Text            string `json:"text"`
	Image           string `json:"image"`
	MaskImage       string `json:"maskImage"`
	OutPaintingMode string `json:"outPaintingMode"`
}

type imageGenerationConfig struct {
	NumberOfImages int     `json:"numberOfImages"`
	Quality        string  `json:"quality"`
	Height         int     `json:"height"`
	Width          int     `json:"width"`
	CfgScale       float64 `json:"cfgScale"`
	Seed           int     `json:"seed"`
}

// outPaintingResponse is the body Nova Canvas returns. A populated error
// field means the generation failed even when the HTTP call succeeded.
type outPaintingResponse struct {
	Images []string `json:"images"`
	Error  string   `json:"error"`
}

// outpaint extends raw sideways to the target size with Nova Canvas. The
// source is scaled to the target height, centered on a black canvas, and
// the uncovered margins are painted in.
func (p *Pipeline) outpaint(ctx context.Context, raw []byte) ([]byte, error) {
	src, err := imageutil.Decode(raw)
	if err != nil {
		return nil, errors.Wrap(err, "decode generated image")
	}

	canvasPNG, maskPNG, pasteX, err := composeCanvasAndMask(src, p.opts.Width, p.opts.Height)
	if err != nil {
		return nil, err
	}

	logger.Logger.Info("outpainting to target size",
		zap.String("model", p.opts.CanvasModel),
		zap.Int("target_width", p.opts.Width),
		zap.Int("target_height", p.opts.Height),
		zap.Int("paste_x", pasteX))

	body, err := json.Marshal(outPaintingRequest{
		TaskType: taskTypeOutPainting,
		OutPaintingParams: outPaintingParams{
			Text:            p.opts.OutpaintPrompt,
			Image:           base64.StdEncoding.EncodeToString(canvasPNG),
			MaskImage:       base64.StdEncoding.EncodeToString(maskPNG),
			OutPaintingMode: outPaintingModeDefault,
		},
		ImageGenerationConfig: imageGenerationConfig{
			NumberOfImages: 1,
			Quality:        qualityPremium,
			Height:         p.opts.Height,
			Width:          p.opts.Width,
			CfgScale:       8.0,
			Seed:           0,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "marshal outpainting request")
	}

	resp, err := p.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		Body:        body,
		ModelId:     aws.String(p.opts.CanvasModel),
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, errors.Wrap(err, "invoke nova canvas")
	}

	var parsed outPaintingResponse
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		return nil, errors.Wrap(err, "unmarshal outpainting response")
	}
	if parsed.Error != "" {
		return nil, errors.Errorf("nova canvas error: %s", parsed.Error)
	}
	if len(parsed.Images) == 0 {
		return nil, errors.New("nova canvas returned no images")
	}

	if width, height, err := imageutil.GetImageSizeFromBase64(parsed.Images[0]); err == nil {
		logger.Logger.Info("outpainting complete",
			zap.Int("width", width), zap.Int("height", height))
	}

	out, err := base64.StdEncoding.DecodeString(parsed.Images[0])
	if err != nil {
		return nil, errors.Wrap(err, "decode outpainted image")
	}

	return out, nil
}

// composeCanvasAndMask scales src to the target height, centers it on a
// black canvas of the target size, and builds the matching mask. White
// mask pixels mark the area Canvas paints, black pixels keep the original.
func composeCanvasAndMask(src image.Image, targetWidth, targetHeight int) (canvasPNG, maskPNG []byte, pasteX int, err error) {
	bounds := src.Bounds()
	originalWidth, originalHeight := bounds.Dx(), bounds.Dy()

	scale := float64(targetHeight) / float64(originalHeight)
	scaledWidth := int(float64(originalWidth) * scale)
	if scaledWidth >= targetWidth {
		return nil, nil, 0, errors.Errorf(
			"image %dx%d leaves no width to extend toward %dx%d",
			originalWidth, originalHeight, targetWidth, targetHeight)
	}

	scaled := image.NewRGBA(image.Rect(0, 0, scaledWidth, targetHeight))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, bounds, draw.Src, nil)

	pasteX = (targetWidth - scaledWidth) / 2
	kept := image.Rect(pasteX, 0, pasteX+scaledWidth, targetHeight)

	canvas := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	draw.Draw(canvas, kept, scaled, image.Point{}, draw.Src)

	mask := image.NewGray(image.Rect(0, 0, targetWidth, targetHeight))
	draw.Draw(mask, mask.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(mask, kept, image.NewUniform(color.Black), image.Point{}, draw.Src)

	if canvasPNG, err = imageutil.EncodePNG(canvas); err != nil {
		return nil, nil, 0, err
	}
	if maskPNG, err = imageutil.EncodePNG(mask); err != nil {
		return nil, nil, 0, err
	}

	return canvasPNG, maskPNG, pasteX, nil
}
