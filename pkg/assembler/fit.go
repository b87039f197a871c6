package assembler

// FitDimensions computes the width/height an image is given when placed on a
// page, preserving the image's aspect ratio (fitWidth/fitHeight).
//
// Note the argument order: width/height receive the PAGE dimensions and
// fitWidth/fitHeight receive the IMAGE dimensions. The page dimension is the
// base reused in the result, so the placed image always spans the full page
// on one axis and small images are upscaled to page size. That exact
// arithmetic is the output-compatibility contract; changing it changes every
// produced document.
func FitDimensions(width, height, fitWidth, fitHeight float64) (float64, float64) {
	ratio := width / height
	fitRatio := fitWidth / fitHeight
	if ratio <= fitRatio {
		return width, width / fitRatio
	}
	return height * fitRatio, height
}
