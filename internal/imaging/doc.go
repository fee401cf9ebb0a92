// Package imaging connects image files to Munsell notation.
//
// It samples pixels of PNG, JPEG and GIF images and reports their nearest
// reference notation, extracts an image's dominant notations and renders
// swatches of notations back to PNG.
//
// # Coordinate System
//
// Pixel coordinates are 0-based from the top-left corner:
//   - X increases to the right, Y increases downwards
//   - for regions, (X1,Y1) is inclusive and (X2,Y2) is exclusive
//
// # Matching
//
// Functions take a Matcher rather than a concrete engine. Pixel colours are
// converted to LUV with the colorspace package and the matcher picks the
// nearest table notation, so every notation returned here has a table entry.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The sampling and rendering functions
// are stateless; they are safe to call concurrently as long as the images
// passed in are not modified meanwhile.
package imaging
