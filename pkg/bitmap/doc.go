// Package bitmap holds the two pixel grids of the conversion pipeline: the
// 8-bit [Gray] grid produced by the image loader and the boolean [Bitmap]
// derived from it by [Binarize].
//
// # Coordinates
//
// Both grids use image coordinates: the origin is the top-left pixel, x grows
// to the right and y grows downwards. Storage is row-major. Conversion to the
// y-up layout coordinate system happens later, in package geometry.
//
// # Thresholding
//
// A pixel is lit when its intensity is strictly below [Threshold]:
//
//	g := bitmap.NewGray(2, 1)
//	g.Set(0, 0, 0)   // black -> lit
//	g.Set(1, 0, 255) // white -> unlit
//	b := bitmap.Binarize(g)
//	b.At(0, 0) // true
//
// The threshold is fixed; there is no grayscale or multi-level encoding.
//
// # Immutability
//
// A [Bitmap] has no setters. Once built it is shared read-only by the
// design-rule checker and the geometry emitter, so both may run on the same
// value without synchronisation.
package bitmap
