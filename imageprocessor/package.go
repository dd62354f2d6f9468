// Package imageprocessor loads images and computes the perceptual
// fingerprints used for duplicate detection.
package imageprocessor
