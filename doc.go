// Package vp9quant implements VP9 coefficient quantization in pure Go.
//
// It maps the user-facing quantizer scale (0-63) to the codec's qindex
// (0-255), derives the per-qindex quantization and dequantization tables
// for luma and chroma, and quantizes transform blocks along their scan
// order, reporting the end-of-block position the entropy coder needs.
//
// Two forward paths are provided:
//   - Regular: dead-zone quantizer with exact integer division, used for
//     rate-distortion encoding.
//   - Fast: fixed-shift quantizer without a dead-zone, used at high speed
//     settings.
//
// The two may produce different levels for the same input; each matches
// the VP9 reference encoder bit for bit. Dequantization reproduces the
// decoder's reconstruction.
//
// Only 8-bit profiles are supported. Tables are built lazily, once per
// qindex, and shared by every Frame with the same plane offsets.
//
// Basic usage:
//
//	f, err := vp9quant.NewFrame(&vp9quant.Options{QIndex: 120})
//	blk, err := f.QuantizeBlock(&vp9quant.Job{Tx: vp9quant.Tx8x8, Coeff: coeff})
//	defer blk.Release()
package vp9quant
