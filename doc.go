// Package ggcurve plots simple polynomial expressions to PNG.
//
// # Overview
//
// ggcurve takes an expression such as "0.01x^2+3" and produces a small
// greyscale PNG with the curve drawn in white on black. The pipeline
// only flows forward:
//
//	text -> expr.Expression -> raster.Buffer -> zlib stream -> PNG chunks -> bytes
//
// Parsing, rasterization, checksumming, zlib framing and PNG assembly are
// all implemented in this module. The zlib stream uses stored
// (uncompressed) DEFLATE blocks, so output is larger than a real PNG
// encoder would produce but decodes byte for byte with any reader.
//
// # Quick Start
//
//	png, err := ggcurve.Render("x^2*0.01")
//	if err != nil {
//		var me *expr.MalformedNumberError
//		if errors.As(err, &me) {
//			log.Fatalf("bad number %q", me.Text)
//		}
//		log.Fatal(err)
//	}
//	os.WriteFile("curve.png", png, 0o644)
//
// # Grid
//
// The default grid is 128x128. Column x samples the expression at
// x = 0..127, and rows count from the bottom, so the top row is y = 128.
// A cell is lit when it lies within one unit of the curve.
//
// # Expressions
//
// See package expr for the grammar. Note that '+' binds looser than '*'
// and that there are no parentheses or subtraction; write negative
// coefficients instead ("-1x^2+100").
package ggcurve
