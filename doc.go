// Package okgrad groups the packages of a gradient editor back end:
// an immutable gradient state model (gradstate), its query string codec
// (urlstate), the SVG and CSS code generators (svggen, cssgen) and the
// preview and export drivers (raster, pdfexport).
//
// Around them, highlight colors the generated code, preset stores
// gradients in files, server exposes everything over HTTP and
// cmd/okgrad is the command line front end.
//
// The root package only holds the logger shared by the sub-packages.
package okgrad
