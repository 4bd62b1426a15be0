// Implements a PDF export of gradient previews,
// by wrapping github.com/jung-kurt/gofpdf.
//
// The gradient is rendered by the raster package and embedded as a PNG
// image in a single page sized to it. The optional background is drawn
// as a vector rectangle underneath.
package pdfexport

import (
	"bytes"
	"fmt"
	"io"

	"github.com/benoitkugler/okgrad"
	"github.com/benoitkugler/okgrad/gradstate"
	"github.com/benoitkugler/okgrad/raster"
	"github.com/jung-kurt/gofpdf"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// pixelsToPoints converts CSS pixels to PDF points
const pixelsToPoints = 72. / 96

const imageName = "gradient"

// Options tweaks the export.
type Options struct {
	// Width and Height are the size of the embedded image, in pixels.
	// Zero means raster.DefaultSize.
	Width, Height int
	Seed          int
	Background    bool
}

// Write renders s and writes it as a PDF document to out.
func Write(out io.Writer, s gradstate.State, opts Options) error {
	img := raster.Render(s, raster.Options{Width: opts.Width, Height: opts.Height, Seed: opts.Seed})
	var png bytes.Buffer
	if err := raster.EncodePNG(&png, img); err != nil {
		return fmt.Errorf("pdfexport: encoding image: %w", err)
	}

	bounds := img.Bounds()
	w, h := float64(bounds.Dx())*pixelsToPoints, float64(bounds.Dy())*pixelsToPoints
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle("Gradient", true)
	pdf.SetCreator("okgrad", true)
	pdf.AddPage()

	if opts.Background {
		drawBackground(pdf, s.BackgroundColor, w, h)
	}

	imgOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(imageName, imgOpts, &png)
	pdf.ImageOptions(imageName, 0, 0, w, h, false, imgOpts, 0, "")

	if err := pdf.Output(out); err != nil {
		return fmt.Errorf("pdfexport: %w", err)
	}
	okgrad.Logger().Debug("exported pdf", "width", w, "height", h)
	return nil
}

func drawBackground(pdf *gofpdf.Fpdf, hex string, w, h float64) {
	var r, g, b uint8
	if c, err := colorful.Hex(hex); err == nil {
		r, g, b = c.RGB255()
	}
	pdf.SetFillColor(int(r), int(g), int(b))
	pdf.MoveTo(0, 0)
	pdf.LineTo(w, 0)
	pdf.LineTo(w, h)
	pdf.LineTo(0, h)
	pdf.ClosePath()
	pdf.DrawPath("f")
}
