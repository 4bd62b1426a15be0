package pdfexport

import (
	"bytes"
	"os"
	"testing"

	"github.com/benoitkugler/okgrad/gradstate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	for name, s := range map[string]gradstate.State{
		"radial": gradstate.Default(),
		"linear": gradstate.Default().WithType(gradstate.Linear).WithGrain(0.3),
	} {
		var out bytes.Buffer
		err := Write(&out, s, Options{Width: 96, Height: 48, Background: true})
		if err != nil {
			t.Fatalf("can't export pdf: %s", err)
		}
		b := out.Bytes()
		assert.True(t, bytes.HasPrefix(b, []byte("%PDF-")), name)
		assert.Contains(t, string(b), "/MediaBox [0 0 72.00 36.00]", name)
		assert.Contains(t, string(b), "/Subtype /Image", name)

		if err = os.MkdirAll("testdata_out", os.ModePerm); err != nil {
			t.Fatal(err)
		}
		if err = os.WriteFile("testdata_out/"+name+".pdf", b, os.ModePerm); err != nil {
			t.Error(err)
		}
	}
}

func TestWriteDefaultSize(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Write(&out, gradstate.Default(), Options{}))
	// 512 px at 96 dpi
	assert.Contains(t, out.String(), "/MediaBox [0 0 384.00 384.00]")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, os.ErrClosed }

func TestWriteError(t *testing.T) {
	err := Write(failingWriter{}, gradstate.Default(), Options{Width: 10, Height: 10})
	assert.ErrorIs(t, err, os.ErrClosed)
}
