package smudge

import (
	"image"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// OutputName is the file written into the output directory.
const OutputName = "output.png"

// Open decodes the image at path into a fresh NRGBA buffer. EXIF
// orientation is applied so the output is stored upright.
func Open(path string) (*image.NRGBA, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, newError(KindDecode, err, "%s", path)
	}
	return imaging.Clone(img), nil
}

// Save encodes img as PNG into dir/output.png and returns the written path.
// A failed encode leaves no partial output.png behind.
func Save(img image.Image, dir string) (string, error) {
	path := filepath.Join(dir, OutputName)
	out, err := os.Create(path)
	if err != nil {
		return "", newError(KindEncode, err, "%s", path)
	}
	if err := imaging.Encode(out, img, imaging.PNG); err != nil {
		out.Close()
		os.Remove(path)
		return "", newError(KindEncode, err, "%s", path)
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return "", newError(KindEncode, err, "%s", path)
	}
	return path, nil
}

// RunOptions carries the collaborators of a run.
type RunOptions struct {
	// Rand overrides the source derived from Params.Seed.
	Rand *rand.Rand
	// Observer receives per-row progress.
	Observer Observer
}

// Result describes a finished run.
type Result struct {
	Width      int
	Height     int
	OutputPath string
}

// Run opens the input image, smudges it and writes output.png.
func Run(inv *Invocation, opts RunOptions) (*Result, error) {
	img, err := Open(inv.InputPath)
	if err != nil {
		return nil, err
	}

	rng := opts.Rand
	if rng == nil {
		rng = NewSource(inv.Params.Seed)
	}
	NewSmudger(rng).Observe(opts.Observer).Apply(img, inv.Params)

	path, err := Save(img, inv.OutputDir)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	return &Result{Width: b.Dx(), Height: b.Dy(), OutputPath: path}, nil
}
