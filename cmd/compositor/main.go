// Command compositor runs a single compositing operation over image
// files from the command line.
//
// Examples:
//
//	compositor -op resize -width 640 -out small.jpg photo.jpg
//	compositor -op rotate -angle 45 -background "#202020" -out tilted.png photo.png
//	compositor -op concat -direction right -strategy pad-both -out strip.webp a.png b.png c.png
//	compositor -op blend -opacity 0.3 -out faded.png a.png b.png
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pixelforge/compositor/compose"
	"github.com/pixelforge/compositor/engine"
)

func main() {
	var (
		op         = flag.String("op", "", "operation: resize, rotate, pad, crop, filter, blend, concat, mosaic")
		outPath    = flag.String("out", "out.png", "output file; the extension picks the encoding")
		quality    = flag.Int("quality", 0, "encode quality 1..100 for lossy formats (0 = default)")
		width      = flag.Int("width", 0, "target width")
		height     = flag.Int("height", 0, "target height")
		angle      = flag.Float64("angle", 0, "rotation angle in degrees, positive counter-clockwise")
		background = flag.String("background", "", "background/pad color, \"#RRGGBB\" or \"rgb(r,g,b)\"")
		opacity    = flag.Float64("opacity", 0.5, "blend weight of the first image, 0..1")
		direction  = flag.String("direction", "right", "concat direction: right, left, up, down")
		strategy   = flag.String("strategy", "resize", "concat strategy: resize, pad-start, pad-end, pad-both")
		operator   = flag.String("filter", "blur", "filter operator: blur, gaussian, sharpen, emboss, edge")
		kernelSize = flag.Int("kernel", 3, "filter kernel size, odd 3..15")
		intensity  = flag.Float64("intensity", 1, "filter intensity 0..2")
		x          = flag.Float64("x", 0, "crop/placement x")
		y          = flag.Float64("y", 0, "crop/placement y")
		normalized = flag.Bool("normalized", false, "treat coordinates as fractions of the source size")
	)
	flag.Parse()

	paths := flag.Args()
	if *op == "" || len(paths) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	inputs := make([]engine.Input, len(paths))
	for i, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			log.Fatalf("read %s: %v", p, err)
		}
		inputs[i] = engine.Input{Data: data}
	}

	output := engine.Output{Format: formatFromPath(*outPath), Quality: *quality}

	var res *engine.Result
	var err error
	switch *op {
	case "resize":
		res, err = engine.Resize(engine.ResizeRequest{
			Input: inputs[0], Width: *width, Height: *height, Output: output,
		})
	case "rotate":
		res, err = engine.Rotate(engine.RotateRequest{
			Input: inputs[0], Angle: *angle, Background: *background, Output: output,
		})
	case "pad":
		res, err = engine.Pad(engine.PadRequest{
			Input: inputs[0], Top: *height, Bottom: *height, Left: *width, Right: *width,
			Color: *background, Output: output,
		})
	case "crop":
		res, err = engine.Crop(engine.CropRequest{
			Input: inputs[0], X: *x, Y: *y,
			Width: float64(*width), Height: float64(*height),
			Normalized: *normalized, Output: output,
		})
	case "filter":
		res, err = engine.Filter(engine.FilterRequest{
			Input: inputs[0], Operator: *operator,
			KernelSize: *kernelSize, Intensity: *intensity, Output: output,
		})
	case "blend":
		if len(inputs) != 2 {
			log.Fatal("blend needs exactly two input files")
		}
		res, err = engine.Blend(engine.BlendRequest{
			A: inputs[0], B: inputs[1], Opacity: *opacity, Output: output,
		})
	case "concat":
		res, err = engine.Concat(engine.ConcatRequest{
			Inputs:    inputs,
			Direction: compose.Direction(*direction),
			Strategy:  compose.Strategy(*strategy),
			PadColor:  *background,
			Output:    output,
		})
	case "mosaic":
		positions := make([]compose.Position, len(inputs))
		for i := range positions {
			positions[i] = compose.Position{Index: i, X: *x, Y: *y}
		}
		res, err = engine.Mosaic(engine.MosaicRequest{
			Inputs: inputs, Width: *width, Height: *height,
			Background: *background, Positions: positions,
			Normalized: *normalized, Output: output,
		})
	default:
		log.Fatalf("unknown operation %q", *op)
	}
	if err != nil {
		log.Fatalf("%s: %v", *op, err)
	}

	if err := os.WriteFile(*outPath, res.Data, 0o644); err != nil {
		log.Fatalf("write %s: %v", *outPath, err)
	}
	fmt.Printf("%s -> %s (%dx%d %s) convert=%.2fms task=%.2fms encode=%.2fms\n",
		*op, *outPath, res.Width, res.Height, res.Format,
		res.Timing.ConvertMs, res.Timing.TaskMs, res.Timing.EncodeMs)
}

// formatFromPath maps the output extension to an encoding format.
func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "jpg"
	case ".webp":
		return "webp"
	}
	return "png"
}
