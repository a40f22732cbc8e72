// Package artifact defines the boundary to the image collaborators: the
// complexity analyzers that score a logo file and the sketch generator that
// derives new images from one. The implementations live outside this
// repository; this package fixes their input/output shapes and the per-row
// fallback contract so one bad image never aborts a batch.
package artifact

import (
	"context"
	"log/slog"
)

// FeatureRow is the flat numeric feature record one logo analysis yields.
// A zero-valued row with Failed set is the documented fallback when the
// analyzer cannot read or decode the image.
type FeatureRow struct {
	LogoPath        string
	UniqueColors    int
	DominantColors  int
	ColorVariance   float64
	EdgeRatio       float64
	ContourCount    int
	ShapeComplexity float64
	WhitespaceRatio float64
	Failed          bool
}

// ComplexityAnalyzer scores one logo image. Implementations may do arbitrary
// I/O; errors are expected for unreadable or corrupt files.
type ComplexityAnalyzer interface {
	Analyze(ctx context.Context, logoPath string) (FeatureRow, error)
}

// SketchRequest asks the generator for sketch variants of one image.
// Either ImagePath or ImageBytes identifies the source.
type SketchRequest struct {
	ImagePath  string
	ImageBytes []byte
	Prompt     string
	Count      int
}

// SketchResult is one generated image and where it was saved.
type SketchResult struct {
	SavedPath string
	Bytes     []byte
}

// SketchGenerator derives sketch images from a source image plus a prompt.
// Zero results without an error is a valid outcome.
type SketchGenerator interface {
	Generate(ctx context.Context, req SketchRequest) ([]SketchResult, error)
}

// SafeAnalyze applies the fallback-row contract: an analyzer failure is
// logged and replaced with a zero-valued row, never propagated.
func SafeAnalyze(ctx context.Context, a ComplexityAnalyzer, logoPath string) FeatureRow {
	row, err := a.Analyze(ctx, logoPath)
	if err != nil {
		slog.Warn("image analysis failed, using fallback row",
			"logo_path", logoPath, "error", err)
		return FeatureRow{LogoPath: logoPath, Failed: true}
	}
	row.LogoPath = logoPath
	return row
}

// SafeAnalyzeAll analyzes a batch of logo paths, one fallback row per
// failure.
func SafeAnalyzeAll(ctx context.Context, a ComplexityAnalyzer, paths []string) []FeatureRow {
	out := make([]FeatureRow, len(paths))
	for i, p := range paths {
		out[i] = SafeAnalyze(ctx, a, p)
	}
	return out
}
