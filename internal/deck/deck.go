// Package deck builds the "Building Leaders from the Ground Up" presentation.
//
// Each slide is a fixed script of drawing calls. Builders run once, in order,
// and the finished presentation is serialized in a single write.
package deck

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/xid"

	"deckgen/internal/logging"
	"deckgen/pptx"
)

// Document properties.
const (
	Title   = "Building Leaders from the Ground Up"
	Author  = "Bingjun Li"
	Subject = "Monmouth University Scholarship Week 2026"
)

type builder struct {
	name  string
	build func(pg *page)
}

var builders = []builder{
	{"Title", buildTitle},
	{"Hook", buildHook},
	{"Who Am I", buildWhoAmI},
	{"Mission", buildMission},
	{"What I Built", buildWhatIBuilt},
	{"Timeline", buildTimeline},
	{"Workshop 1", buildWorkshopOne},
	{"Evolution", buildEvolution},
	{"Workshop 2", buildWorkshopTwo},
	{"Feedback", buildFeedback},
	{"Challenges", buildChallenges},
	{"Breakthrough", buildBreakthrough},
	{"Impact", buildImpact},
	{"What's Next", buildWhatsNext},
	{"Lessons", buildLessons},
	{"Thank You", buildThankYou},
	{"Closing", buildClosing},
}

// SlideCount is the number of slides in the deck.
func SlideCount() int { return len(builders) }

// Options controls one build.
type Options struct {
	Assets Assets
	// Output is the .pptx path written by Generate.
	Output string
	// BuildTime stamps the created and modified properties.
	BuildTime time.Time
}

// Report summarises a build.
type Report struct {
	Output   string
	Slides   int
	Pictures int
	// Missing lists asset paths that were absent and skipped.
	Missing []string
}

// Summary is the two-line message printed after a successful write.
func (r Report) Summary() string {
	return fmt.Sprintf("✅ Saved %s\n   %d slides generated", r.Output, r.Slides)
}

// Build runs every slide builder against a fresh widescreen presentation.
// Absent assets are skipped; an asset that exists but cannot be decoded is
// an error.
func Build(opts Options) (*pptx.Presentation, Report, error) {
	pres := pptx.New()
	pres.GetLayout().SetLayout(pptx.LayoutWidescreen)

	props := pres.GetDocumentProperties()
	props.Title = Title
	props.Creator = Author
	props.LastModifiedBy = Author
	props.Subject = Subject
	props.SetTimestamps(opts.BuildTime)

	report := Report{Output: opts.Output}
	for i, b := range builders {
		slide := pres.CreateSlide()
		slide.SetName(b.name)
		pg := &page{
			slide:  slide,
			number: i + 1,
			total:  len(builders),
			assets: opts.Assets,
			report: &report,
		}
		b.build(pg)
		if pg.err != nil {
			return nil, report, pg.err
		}
		pg.footer()
		report.Slides++
	}
	return pres, report, nil
}

// Generate builds the deck and writes it to opts.Output. The report carries
// the absolute output path.
func Generate(ctx context.Context, opts Options) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	out, err := filepath.Abs(opts.Output)
	if err != nil {
		return Report{}, fmt.Errorf("resolve %s: %w", opts.Output, err)
	}
	opts.Output = out
	run := xid.New().String()
	start := time.Now()
	logging.Debug("building deck", "run", run, "output", opts.Output, "images", opts.Assets.ImagesDir)

	pres, report, err := Build(opts)
	if err != nil {
		return report, fmt.Errorf("build deck: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}
	if err := pres.Save(opts.Output); err != nil {
		return report, fmt.Errorf("save %s: %w", opts.Output, err)
	}

	logging.Debug("deck written",
		"run", run,
		"output", opts.Output,
		"slides", report.Slides,
		"pictures", report.Pictures,
		"missing", len(report.Missing),
		"took", time.Since(start),
	)
	return report, nil
}
