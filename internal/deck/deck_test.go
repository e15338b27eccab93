package deck

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deckgen/pptx"
)

var buildTime = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 0x2A, G: 0x9D, B: 0x8F, A: 0xFF})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

// fullAssets writes every image the deck looks for into a temp directory.
func fullAssets(t *testing.T) Assets {
	t.Helper()
	dir := t.TempDir()
	a := Assets{ImagesDir: filepath.Join(dir, "slide-images"), Logo: filepath.Join(dir, "logo.png")}
	require.NoError(t, os.MkdirAll(a.ImagesDir, 0o755))
	writePNG(t, a.Logo, 40, 80)
	for _, name := range imageFiles {
		writePNG(t, a.Image(name), 64, 36)
	}
	return a
}

func missingAssets(t *testing.T) Assets {
	dir := t.TempDir()
	return Assets{ImagesDir: filepath.Join(dir, "nope"), Logo: filepath.Join(dir, "nope.png")}
}

func slideTexts(p *pptx.Presentation) []string {
	var out []string
	for _, s := range p.GetAllSlides() {
		out = append(out, s.ExtractText())
	}
	return out
}

func TestBuild_SlideCountAndFooters(t *testing.T) {
	pres, report, err := Build(Options{Assets: missingAssets(t), BuildTime: buildTime})
	require.NoError(t, err)

	require.Equal(t, 17, pres.GetSlideCount())
	assert.Equal(t, 17, report.Slides)
	assert.Equal(t, SlideCount(), report.Slides)

	for i, slide := range pres.GetAllSlides() {
		shapes := slide.GetShapes()
		require.NotEmpty(t, shapes)
		last, ok := shapes[len(shapes)-1].(*pptx.RichTextShape)
		require.True(t, ok, "slide %d: footer is not a text box", i+1)
		assert.Equal(t, fmt.Sprintf("%d / 17", i+1), last.GetText())
		assert.Equal(t, in(12.3), last.GetOffsetX())
		assert.Equal(t, pptx.HorizontalRight, last.GetParagraphs()[0].GetAlignment())
	}
}

func TestBuild_MissingAssetsDirectory(t *testing.T) {
	a := missingAssets(t)
	pres, report, err := Build(Options{Assets: a, BuildTime: buildTime})
	require.NoError(t, err)

	assert.Equal(t, 17, pres.GetSlideCount())
	assert.Zero(t, report.Pictures)
	assert.ElementsMatch(t, a.Files(), report.Missing)
	for _, s := range pres.GetAllSlides() {
		assert.Empty(t, s.GetPictures())
	}
}

func TestBuild_ImagesPathIsAFile(t *testing.T) {
	dir := t.TempDir()
	a := Assets{ImagesDir: filepath.Join(dir, "slide-images"), Logo: filepath.Join(dir, "logo.png")}
	writePNG(t, a.Logo, 40, 80)
	require.NoError(t, os.WriteFile(a.ImagesDir, []byte("not a directory"), 0o644))

	pres, report, err := Build(Options{Assets: a, BuildTime: buildTime})
	require.NoError(t, err)

	assert.Equal(t, 17, pres.GetSlideCount())
	assert.Equal(t, 1, report.Pictures)
	assert.ElementsMatch(t, a.Files()[1:], report.Missing)
}

func TestBuild_FullAssets(t *testing.T) {
	pres, report, err := Build(Options{Assets: fullAssets(t), BuildTime: buildTime})
	require.NoError(t, err)

	assert.Equal(t, len(imageFiles)+1, report.Pictures)
	assert.Empty(t, report.Missing)

	first, err := pres.GetSlide(0)
	require.NoError(t, err)
	text := first.ExtractText()
	assert.Contains(t, text, "Bingjun Li")
	assert.Contains(t, text, "Building")
	require.Len(t, first.GetPictures(), 1)
}

func TestBuild_PartialAssets(t *testing.T) {
	a := fullAssets(t)
	full, _, err := Build(Options{Assets: a, BuildTime: buildTime})
	require.NoError(t, err)

	require.NoError(t, os.Remove(a.Image("s2-hook.png")))
	partial, report, err := Build(Options{Assets: a, BuildTime: buildTime})
	require.NoError(t, err)

	require.Equal(t, 17, partial.GetSlideCount())
	assert.Equal(t, []string{a.Image("s2-hook.png")}, report.Missing)

	for i := range full.GetAllSlides() {
		want, _ := full.GetSlide(i)
		got, _ := partial.GetSlide(i)
		wantPics := len(want.GetPictures())
		if i == 1 {
			wantPics--
		}
		assert.Len(t, got.GetPictures(), wantPics, "slide %d", i+1)
		assert.Equal(t, want.ExtractText(), got.ExtractText(), "slide %d", i+1)
	}
}

func TestBuild_UndecodableAsset(t *testing.T) {
	a := fullAssets(t)
	require.NoError(t, os.WriteFile(a.Image("s6-growth.png"), []byte("not a png"), 0o644))

	_, _, err := Build(Options{Assets: a, BuildTime: buildTime})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slide 6")
}

func TestBuild_PictureKeepsAspectRatio(t *testing.T) {
	pres, _, err := Build(Options{Assets: fullAssets(t), BuildTime: buildTime})
	require.NoError(t, err)

	// The logo is 40x80 px and placed by height only.
	first, _ := pres.GetSlide(0)
	logo := first.GetPictures()[0]
	assert.Equal(t, in(3.8), logo.GetHeight())
	assert.InDelta(t, float64(in(3.8))/2, float64(logo.GetWidth()), 1)

	// Card images are 64x36 px and placed by width only.
	fifth, _ := pres.GetSlide(4)
	pic := fifth.GetPictures()[0]
	assert.Equal(t, in(2.7), pic.GetWidth())
	assert.InDelta(t, float64(in(2.7))*36/64, float64(pic.GetHeight()), 1)
}

func TestBuild_Properties(t *testing.T) {
	pres, _, err := Build(Options{Assets: missingAssets(t), BuildTime: buildTime})
	require.NoError(t, err)

	layout := pres.GetLayout()
	assert.Equal(t, int64(12191695), layout.CX)
	assert.Equal(t, int64(6858000), layout.CY)
	assert.Equal(t, SlideWidth, layout.CX)

	props := pres.GetDocumentProperties()
	assert.Equal(t, Title, props.Title)
	assert.Equal(t, Author, props.Creator)
	assert.Equal(t, buildTime, props.Created)
	assert.Equal(t, buildTime, props.Modified)
}

func TestGenerate_RoundTrip(t *testing.T) {
	a := fullAssets(t)
	out := filepath.Join(t.TempDir(), "out", "presentation.pptx")

	report, err := Generate(context.Background(), Options{Assets: a, Output: out, BuildTime: buildTime})
	require.NoError(t, err)
	assert.Equal(t, out, report.Output)

	built, _, err := Build(Options{Assets: a, BuildTime: buildTime})
	require.NoError(t, err)

	read, err := pptx.Open(out)
	require.NoError(t, err)
	require.Equal(t, 17, read.GetSlideCount())
	assert.Equal(t, int64(12191695), read.GetLayout().CX)
	assert.Equal(t, int64(6858000), read.GetLayout().CY)

	if diff := cmp.Diff(slideTexts(built), slideTexts(read)); diff != "" {
		t.Errorf("slide text mismatch (-built +read):\n%s", diff)
	}
	for i, s := range read.GetAllSlides() {
		want, _ := built.GetSlide(i)
		assert.Equal(t, want.GetName(), s.GetName())
		assert.Len(t, s.GetShapes(), len(want.GetShapes()), "slide %d", i+1)
		assert.Equal(t, *want.GetBackground(), *s.GetBackground(), "slide %d", i+1)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a := fullAssets(t)
	dir := t.TempDir()
	first := filepath.Join(dir, "a.pptx")
	second := filepath.Join(dir, "b.pptx")

	_, err := Generate(context.Background(), Options{Assets: a, Output: first, BuildTime: buildTime})
	require.NoError(t, err)
	_, err = Generate(context.Background(), Options{Assets: a, Output: second, BuildTime: buildTime})
	require.NoError(t, err)

	b1, err := os.ReadFile(first)
	require.NoError(t, err)
	b2, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, b1, b2)
}

func TestGenerate_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := filepath.Join(t.TempDir(), "presentation.pptx")
	_, err := Generate(ctx, Options{Assets: missingAssets(t), Output: out, BuildTime: buildTime})
	require.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, out)
}

func TestGenerate_UnwritableOutput(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := Generate(context.Background(), Options{
		Assets:    missingAssets(t),
		Output:    filepath.Join(blocker, "presentation.pptx"),
		BuildTime: buildTime,
	})
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "save "))
}

func TestGenerate_ReportsAbsoluteOutput(t *testing.T) {
	t.Chdir(t.TempDir())
	wd, err := os.Getwd()
	require.NoError(t, err)

	report, err := Generate(context.Background(), Options{
		Assets:    missingAssets(t),
		Output:    "presentation.pptx",
		BuildTime: buildTime,
	})
	require.NoError(t, err)

	want := filepath.Join(wd, "presentation.pptx")
	assert.Equal(t, want, report.Output)
	assert.FileExists(t, want)
	assert.Contains(t, report.Summary(), "✅ Saved "+want+"\n")
}

func TestReportSummary(t *testing.T) {
	r := Report{Output: "/tmp/presentation.pptx", Slides: 17}
	assert.Equal(t, "✅ Saved /tmp/presentation.pptx\n   17 slides generated", r.Summary())
}

func TestQuarter(t *testing.T) {
	assert.Equal(t, pptx.NewColor("3A311A"), quarter(Gold))
	assert.Equal(t, pptx.NewColor("0A2723"), quarter(Teal))
}

func TestBuild_MissionTagsUseThemeFont(t *testing.T) {
	pres, _, err := Build(Options{Assets: missingAssets(t), BuildTime: buildTime})
	require.NoError(t, err)
	mission, err := pres.GetSlide(3)
	require.NoError(t, err)

	var tags int
	for _, sh := range mission.GetShapes() {
		as, ok := sh.(*pptx.AutoShape)
		if !ok {
			continue
		}
		for _, para := range as.GetParagraphs() {
			for _, r := range para.GetTextRuns() {
				switch r.GetText() {
				case "Transformational", "Democratic", "Adaptive", "Collaborative":
					tags++
					assert.Empty(t, r.GetFont().Name, r.GetText())
					assert.Equal(t, 15, r.GetFont().Size)
					assert.True(t, r.GetFont().Bold)
				}
			}
		}
	}
	assert.Equal(t, 4, tags)
}

func TestAddRunSplitsLines(t *testing.T) {
	p := pptx.NewParagraph()
	addRun(p, "Building\n", title(52, White).bold())
	addRun(p, "Leaders", title(52, Gold).bold())

	assert.Equal(t, "Building\nLeaders", p.GetText())
	runs := p.GetTextRuns()
	require.Len(t, runs, 2)
	for _, r := range runs {
		assert.Equal(t, FontTitle, r.GetFont().Name)
		assert.Equal(t, 52, r.GetFont().Size)
		assert.True(t, r.GetFont().Bold)
	}
	assert.Equal(t, Gold, runs[1].GetFont().Color)
}
