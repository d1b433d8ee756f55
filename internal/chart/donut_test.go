package chart

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"holland-test/internal/domain"
)

func sampleDistribution() domain.Distribution {
	return domain.Distribution{
		Total: 29,
		Slices: []domain.Slice{
			{Code: domain.TraitRealistic, Name: "Realistic", Score: 10, Percentage: 100 * 10.0 / 29},
			{Code: domain.TraitInvestigative, Name: "Investigative", Score: 3, Percentage: 100 * 3.0 / 29},
			{Code: domain.TraitArtistic, Name: "Artistic", Score: 5, Percentage: 100 * 5.0 / 29},
			{Code: domain.TraitSocial, Name: "Social", Score: 8, Percentage: 100 * 8.0 / 29},
			{Code: domain.TraitEnterprising, Name: "Enterprising", Score: 2, Percentage: 100 * 2.0 / 29},
			{Code: domain.TraitConventional, Name: "Conventional", Score: 1, Percentage: 100 * 1.0 / 29},
		},
	}
}

func TestSliceLabel(t *testing.T) {
	got := SliceLabel(sampleDistribution().Slices[0])
	if got != "Realistic 34.5%" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{"svg": FormatSVG, "PNG": FormatPNG, "out/chart.svg": FormatSVG, "chart.png": FormatPNG}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("gif"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if FormatPNG.ContentType() != "image/png" || FormatSVG.ContentType() != "image/svg+xml" {
		t.Fatalf("unexpected content types")
	}
}

func TestRenderDonutSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderDonut(&buf, sampleDistribution(), FormatSVG); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<svg") {
		t.Fatalf("expected svg output")
	}
	if !strings.Contains(out, "Realistic 34.5%") {
		t.Fatalf("expected slice label in svg")
	}
}

func TestRenderDonutPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderDonut(&buf, sampleDistribution(), FormatPNG); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Fatalf("expected png signature")
	}
}

func TestRenderDonutRejectsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderDonut(&buf, domain.Distribution{}, FormatSVG); err == nil {
		t.Fatalf("expected error for empty distribution")
	}
	if err := RenderDonut(&buf, sampleDistribution(), Format("gif")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestTextRing(t *testing.T) {
	out := TextRing(sampleDistribution(), 20)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("expected title plus 6 rows, got %d:\n%s", len(lines), out)
	}
	if lines[0] != Title {
		t.Fatalf("unexpected title line %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Realistic     #######.............  34.5%") {
		t.Fatalf("unexpected realistic row %q", lines[1])
	}
}
