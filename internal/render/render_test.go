package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-radar/internal/scan"
)

func TestPrintScanResult_FullResponse(t *testing.T) {
	score := 83.5
	var buf bytes.Buffer
	NewPrinter(&buf).PrintScanResult(&scan.ScanResponse{
		ATSScore:        &score,
		SuggestedSkills: []string{"Go", "Kubernetes"},
		ImprovementAdvice: []scan.Advice{
			{Issue: "Missing metrics", Advice: "Quantify outcomes."},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "ATS Score: 83.5 / 100")
	assert.Contains(t, out, "- Go")
	assert.Contains(t, out, "- Kubernetes")
	assert.Contains(t, out, "Missing metrics")
	assert.Contains(t, out, "-> Quantify outcomes.")
}

func TestPrintScanResult_AbsentFields(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintScanResult(&scan.ScanResponse{})

	out := buf.String()
	assert.Contains(t, out, "ATS Score: n/a")
	assert.NotContains(t, out, "Suggested skills")
	assert.NotContains(t, out, "Improvement advice")
}

func TestPrintScanResult_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintScanResult(nil)
	assert.Empty(t, buf.String())
}

func TestPrintScanResult_TruncatesLongSkillList(t *testing.T) {
	skills := make([]string, 12)
	for i := range skills {
		skills[i] = "Skill"
	}
	var buf bytes.Buffer
	NewPrinter(&buf).PrintScanResult(&scan.ScanResponse{SuggestedSkills: skills})
	assert.Contains(t, buf.String(), "...and 4 more")
}

func TestPrintExtraction_WrapsText(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintExtraction(
		"https://www.linkedin.com/jobs/view/1",
		strings.Repeat("responsibilities and requirements ", 10),
	)

	out := buf.String()
	assert.Contains(t, out, "Extracted Job Description")
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
}

func TestPrintUpload(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintUpload("resume.pdf", 118)
	assert.Equal(t, "Resume: resume.pdf (118 KB)\n", buf.String())
}
