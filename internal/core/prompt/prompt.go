// Package prompt builds the natural-language prompts sent to the
// completion endpoint and parses the structured replies.
package prompt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/example/testdeck/internal/core/report"
)

// GenerationSystem is the system instruction for test case generation.
const GenerationSystem = `You are an expert QA engineer. You design precise, executable manual test cases from user stories. You respond with valid JSON only, no prose before or after.`

// ReportSystem is the system instruction for report narration.
const ReportSystem = `You are a QA lead writing an execution report for stakeholders. Write clear, structured prose. Do not invent figures that are not in the data you are given.`

// coverage categories always requested from the model
var baseCategories = []string{
	"positive",
	"negative",
	"edge",
	"boundary",
	"acceptance-criteria validation",
}

// additional categories requested only when images are attached
var imageCategories = []string{
	"UI validation",
	"interaction tests",
}

// StoryInput is the story material embedded into the generation prompt.
// Title is required; everything else is optional.
type StoryInput struct {
	Title              string
	Description        string
	AcceptanceCriteria string
	Priority           string
}

// GeneratedCase is the exact per-case object shape the model is asked to
// produce.
type GeneratedCase struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Type           string   `json:"type"`
	Priority       string   `json:"priority"`
	Steps          []string `json:"steps"`
	ExpectedResult string   `json:"expectedResult"`
	TestData       string   `json:"testData"`
	Category       string   `json:"category"`
}

// BuildGeneration assembles the user message for test case generation.
// customInstructions is appended verbatim when non-empty. hasImages adds
// the visual-context block and the image-specific coverage categories.
func BuildGeneration(s StoryInput, customInstructions string, hasImages bool) string {
	var b strings.Builder

	b.WriteString("Generate test cases for the following user story.\n\n")
	fmt.Fprintf(&b, "Title: %s\n", s.Title)
	if s.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", s.Description)
	}
	if s.AcceptanceCriteria != "" {
		fmt.Fprintf(&b, "Acceptance criteria: %s\n", s.AcceptanceCriteria)
	}
	if s.Priority != "" {
		fmt.Fprintf(&b, "Priority: %s\n", s.Priority)
	}

	categories := baseCategories
	if hasImages {
		b.WriteString("\nScreenshots of the feature are attached. Incorporate the visual context: verify layout, labels, states and flows visible in the images.\n")
		categories = append(append([]string{}, baseCategories...), imageCategories...)
	}

	b.WriteString("\nCover these categories: ")
	b.WriteString(strings.Join(categories, ", "))
	b.WriteString(".\n")

	if customInstructions != "" {
		b.WriteString("\nAdditional instructions:\n")
		b.WriteString(customInstructions)
		b.WriteString("\n")
	}

	b.WriteString(`
Respond with a JSON array of 8-12 test case objects. Each object must have exactly these fields:
{
  "id": "string",
  "title": "string",
  "description": "string",
  "type": "string",
  "priority": "low|medium|high",
  "steps": ["string", ...],
  "expectedResult": "string",
  "testData": "string",
  "category": "string"
}`)

	return b.String()
}

// BuildReport assembles the user message for report narration. Every
// case is enumerated by title, status and priority ahead of the
// aggregate figures; defect metrics are included when present.
func BuildReport(projectName string, cases []report.CaseSummary, stats report.Stats, defects *report.DefectMetrics) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write a test execution report for project %q.\n\nTest cases:\n", projectName)
	for _, c := range cases {
		fmt.Fprintf(&b, "- %s [status: %s, priority: %s]\n", c.Title, c.Status, c.Priority)
	}

	fmt.Fprintf(&b, "\nTotals: %d cases, %d passed, %d failed, %d blocked, %d not run. Pass rate: %.1f%%.\n",
		stats.Total, stats.Passed, stats.Failed, stats.Blocked, stats.NotRun, stats.PassRate)

	if defects != nil {
		fmt.Fprintf(&b, "Defects: %d open, %d resolved.\n", defects.Open, defects.Resolved)
	}

	b.WriteString("\nProduce a long-form narrative covering overall quality, risk areas, and recommended next steps.")

	return b.String()
}

// ParseCases parses a model reply strictly as a JSON array of generated
// cases. A surrounding markdown code fence is tolerated; anything else
// that fails to parse is a terminal error carrying the raw text for
// diagnostics. There is no partial recovery or repair.
func ParseCases(raw string) ([]GeneratedCase, error) {
	cleaned := stripFences([]byte(raw))

	var cases []GeneratedCase
	if err := json.Unmarshal(cleaned, &cases); err != nil {
		return nil, fmt.Errorf("response is not a JSON array of test cases: %w\nraw response:\n%s", err, raw)
	}
	return cases, nil
}

// stripFences removes a markdown code fence wrapper from a model reply.
// Handles ```json\n...\n```, ```\n...\n```, and bare payloads.
func stripFences(data []byte) []byte {
	s := bytes.TrimSpace(data)
	if !bytes.HasPrefix(s, []byte("```")) {
		return s
	}

	if idx := bytes.IndexByte(s, '\n'); idx >= 0 {
		s = s[idx+1:]
	}
	if bytes.HasSuffix(s, []byte("```")) {
		s = s[:len(s)-3]
	}
	return bytes.TrimSpace(s)
}
