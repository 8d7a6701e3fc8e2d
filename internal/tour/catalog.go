package tour

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultCatalog returns the built-in dashboard walkthrough.
func DefaultCatalog() []Step {
	return []Step{
		{
			ID:          "welcome",
			Title:       "Welcome to hashboard",
			Description: "Your AI-powered Digital Twin Project Management platform. Let's take a quick tour of the key features.",
			Target:      "header",
			Position:    PositionBottom,
		},
		{
			ID:          "project-timer",
			Title:       "Project Timeline",
			Description: "Keep track of your project deadlines with the countdown timer. Red badges indicate urgent deadlines.",
			Target:      "project-timer",
			Position:    PositionBottom,
		},
		{
			ID:          "agents-status",
			Title:       "AI Agents Status",
			Description: "Monitor your intelligent agents. These assistants work continuously to optimize your project.",
			Target:      "agents-status",
			Position:    PositionBottom,
		},
		{
			ID:          "digital-twin",
			Title:       "Digital Twin",
			Description: "This is your project's digital twin: a live view of task dependencies, progress, and bottlenecks.",
			Target:      "digital-twin",
			Position:    PositionTop,
			Action:      ActionClick,
		},
		{
			ID:          "agent-cards",
			Title:       "Agent Management",
			Description: "Each agent specializes in different aspects: Dependencies, Risk Assessment, Resource Allocation, and Team Communication.",
			Target:      "agent-cards",
			Position:    PositionTop,
		},
		{
			ID:          "simulation-controls",
			Title:       "What-If Simulation",
			Description: "Run quick actions to predict project outcomes. Reports, risk scans and timeline optimization run in the background.",
			Target:      "quick-actions",
			Position:    PositionTop,
		},
		{
			ID:          "alerts-panel",
			Title:       "Smart Alerts",
			Description: "Alerts notify you of potential issues before they become problems. Stay ahead of risks automatically.",
			Target:      "notifications",
			Position:    PositionLeft,
		},
	}
}

type catalogFile struct {
	Steps []Step `yaml:"steps"`
}

// ParseCatalog decodes a YAML catalog document of the form
//
//	steps:
//	  - id: welcome
//	    title: Welcome
//	    ...
//
// and validates it.
func ParseCatalog(r io.Reader) ([]Step, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f catalogFile
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, ErrEmptyCatalog
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := validateCatalog(f.Steps); err != nil {
		return nil, err
	}
	return f.Steps, nil
}

// LoadCatalog reads a YAML catalog from path.
func LoadCatalog(path string) ([]Step, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(bytes.NewReader(data))
}

// MarshalCatalog encodes steps in the format ParseCatalog accepts.
func MarshalCatalog(steps []Step) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(catalogFile{Steps: steps}); err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	return buf.Bytes(), nil
}
