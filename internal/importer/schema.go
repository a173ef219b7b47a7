package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ActivityFile is the on-disk import format. The same field names are
// accepted in JSON and YAML.
type ActivityFile struct {
	Activities     []ActivityImport `json:"activities" yaml:"activities"`
	CustomStatuses []TaxonomyImport `json:"customStatuses,omitempty" yaml:"customStatuses,omitempty"`
	CustomRisks    []TaxonomyImport `json:"customRisks,omitempty" yaml:"customRisks,omitempty"`
}

// ActivityImport mirrors domain.Activity with dates kept as text so every
// malformed value can be reported instead of failing the decode.
type ActivityImport struct {
	Name              string   `json:"activityName" yaml:"activityName"`
	Discipline        string   `json:"discipline" yaml:"discipline"`
	Responsible       string   `json:"responsible" yaml:"responsible"`
	Priority          string   `json:"priority,omitempty" yaml:"priority,omitempty"`
	Notes             string   `json:"notes,omitempty" yaml:"notes,omitempty"`
	Dependencies      []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	RequiredResources []string `json:"requiredResources,omitempty" yaml:"requiredResources,omitempty"`
	DocumentLink      string   `json:"documentLink,omitempty" yaml:"documentLink,omitempty"`

	PlannedStart string `json:"plannedStartDate,omitempty" yaml:"plannedStartDate,omitempty"`
	PlannedEnd   string `json:"plannedEndDate,omitempty" yaml:"plannedEndDate,omitempty"`
	ActualStart  string `json:"actualStartDate,omitempty" yaml:"actualStartDate,omitempty"`
	ActualEnd    string `json:"actualEndDate,omitempty" yaml:"actualEndDate,omitempty"`
	LastUpdated  string `json:"lastUpdatedDate,omitempty" yaml:"lastUpdatedDate,omitempty"`

	PlannedStatus string `json:"plannedStatus,omitempty" yaml:"plannedStatus,omitempty"`
	ActualStatus  string `json:"actualStatus,omitempty" yaml:"actualStatus,omitempty"`

	PlannedValue *float64 `json:"plannedValue,omitempty" yaml:"plannedValue,omitempty"`
	ActualValue  *float64 `json:"actualValue,omitempty" yaml:"actualValue,omitempty"`
	ActualCost   *float64 `json:"actualCost,omitempty" yaml:"actualCost,omitempty"`

	CompletionPercent *float64 `json:"completionPercent,omitempty" yaml:"completionPercent,omitempty"`
	AssociatedRisk    string   `json:"associatedRisk,omitempty" yaml:"associatedRisk,omitempty"`
}

// TaxonomyImport is a custom status or risk declared by the file.
type TaxonomyImport struct {
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

// Load reads an activity file. Files ending in .yaml or .yml are decoded as
// YAML, everything else as JSON.
func Load(path string) (*ActivityFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, Format(path))
}

// Format returns "yaml" or "json" from the file extension.
func Format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

// Parse decodes data in the given format.
func Parse(data []byte, format string) (*ActivityFile, error) {
	var file ActivityFile
	switch format {
	case "yaml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parsing yaml import file: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parsing json import file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported import format %q", format)
	}
	return &file, nil
}
