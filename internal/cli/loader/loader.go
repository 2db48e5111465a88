package loader

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/domain"
)

// ReportFile is a report definition loaded from a YAML file.
type ReportFile struct {
	// Kind must be "Report".
	Kind string `yaml:"kind"`
	// Spec contains the report specification
	Spec ReportSpec `yaml:"spec"`
}

// ReportSpec mirrors the fields the report endpoint accepts.
type ReportSpec struct {
	Type      string `yaml:"type"`
	CompanyID string `yaml:"companyId,omitempty"`
	StartDate string `yaml:"startDate,omitempty"`
	EndDate   string `yaml:"endDate,omitempty"`
	Format    string `yaml:"format,omitempty"`
}

var validReportTypes = map[string]bool{
	"conversations": true,
	"performance":   true,
	"billing":       true,
}

// LoadReportFile loads a report definition from a YAML file.
func LoadReportFile(filepath string) (*ReportFile, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var report ReportFile
	if err := yaml.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	if report.Kind == "" {
		return nil, fmt.Errorf("'kind' field is required")
	}
	if report.Kind != "Report" {
		return nil, fmt.Errorf("invalid kind '%s', must be 'Report'", report.Kind)
	}

	return &report, nil
}

// ToReportRequest converts the loaded file to an API request.
func (r *ReportFile) ToReportRequest() (*domain.ReportRequest, error) {
	if r.Spec.Type == "" {
		return nil, fmt.Errorf("spec.type is required")
	}
	if !validReportTypes[r.Spec.Type] {
		return nil, fmt.Errorf("invalid report type '%s', must be 'conversations', 'performance' or 'billing'", r.Spec.Type)
	}

	format := r.Spec.Format
	if format == "" {
		format = "pdf"
	}

	return &domain.ReportRequest{
		Type:      r.Spec.Type,
		CompanyID: r.Spec.CompanyID,
		StartDate: r.Spec.StartDate,
		EndDate:   r.Spec.EndDate,
		Format:    format,
	}, nil
}
