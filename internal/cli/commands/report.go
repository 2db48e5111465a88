package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/cli/loader"
	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/cli/ui"
	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/domain"
)

var (
	reportFile      string
	reportType      string
	reportCompanyID string
	reportStart     string
	reportEnd       string
	reportFormat    string
)

// reportCmd is the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "generate a platform report",
	Long: `Request a report from the API server.

The report definition comes either from flags or from a YAML file. The
server generates the report asynchronously and returns a handle with a
download URL once ready.`,
	Example: `  # Generate a conversations report for a company
  $ wactl report --type conversations --company 8a2f... --format csv

  # Generate a report from a YAML definition
  $ wactl report -f report.yaml`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportFile, "file", "f", "", "YAML report definition")
	reportCmd.Flags().StringVar(&reportType, "type", "", "Report type (conversations, performance, billing)")
	reportCmd.Flags().StringVar(&reportCompanyID, "company", "", "Scope the report to one company")
	reportCmd.Flags().StringVar(&reportStart, "start", "", "Start date (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportEnd, "end", "", "End date (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportFormat, "format", "pdf", "Output format (pdf, csv, xlsx)")
	reportCmd.SilenceUsage = true
}

func runReport(cmd *cobra.Command, args []string) error {
	req, err := buildReportRequest()
	if err != nil {
		ui.PrintError("%v", err)
		return fmt.Errorf("invalid report definition")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	apiClient, _, err := authedClient(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.Timeout)
	defer cancel()

	ui.PrintInfo("Requesting %s report...", req.Type)

	report, err := apiClient.GenerateReport(ctx, *req)
	if err != nil {
		return reportAPIError("generate report", err)
	}

	content := fmt.Sprintf(`Report ID:  %s
Type:       %s
Status:     %s`,
		report.ID,
		report.Type,
		report.Status,
	)
	if report.DownloadURL != "" {
		content += fmt.Sprintf("\nDownload:   %s", report.DownloadURL)
	}

	ui.PrintSuccessBox("✓ Report Requested", content)
	return nil
}

func buildReportRequest() (*domain.ReportRequest, error) {
	if reportFile != "" {
		file, err := loader.LoadReportFile(reportFile)
		if err != nil {
			return nil, err
		}
		return file.ToReportRequest()
	}

	if reportType == "" {
		return nil, fmt.Errorf("either --file or --type is required")
	}
	file := &loader.ReportFile{
		Kind: "Report",
		Spec: loader.ReportSpec{
			Type:      reportType,
			CompanyID: reportCompanyID,
			StartDate: reportStart,
			EndDate:   reportEnd,
			Format:    reportFormat,
		},
	}
	return file.ToReportRequest()
}
