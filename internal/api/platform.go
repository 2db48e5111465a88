package api

import (
	"context"

	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/domain"
)

// ListWhatsAppConnections lists the provisioned WhatsApp numbers and
// their connection health.
func (c *Client) ListWhatsAppConnections(ctx context.Context) ([]domain.WhatsAppConnection, error) {
	var conns []domain.WhatsAppConnection
	if err := c.do(ctx, consts.MethodGet, endpointWhatsAppConnections, nil, &conns); err != nil {
		return nil, err
	}
	return conns, nil
}

// ListAgencies lists agencies visible to the current session.
func (c *Client) ListAgencies(ctx context.Context) ([]domain.Agency, error) {
	var agencies []domain.Agency
	if err := c.do(ctx, consts.MethodGet, endpointAgencies, nil, &agencies); err != nil {
		return nil, err
	}
	return agencies, nil
}

// GenerateReport asks the backend to build a report and returns its
// handle. Generation is asynchronous server-side; poll the returned
// report's status out of band.
func (c *Client) GenerateReport(ctx context.Context, req domain.ReportRequest) (*domain.Report, error) {
	var report domain.Report
	if err := c.do(ctx, consts.MethodPost, endpointReportsGenerate, req, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
