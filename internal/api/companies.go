package api

import (
	"context"
	"fmt"

	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/domain"
)

// ListCompanies lists companies visible to the current session.
func (c *Client) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	var companies []domain.Company
	if err := c.do(ctx, consts.MethodGet, endpointCompanies, nil, &companies); err != nil {
		return nil, err
	}
	return companies, nil
}

// GetCompany fetches a single company by id.
func (c *Client) GetCompany(ctx context.Context, id string) (*domain.Company, error) {
	var company domain.Company
	if err := c.do(ctx, consts.MethodGet, fmt.Sprintf(endpointCompaniesByID, id), nil, &company); err != nil {
		return nil, err
	}
	return &company, nil
}

// CreateCompany creates a company.
func (c *Client) CreateCompany(ctx context.Context, req domain.CreateCompanyRequest) (*domain.Company, error) {
	var company domain.Company
	if err := c.do(ctx, consts.MethodPost, endpointCompanies, req, &company); err != nil {
		return nil, err
	}
	return &company, nil
}

// UpdateCompany replaces mutable fields of a company.
func (c *Client) UpdateCompany(ctx context.Context, id string, req domain.CreateCompanyRequest) (*domain.Company, error) {
	var company domain.Company
	if err := c.do(ctx, consts.MethodPut, fmt.Sprintf(endpointCompaniesByID, id), req, &company); err != nil {
		return nil, err
	}
	return &company, nil
}

// DeleteCompany removes a company.
func (c *Client) DeleteCompany(ctx context.Context, id string) error {
	return c.do(ctx, consts.MethodDelete, fmt.Sprintf(endpointCompaniesByID, id), nil, nil)
}
