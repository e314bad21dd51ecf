// Package sheetsclient publishes the schedule grid to a Google Sheet so
// drivers without board access can read the week's plan.
package sheetsclient

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/marlowtransit/shiftboard/internal/config"
	"github.com/marlowtransit/shiftboard/pkg/utils"
)

// Client wraps the Google Sheets API client.
type Client struct {
	service *sheets.Service
	ctx     context.Context
}

// NewClient creates a Sheets client using OAuth credentials, performing the
// authorization flow if no usable token is cached for the environment.
func NewClient(ctx context.Context, oauthCfg *config.OAuthClientConfig, env string) (*Client, error) {
	oauthConfig, err := utils.GetOAuthConfig(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}

	token, err := utils.GetTokenWithFlow(ctx, oauthConfig, env)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth token: %w", err)
	}

	httpClient := oauthConfig.Client(ctx, token)

	service, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		service: service,
		ctx:     ctx,
	}, nil
}

// Service returns the underlying sheets service for direct API access.
func (c *Client) Service() *sheets.Service {
	return c.service
}
