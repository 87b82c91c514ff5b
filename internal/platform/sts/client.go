// Package sts verifies AWS credentials against the Security Token Service.
package sts

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Identity is the principal that the credentials resolve to.
type Identity struct {
	Account string `json:"account"`
	ARN     string `json:"arn"`
	UserID  string `json:"userId"`
}

// Client wraps the STS client.
type Client struct {
	sts *sts.Client
}

// NewClient creates an STS client from a resolved AWS config.
func NewClient(cfg aws.Config) *Client {
	return &Client{sts: sts.NewFromConfig(cfg)}
}

// CallerIdentity calls sts:GetCallerIdentity. Any error means the
// credentials cannot authenticate.
func (c *Client) CallerIdentity(ctx context.Context) (*Identity, error) {
	out, err := c.sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, fmt.Errorf("GetCallerIdentity failed: %w", err)
	}
	return &Identity{
		Account: aws.ToString(out.Account),
		ARN:     aws.ToString(out.Arn),
		UserID:  aws.ToString(out.UserId),
	}, nil
}
