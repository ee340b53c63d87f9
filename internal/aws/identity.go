package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	pkgtypes "github.com/vietdv277/awsprof/pkg/types"
)

// CallerIdentity represents AWS caller identity information
type CallerIdentity struct {
	Account string
	Arn     string
	UserID  string
}

// CallerIdentityAPI is the part of the STS client used for the identity check
type CallerIdentityAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// NewSTSClient builds an STS client for a profile using the SDK's own shared config loading
func NewSTSClient(ctx context.Context, paths Paths, profile, region string) (*sts.Client, error) {
	var configOpts []func(*config.LoadOptions) error

	if profile != "" {
		configOpts = append(configOpts, config.WithSharedConfigProfile(profile))
	}
	if region != "" {
		configOpts = append(configOpts, config.WithRegion(region))
	}
	if paths.ConfigFile != "" {
		configOpts = append(configOpts, config.WithSharedConfigFiles([]string{paths.ConfigFile}))
	}
	if paths.CredentialsFile != "" {
		configOpts = append(configOpts, config.WithSharedCredentialsFiles([]string{paths.CredentialsFile}))
	}

	cfg, err := config.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	return sts.NewFromConfig(cfg), nil
}

// GetCallerIdentity asks STS who the profile's credentials belong to. Invalid profiles are
// refused before any request is made.
func GetCallerIdentity(ctx context.Context, client CallerIdentityAPI, profile pkgtypes.AWSProfile) (*CallerIdentity, error) {
	if !profile.IsValid {
		return nil, fmt.Errorf("%w: %s: %s", ErrInvalidProfile, profile.Name, profile.ErrorMessage)
	}

	output, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to get caller identity: %w", err)
	}

	return &CallerIdentity{
		Account: awssdk.ToString(output.Account),
		Arn:     awssdk.ToString(output.Arn),
		UserID:  awssdk.ToString(output.UserId),
	}, nil
}
