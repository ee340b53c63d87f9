package aws

import (
	"github.com/aws/aws-sdk-go-v2/config"
)

// ResolvePaths fills empty locations with the SDK defaults (~/.aws/config, ~/.aws/credentials)
func ResolvePaths(configFile, credentialsFile string) Paths {
	if configFile == "" {
		configFile = config.DefaultSharedConfigFilename()
	}
	if credentialsFile == "" {
		credentialsFile = config.DefaultSharedCredentialsFilename()
	}
	return Paths{
		ConfigFile:      configFile,
		CredentialsFile: credentialsFile,
	}
}
