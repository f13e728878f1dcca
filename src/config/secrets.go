package config

import (
	"fmt"

	aws_handler "assetserver/src/utils/aws"
)

type SecretFetcher interface {
	GetSecretValue(secretID string) (string, error)
}

// ResolveSecrets fills the database password from the secret store when a
// secret name is configured and no literal password was given.
func ResolveSecrets(cfg *Config, fetcher SecretFetcher) error {
	sql := &cfg.Databases.SQL
	if sql.PasswordSecret == "" || sql.Password != "" {
		return nil
	}
	password, err := fetcher.GetSecretValue(sql.PasswordSecret)
	if err != nil {
		return fmt.Errorf("failed to resolve database password: %w", err)
	}
	sql.Password = password
	return nil
}

// ResolveSecretsFromAWS is ResolveSecrets backed by AWS Secrets Manager.
func ResolveSecretsFromAWS(cfg *Config) error {
	if cfg.Databases.SQL.PasswordSecret == "" || cfg.Databases.SQL.Password != "" {
		return nil
	}
	handler, err := aws_handler.NewAWSHandler(cfg.AWS.Region)
	if err != nil {
		return err
	}
	return ResolveSecrets(cfg, handler.SecretManager)
}
