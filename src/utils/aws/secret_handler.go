package aws_handler

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
)

type SecretManager struct {
	svc secretsmanageriface.SecretsManagerAPI
}

func NewSecretManager(svc secretsmanageriface.SecretsManagerAPI) *SecretManager {
	return &SecretManager{svc: svc}
}

// GetSecretValue returns the secret string. A secret stored as a JSON object
// (the RDS-managed layout) yields its "password" key.
func (s *SecretManager) GetSecretValue(secretId string) (string, error) {
	input := &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretId),
	}

	result, err := s.svc.GetSecretValue(input)
	if err != nil {
		return "", fmt.Errorf("failed to read secret %s: %w", secretId, err)
	}
	if result.SecretString == nil {
		return "", fmt.Errorf("secret %s has no string value", secretId)
	}

	value := *result.SecretString
	var structured struct {
		Password string `json:"password"`
	}
	if err := json.Unmarshal([]byte(value), &structured); err == nil && structured.Password != "" {
		return structured.Password, nil
	}
	return value, nil
}
