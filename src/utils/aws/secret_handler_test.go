package aws_handler_test

import (
	"errors"
	"testing"

	aws_handler "assetserver/src/utils/aws"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSecretsManager struct {
	secretsmanageriface.SecretsManagerAPI
	values map[string]string
}

func (f *fakeSecretsManager) GetSecretValue(input *secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error) {
	value, ok := f.values[aws.StringValue(input.SecretId)]
	if !ok {
		return nil, errors.New("ResourceNotFoundException")
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: aws.String(value)}, nil
}

func TestGetSecretValue(t *testing.T) {
	sm := aws_handler.NewSecretManager(&fakeSecretsManager{values: map[string]string{
		"plain": "s3cret",
		"rds":   `{"username":"assets","password":"from-json"}`,
	}})

	value, err := sm.GetSecretValue("plain")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", value)

	value, err = sm.GetSecretValue("rds")
	require.NoError(t, err)
	assert.Equal(t, "from-json", value)

	_, err = sm.GetSecretValue("missing")
	assert.Error(t, err)
}
