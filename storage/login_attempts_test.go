package storage_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/alex-pricope/simple-polls/storage"
	"github.com/alex-pricope/simple-polls/storage/storagetest"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseLoginAttempts(t *testing.T, s storage.LoginAttemptStorage, username string) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	old := &storage.LoginAttempt{Username: username, Success: false, CreatedAt: now.Add(-10 * time.Minute)}
	require.NoError(t, s.Create(ctx, old))
	for i := 0; i < 3; i++ {
		a := &storage.LoginAttempt{Username: username, Success: false, CreatedAt: now.Add(-time.Duration(i) * time.Minute)}
		require.NoError(t, s.Create(ctx, a))
	}
	require.NoError(t, s.Create(ctx, &storage.LoginAttempt{Username: username + "-other", Success: false, CreatedAt: now}))

	count, err := s.CountFailedSince(ctx, username, now.Add(-5*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 3, count, "only failures inside the window count")

	require.NoError(t, s.Create(ctx, &storage.LoginAttempt{Username: username, Success: true, CreatedAt: now}))
	require.NoError(t, s.DeleteFailed(ctx, username))

	count, err = s.CountFailedSince(ctx, username, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = s.CountFailedSince(ctx, username+"-other", now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, count, "other users keep their history")
}

func TestGormLoginAttempts(t *testing.T) {
	db := storagetest.NewDatabase(t)
	exerciseLoginAttempts(t, &storage.GormLoginAttemptStorage{DB: db}, "alice")
}

//nolint:staticcheck
func TestDynamoLoginAttempts(t *testing.T) {
	endpoint := os.Getenv("LOCALSTACK_ENDPOINT")
	if endpoint == "" {
		t.Skip("LOCALSTACK_ENDPOINT not set")
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion("us-east-1"),
		config.WithEndpointResolverWithOptions(
			aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				return aws.Endpoint{URL: endpoint, HostnameImmutable: true}, nil
			}),
		),
	)
	require.NoError(t, err, "failed to load AWS config")

	client := dynamodb.NewFromConfig(cfg)
	table := "LoginAttemptsTest"
	_, err = client.CreateTable(context.TODO(), &dynamodb.CreateTableInput{
		TableName: aws.String(table),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("PK"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("SK"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("PK"), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String("SK"), KeyType: types.KeyTypeRange},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	require.NoError(t, err, "failed to create table")
	t.Cleanup(func() {
		_, _ = client.DeleteTable(context.TODO(), &dynamodb.DeleteTableInput{TableName: aws.String(table)})
	})

	exerciseLoginAttempts(t, &storage.DynamoLoginAttemptStorage{Client: client, TableName: table}, "alice")
}
