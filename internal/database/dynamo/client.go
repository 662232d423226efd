package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Legacy key-value store layout. The web application no longer reads these
// tables; they exist only for the provisioning and migration scripts.
const (
	UsersTable        = "Users"
	PhotoGalleryTable = "PhotoGallery"

	UsersTableKey        = "Username"
	PhotoGalleryTableKey = "PhotoID"
)

// Client wraps the DynamoDB connection used by the out-of-band scripts.
type Client struct {
	db *dynamodb.Client
}

// NewClient builds a DynamoDB client from static credentials.
func NewClient(ctx context.Context, accessKey, secretKey, region string) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &Client{db: dynamodb.NewFromConfig(awsCfg)}, nil
}

// CreateTable creates a table with a single string hash key and the 5/5
// provisioned throughput the legacy tables were created with. The call is
// idempotent only insofar as DynamoDB rejects duplicate table names.
func (c *Client) CreateTable(ctx context.Context, name, hashKey string) error {
	_, err := c.db.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(name),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(hashKey), KeyType: types.KeyTypeHash},
		},
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(hashKey), AttributeType: types.ScalarAttributeTypeS},
		},
		ProvisionedThroughput: &types.ProvisionedThroughput{
			ReadCapacityUnits:  aws.Int64(5),
			WriteCapacityUnits: aws.Int64(5),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create table %s: %w", name, err)
	}
	return nil
}

// DeleteTable deletes the table.
func (c *Client) DeleteTable(ctx context.Context, name string) error {
	_, err := c.db.DeleteTable(ctx, &dynamodb.DeleteTableInput{TableName: aws.String(name)})
	if err != nil {
		return fmt.Errorf("failed to delete table %s: %w", name, err)
	}
	return nil
}

// WaitUntilExists blocks until the table is ACTIVE.
func (c *Client) WaitUntilExists(ctx context.Context, name string, timeout time.Duration) error {
	waiter := dynamodb.NewTableExistsWaiter(c.db)
	return waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(name)}, timeout)
}

// WaitUntilNotExists blocks until the table is gone.
func (c *Client) WaitUntilNotExists(ctx context.Context, name string, timeout time.Duration) error {
	waiter := dynamodb.NewTableNotExistsWaiter(c.db)
	return waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(name)}, timeout)
}

// ScanAll reads every item of the table in a single unpaginated scan and
// returns them as generic documents ready for a document-store insert.
func (c *Client) ScanAll(ctx context.Context, name string) ([]map[string]interface{}, error) {
	out, err := c.db.Scan(ctx, &dynamodb.ScanInput{TableName: aws.String(name)})
	if err != nil {
		return nil, fmt.Errorf("failed to scan table %s: %w", name, err)
	}

	items := []map[string]interface{}{}
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal items of table %s: %w", name, err)
	}
	return items, nil
}
