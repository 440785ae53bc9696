package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/bitview/blobstore"
)

const (
	attrNamespace = "ns"
	attrName      = "name"
	attrData      = "data"

	// MaxItemSize is the DynamoDB item size limit. Attribute names and the
	// key values count against it too.
	MaxItemSize = 400 * 1024
)

// ErrItemTooLarge is returned by Put when the item would exceed MaxItemSize.
var ErrItemTooLarge = errors.New("dynamodb: item exceeds 400KB limit")

// Client is the interface for DynamoDB operations.
type Client interface {
	dynamodb.QueryAPIClient
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// Store implements blobstore.Store on a DynamoDB table.
type Store struct {
	client    Client
	tableName string
	namespace string
}

// New loads the default AWS configuration and creates a Store.
func New(ctx context.Context, tableName, namespace string, optFns ...func(*config.LoadOptions) error) (*Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("dynamodb: load aws config: %w", err)
	}
	return NewStore(dynamodb.NewFromConfig(cfg), tableName, namespace), nil
}

// NewStore creates a Store. namespace is the partition key value shared by
// every blob of this store.
func NewStore(client Client, tableName, namespace string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		namespace: namespace,
	}
}

func (s *Store) itemKey(name string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrNamespace: &types.AttributeValueMemberS{Value: s.namespace},
		attrName:      &types.AttributeValueMemberS{Value: name},
	}
}

func (s *Store) itemSize(name string, data []byte) int {
	return len(attrNamespace) + len(s.namespace) +
		len(attrName) + len(name) +
		len(attrData) + len(data)
}

// Put writes a blob as a single item.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	if name == "" {
		return blobstore.ErrInvalidName
	}
	if s.itemSize(name, data) > MaxItemSize {
		return fmt.Errorf("%w: %s is %d bytes", ErrItemTooLarge, name, len(data))
	}

	item := s.itemKey(name)
	item[attrData] = &types.AttributeValueMemberB{Value: data}

	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("dynamodb: put %s: %w", name, err)
	}
	return nil
}

// Get reads a blob with a strongly consistent read.
func (s *Store) Get(ctx context.Context, name string) ([]byte, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.tableName),
		Key:            s.itemKey(name),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb: get %s: %w", name, err)
	}
	if out.Item == nil {
		return nil, blobstore.ErrNotFound
	}

	attr, ok := out.Item[attrData].(*types.AttributeValueMemberB)
	if !ok {
		return nil, fmt.Errorf("dynamodb: get %s: missing %q attribute", name, attrData)
	}
	data := make([]byte, len(attr.Value))
	copy(data, attr.Value)
	return data, nil
}

// Delete removes a blob. DeleteItem on a missing key succeeds.
func (s *Store) Delete(ctx context.Context, name string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key:       s.itemKey(name),
	})
	if err != nil {
		return fmt.Errorf("dynamodb: delete %s: %w", name, err)
	}
	return nil
}

// List queries the namespace partition for names beginning with prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("#ns = :ns"),
		ExpressionAttributeNames: map[string]string{
			"#ns":   attrNamespace,
			"#name": attrName,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ns": &types.AttributeValueMemberS{Value: s.namespace},
		},
		ProjectionExpression: aws.String("#name"),
		ConsistentRead:       aws.Bool(true),
	}
	if prefix != "" {
		input.KeyConditionExpression = aws.String("#ns = :ns AND begins_with(#name, :prefix)")
		input.ExpressionAttributeValues[":prefix"] = &types.AttributeValueMemberS{Value: prefix}
	}

	names := []string{}
	paginator := dynamodb.NewQueryPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("dynamodb: list %q: %w", prefix, err)
		}
		for _, item := range page.Items {
			if v, ok := item[attrName].(*types.AttributeValueMemberS); ok {
				names = append(names, v.Value)
			}
		}
	}
	slices.Sort(names)
	return names, nil
}
