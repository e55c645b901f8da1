// Package dynamo stores the document blob as a single DynamoDB item.
package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/vlnch/anonbox/blob"
)

type DynamoTransport struct {
	client    *dynamodb.Client
	tableName string
	docId     string
}

func NewDynamoTransport(ctx context.Context, devMode bool, dynamodbEndpoint string, tableName string, docId string) (*DynamoTransport, error) {
	client, err := newDynamoDBClient(ctx, devMode, dynamodbEndpoint)
	if err != nil {
		return nil, err
	}

	tables, err := getTables(client, ctx)
	if err != nil {
		return nil, err
	}

	foundTable := false
	for _, table := range tables {
		if table == tableName {
			foundTable = true
			break
		}
	}
	if !foundTable {
		return nil, fmt.Errorf("given table name '%s' not found in dynamodb", tableName)
	}

	return &DynamoTransport{client: client, tableName: tableName, docId: docId}, nil
}

// dynamoBlob is the one-item schema: the whole document JSON lives in Content.
type dynamoBlob struct {
	PK      string `dynamodbav:"PK"`
	SK      string `dynamodbav:"SK"`
	Content []byte `dynamodbav:"Content"`
	Updated int64  `dynamodbav:"Updated"`
}

func (d *DynamoTransport) key() map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: "DOC#" + d.docId},
		"SK": &types.AttributeValueMemberS{Value: "BLOB"},
	}
}

func (d *DynamoTransport) Get(ctx context.Context) ([]byte, error) {
	resp, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(d.tableName),
		Key:            d.key(),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem failed: %w", err)
	}
	if resp.Item == nil {
		return nil, blob.ErrNotFound
	}

	var item dynamoBlob
	if err := attributevalue.UnmarshalMap(resp.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}

	return item.Content, nil
}

func (d *DynamoTransport) Patch(ctx context.Context, content []byte) error {
	item := dynamoBlob{
		PK:      "DOC#" + d.docId,
		SK:      "BLOB",
		Content: content,
		Updated: time.Now().Unix(),
	}

	avMap, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.tableName),
		Item:      avMap,
	})
	if err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}

	return nil
}
