// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/idea-generator/pkg/types"
)

// Reserved item attributes. Document fields with these names are dropped.
const (
	attrPK        = "PK"
	attrSK        = "SK"
	attrCreatedAt = "DocCreatedAt"
)

// DynamoAPI is the subset of *dynamodb.Client the store calls.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// DynamoStore keeps all collections in one table: the partition key is the
// collection name and the sort key is the document identifier. Document
// fields are stored as top-level attributes so filters can address them.
type DynamoStore struct {
	client    DynamoAPI
	tableName string
	logger    *zap.Logger
}

// NewDynamoStore wraps an existing client.
func NewDynamoStore(client DynamoAPI, tableName string, logger *zap.Logger) *DynamoStore {
	return &DynamoStore{client: client, tableName: tableName, logger: logger}
}

// OpenDynamoStore loads the AWS default configuration and builds a client.
func OpenDynamoStore(ctx context.Context, cfg types.DynamoDBConfig, logger *zap.Logger) (*DynamoStore, error) {
	if cfg.Table == "" {
		return nil, fmt.Errorf("%w: store.dynamodb.table is required", types.ErrInvalidInput)
	}

	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS configuration: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	logger.Info("using DynamoDB document store",
		zap.String("table", cfg.Table),
		zap.String("region", awsCfg.Region),
	)
	return NewDynamoStore(client, cfg.Table, logger), nil
}

// Close is a no-op; the SDK client holds no resources that need releasing.
func (s *DynamoStore) Close() error { return nil }

func key(collection, id string) map[string]ddbtypes.AttributeValue {
	return map[string]ddbtypes.AttributeValue{
		attrPK: &ddbtypes.AttributeValueMemberS{Value: collection},
		attrSK: &ddbtypes.AttributeValueMemberS{Value: id},
	}
}

func (s *DynamoStore) Get(ctx context.Context, collection, id string) (Document, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.tableName),
		Key:            key(collection, id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("getting %s/%s: %w", collection, id, err)
	}
	if out.Item == nil {
		return nil, notFound(collection, id)
	}
	return fromItem(out.Item)
}

func (s *DynamoStore) List(ctx context.Context, collection string) ([]Document, error) {
	keyCond := expression.Key(attrPK).Equal(expression.Value(collection))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("building expression: %w", err)
	}
	return s.query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(s.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
}

func (s *DynamoStore) Query(ctx context.Context, collection, field string, value any) ([]Document, error) {
	if err := checkField(field); err != nil {
		return nil, err
	}
	keyCond := expression.Key(attrPK).Equal(expression.Value(collection))
	filter := expression.Name(field).Equal(expression.Value(value))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).WithFilter(filter).Build()
	if err != nil {
		return nil, fmt.Errorf("building expression: %w", err)
	}
	return s.query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(s.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
}

func (s *DynamoStore) query(ctx context.Context, input *dynamodb.QueryInput) ([]Document, error) {
	docs := []Document{}
	paginator := dynamodb.NewQueryPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("querying items: %w", err)
		}
		for _, item := range page.Items {
			doc, err := fromItem(item)
			if err != nil {
				s.logger.Warn("skipping unparseable item", zap.Error(err))
				continue
			}
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (s *DynamoStore) Add(ctx context.Context, collection string, doc Document) (string, error) {
	id := uuid.NewString()
	item, err := toItem(collection, id, doc)
	if err != nil {
		return "", err
	}

	cond := expression.Name(attrPK).AttributeNotExists()
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return "", fmt.Errorf("building expression: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(s.tableName),
		Item:                     item,
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil {
		return "", fmt.Errorf("putting %s document: %w", collection, err)
	}

	s.logger.Debug("document added", zap.String("collection", collection), zap.String("id", id))
	return id, nil
}

func (s *DynamoStore) Set(ctx context.Context, collection, id string, doc Document) error {
	item, err := toItem(collection, id, doc)
	if err != nil {
		return err
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("putting %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *DynamoStore) Update(ctx context.Context, collection, id string, fields Document) error {
	fields = body(fields)
	if len(fields) == 0 {
		_, err := s.Get(ctx, collection, id)
		return err
	}

	var update expression.UpdateBuilder
	for k, v := range fields {
		if k == attrPK || k == attrSK || k == attrCreatedAt {
			continue
		}
		update = update.Set(expression.Name(k), expression.Value(v))
	}
	cond := expression.Name(attrPK).AttributeExists()
	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("building expression: %w", err)
	}

	_, err = s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.tableName),
		Key:                       key(collection, id),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var ccf *ddbtypes.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return notFound(collection, id)
		}
		return fmt.Errorf("updating %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *DynamoStore) Delete(ctx context.Context, collection, id string) error {
	cond := expression.Name(attrPK).AttributeExists()
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("building expression: %w", err)
	}

	_, err = s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                aws.String(s.tableName),
		Key:                      key(collection, id),
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil {
		var ccf *ddbtypes.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return notFound(collection, id)
		}
		return fmt.Errorf("deleting %s/%s: %w", collection, id, err)
	}
	return nil
}

// toItem flattens doc into item attributes alongside the key.
func toItem(collection, id string, doc Document) (map[string]ddbtypes.AttributeValue, error) {
	fields := body(doc)
	delete(fields, attrPK)
	delete(fields, attrSK)
	delete(fields, attrCreatedAt)

	item, err := attributevalue.MarshalMap(map[string]any(fields))
	if err != nil {
		return nil, fmt.Errorf("marshaling document: %w", err)
	}
	for k, v := range key(collection, id) {
		item[k] = v
	}
	item[attrCreatedAt] = &ddbtypes.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)}
	return item, nil
}

// fromItem reverses toItem.
func fromItem(item map[string]ddbtypes.AttributeValue) (Document, error) {
	var doc Document
	if err := attributevalue.UnmarshalMap(item, &doc); err != nil {
		return nil, fmt.Errorf("unmarshaling item: %w", err)
	}
	id, _ := doc[attrSK].(string)
	delete(doc, attrPK)
	delete(doc, attrSK)
	delete(doc, attrCreatedAt)
	return withID(doc, id), nil
}
