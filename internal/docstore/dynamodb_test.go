// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docstore

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/idea-generator/pkg/types"
)

// fakeDynamo is an in-memory table that understands the handful of
// expression shapes DynamoStore emits: equality key conditions and filters,
// SET updates, and attribute_exists/attribute_not_exists conditions.
type fakeDynamo struct {
	mu    sync.Mutex
	items map[string]map[string]ddbtypes.AttributeValue
	calls map[string]int
	err   error
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{
		items: make(map[string]map[string]ddbtypes.AttributeValue),
		calls: make(map[string]int),
	}
}

func itemKey(k map[string]ddbtypes.AttributeValue) string {
	return stringAttr(k[attrPK]) + "\x00" + stringAttr(k[attrSK])
}

func stringAttr(v ddbtypes.AttributeValue) string {
	if s, ok := v.(*ddbtypes.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func conditionFailed() error {
	return &ddbtypes.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["GetItem"]++
	if f.err != nil {
		return nil, f.err
	}
	return &dynamodb.GetItemOutput{Item: f.items[itemKey(in.Key)]}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["PutItem"]++
	if f.err != nil {
		return nil, f.err
	}
	k := itemKey(in.Item)
	if in.ConditionExpression != nil && strings.Contains(*in.ConditionExpression, "attribute_not_exists") {
		if _, exists := f.items[k]; exists {
			return nil, conditionFailed()
		}
	}
	f.items[k] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["UpdateItem"]++
	if f.err != nil {
		return nil, f.err
	}
	k := itemKey(in.Key)
	item, exists := f.items[k]
	if !exists {
		return nil, conditionFailed()
	}

	updated := make(map[string]ddbtypes.AttributeValue, len(item))
	for name, v := range item {
		updated[name] = v
	}
	for _, line := range strings.Split(aws.ToString(in.UpdateExpression), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "SET ") {
			continue
		}
		for _, clause := range strings.Split(strings.TrimPrefix(line, "SET "), ",") {
			name, value, ok := splitEquality(clause)
			if !ok {
				continue
			}
			updated[in.ExpressionAttributeNames[name]] = in.ExpressionAttributeValues[value]
		}
	}
	f.items[k] = updated
	return &dynamodb.UpdateItemOutput{}, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["DeleteItem"]++
	if f.err != nil {
		return nil, f.err
	}
	k := itemKey(in.Key)
	if _, exists := f.items[k]; !exists {
		return nil, conditionFailed()
	}
	delete(f.items, k)
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["Query"]++
	if f.err != nil {
		return nil, f.err
	}

	pkName, pkValue, ok := splitEquality(aws.ToString(in.KeyConditionExpression))
	if !ok || in.ExpressionAttributeNames[pkName] != attrPK {
		return nil, errors.New("fake: unsupported key condition")
	}
	partition := stringAttr(in.ExpressionAttributeValues[pkValue])

	var filterAttr string
	var filterValue ddbtypes.AttributeValue
	if in.FilterExpression != nil {
		name, value, ok := splitEquality(*in.FilterExpression)
		if !ok {
			return nil, errors.New("fake: unsupported filter")
		}
		filterAttr = in.ExpressionAttributeNames[name]
		filterValue = in.ExpressionAttributeValues[value]
	}

	var out []map[string]ddbtypes.AttributeValue
	for _, item := range f.items {
		if stringAttr(item[attrPK]) != partition {
			continue
		}
		if filterAttr != "" && !assert.ObjectsAreEqual(item[filterAttr], filterValue) {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		return stringAttr(out[i][attrSK]) < stringAttr(out[j][attrSK])
	})
	return &dynamodb.QueryOutput{Items: out, Count: int32(len(out))}, nil
}

// splitEquality parses "#n = :v", tolerating surrounding parentheses.
func splitEquality(expr string) (name, value string, ok bool) {
	expr = strings.Trim(strings.TrimSpace(expr), "()")
	left, right, found := strings.Cut(expr, "=")
	if !found {
		return "", "", false
	}
	return strings.Trim(strings.TrimSpace(left), "()"), strings.Trim(strings.TrimSpace(right), "()"), true
}

func TestDynamoStore_ItemLayout(t *testing.T) {
	ctx := context.Background()
	fake := newFakeDynamo()
	s := NewDynamoStore(fake, "ideas-test", zap.NewNop())

	require.NoError(t, s.Set(ctx, Ideas, "i1", Document{
		"title": "Plant Waterer",
		attrPK:  "smuggled",
	}))

	item := fake.items[itemKey(key(Ideas, "i1"))]
	require.NotNil(t, item)
	assert.Equal(t, Ideas, stringAttr(item[attrPK]))
	assert.Equal(t, "i1", stringAttr(item[attrSK]))
	assert.NotEmpty(t, stringAttr(item[attrCreatedAt]))
	assert.Equal(t, "Plant Waterer", stringAttr(item["title"]))

	doc, err := s.Get(ctx, Ideas, "i1")
	require.NoError(t, err)
	assert.Equal(t, Document{"id": "i1", "title": "Plant Waterer"}, doc)
}

func TestDynamoStore_EmptyUpdateChecksExistence(t *testing.T) {
	ctx := context.Background()
	fake := newFakeDynamo()
	s := NewDynamoStore(fake, "ideas-test", zap.NewNop())

	err := s.Update(ctx, Ideas, "missing", Document{"id": "missing"})
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Zero(t, fake.calls["UpdateItem"])
	assert.Equal(t, 1, fake.calls["GetItem"])
}

func TestDynamoStore_ClientErrorsAreWrapped(t *testing.T) {
	ctx := context.Background()
	fake := newFakeDynamo()
	fake.err = errors.New("throttled")
	s := NewDynamoStore(fake, "ideas-test", zap.NewNop())

	_, err := s.Get(ctx, Ideas, "i1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, types.ErrNotFound)
	assert.Contains(t, err.Error(), "throttled")

	_, err = s.List(ctx, Ideas)
	assert.ErrorContains(t, err, "throttled")

	err = s.Delete(ctx, Ideas, "i1")
	assert.NotErrorIs(t, err, types.ErrNotFound)
}
