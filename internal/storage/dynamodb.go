package storage

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/justsurfingit/jobs-tracker/internal/models"
)

var ErrPostingNotFound = errors.New("posting not found")

// PostingBoard is the public job board table, keyed by PostingId.
type PostingBoard struct {
	client    *dynamodb.Client
	tableName string
}

func NewPostingBoard(cfg aws.Config, tableName string, optFns ...func(*dynamodb.Options)) *PostingBoard {
	return &PostingBoard{
		client:    dynamodb.NewFromConfig(cfg, optFns...),
		tableName: tableName,
	}
}

func (b *PostingBoard) CreateTable(ctx context.Context) error {
	_, err := b.client.CreateTable(ctx, &dynamodb.CreateTableInput{
		AttributeDefinitions: []types.AttributeDefinition{{
			AttributeName: aws.String("PostingId"),
			AttributeType: types.ScalarAttributeTypeS,
		}},
		KeySchema: []types.KeySchemaElement{{
			AttributeName: aws.String("PostingId"),
			KeyType:       types.KeyTypeHash,
		}},
		TableName:   aws.String(b.tableName),
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		var inUse *types.ResourceInUseException
		if errors.As(err, &inUse) {
			log.Printf("Table %s already exists", b.tableName)
			return nil
		}
		return fmt.Errorf("couldn't create table %s: %w", b.tableName, err)
	}
	log.Printf("Created table %s", b.tableName)
	return nil
}

// Put stores the posting unless one with the same id exists. It reports
// whether the item was written.
func (b *PostingBoard) Put(ctx context.Context, p *models.Posting) (bool, error) {
	cond := expression.AttributeNotExists(expression.Name("PostingId"))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return false, err
	}
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return false, fmt.Errorf("failed to marshal posting %s: %w", p.ID, err)
	}

	_, err = b.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(b.tableName),
		Item:                      item,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return false, nil
		}
		return false, fmt.Errorf("failed to put posting %s: %w", p.ID, err)
	}
	return true, nil
}

func (b *PostingBoard) Get(ctx context.Context, id string) (*models.Posting, error) {
	out, err := b.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(b.tableName),
		Key: map[string]types.AttributeValue{
			"PostingId": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get posting %s: %w", id, err)
	}
	if len(out.Item) == 0 {
		return nil, fmt.Errorf("%s: %w", id, ErrPostingNotFound)
	}

	var p models.Posting
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal posting %s: %w", id, err)
	}
	return &p, nil
}

// List scans the whole table. The board is small and read-only.
func (b *PostingBoard) List(ctx context.Context) ([]models.Posting, error) {
	postings := []models.Posting{}
	paginator := dynamodb.NewScanPaginator(b.client, &dynamodb.ScanInput{
		TableName: aws.String(b.tableName),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", b.tableName, err)
		}
		var batch []models.Posting
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("failed to unmarshal postings: %w", err)
		}
		postings = append(postings, batch...)
	}
	return postings, nil
}
