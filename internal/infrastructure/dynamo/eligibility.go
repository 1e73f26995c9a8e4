package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/evote-api-nosql/internal/domain"
)

// EligibilityRepo reads and seeds the pre-approved voter roster.
type EligibilityRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewEligibilityRepo(client *dynamodb.Client, tableName string) *EligibilityRepo {
	return &EligibilityRepo{client: client, tableName: tableName}
}

// IsEligible reports whether the legal id appears in the roster.
func (r *EligibilityRepo) IsEligible(ctx context.Context, legalID string) (bool, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("legal_id", legalID),
	})
	if err != nil {
		return false, fmt.Errorf("get roster entry: %v: %w", err, domain.ErrStorage)
	}
	return out.Item != nil, nil
}

func (r *EligibilityRepo) Put(ctx context.Context, e *domain.EligibleVoter) error {
	item, err := attributevalue.MarshalMap(e)
	if err != nil {
		return fmt.Errorf("marshal roster entry: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put roster entry: %v: %w", err, domain.ErrStorage)
	}
	return nil
}
