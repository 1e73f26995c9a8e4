package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/evote-api-nosql/internal/domain"
)

// CandidateRepo provides typed DynamoDB operations for the candidates table.
// Tally increments never go through here; they happen only inside the
// BallotRepo transaction.
type CandidateRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewCandidateRepo(client *dynamodb.Client, tableName string) *CandidateRepo {
	return &CandidateRepo{client: client, tableName: tableName}
}

func (r *CandidateRepo) Put(ctx context.Context, c *domain.Candidate) error {
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal candidate: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(candidate_id)"),
	})
	if err != nil {
		return fmt.Errorf("put candidate: %v: %w", err, domain.ErrStorage)
	}
	return nil
}

func (r *CandidateRepo) Get(ctx context.Context, candidateID string) (*domain.Candidate, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("candidate_id", candidateID),
	})
	if err != nil {
		return nil, fmt.Errorf("get candidate: %v: %w", err, domain.ErrStorage)
	}
	if out.Item == nil {
		return nil, domain.ErrCandidateNotFound
	}
	var c domain.Candidate
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CandidateRepo) Scan(ctx context.Context) ([]domain.Candidate, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, fmt.Errorf("scan candidates: %v: %w", err, domain.ErrStorage)
	}
	var candidates []domain.Candidate
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}

// Update applies a partial metadata update. vote_count is deliberately not a
// settable field here.
func (r *CandidateRepo) Update(ctx context.Context, candidateID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("candidate_id", candidateID),
		UpdateExpression:          aws.String(ue.Expr),
		ConditionExpression:       aws.String("attribute_exists(candidate_id)"),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	if err != nil {
		return fmt.Errorf("update candidate: %v: %w", err, domain.ErrStorage)
	}
	return nil
}
