package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/evote-api-nosql/internal/domain"
)

// VoterRepo provides typed DynamoDB operations for the voters table and its
// face-key side table.
type VoterRepo struct {
	client        *dynamodb.Client
	tableName     string
	faceKeysTable string
}

func NewVoterRepo(client *dynamodb.Client, tableName, faceKeysTable string) *VoterRepo {
	return &VoterRepo{client: client, tableName: tableName, faceKeysTable: faceKeysTable}
}

// Create persists a new voter record. The write is a transaction of two
// conditional puts: the voter item keyed by legal id, and the coarse face-key
// item. Either condition failing cancels the whole transaction, which closes
// the window between the duplicate-face scan and the insert.
func (r *VoterRepo) Create(ctx context.Context, v *domain.Voter) error {
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		return fmt.Errorf("marshal voter: %w", err)
	}
	keyItem := map[string]types.AttributeValue{
		"face_key": &types.AttributeValueMemberS{Value: v.FaceKey},
		"legal_id": &types.AttributeValueMemberS{Value: v.LegalID},
	}

	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:           aws.String(r.tableName),
				Item:                item,
				ConditionExpression: aws.String("attribute_not_exists(legal_id)"),
			}},
			{Put: &types.Put{
				TableName:           aws.String(r.faceKeysTable),
				Item:                keyItem,
				ConditionExpression: aws.String("attribute_not_exists(face_key)"),
			}},
		},
	})
	if err == nil {
		return nil
	}

	var tc *types.TransactionCanceledException
	if errors.As(err, &tc) && len(tc.CancellationReasons) == 2 {
		if conditionFailed(tc.CancellationReasons[0]) {
			return &domain.DuplicateFieldError{Field: "legal_id"}
		}
		if conditionFailed(tc.CancellationReasons[1]) {
			return &domain.DuplicateFaceError{}
		}
	}
	return fmt.Errorf("create voter: %v: %w", err, domain.ErrStorage)
}

func (r *VoterRepo) Get(ctx context.Context, legalID string) (*domain.Voter, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("legal_id", legalID),
	})
	if err != nil {
		return nil, fmt.Errorf("get voter: %v: %w", err, domain.ErrStorage)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("voter %s: %w", legalID, domain.ErrNotFound)
	}
	var v domain.Voter
	if err := attributevalue.UnmarshalMap(out.Item, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VoterRepo) GetByEmail(ctx context.Context, email string) (*domain.Voter, error) {
	return r.queryGSI(ctx, "email-index", "email", email)
}

func (r *VoterRepo) GetByPhone(ctx context.Context, phone string) (*domain.Voter, error) {
	return r.queryGSI(ctx, "phone-index", "phone", phone)
}

// ScanEmbeddings returns one page of (legal_id, embedding) projections for the
// duplicate-identity scan. cursor is a base64-encoded legal_id used as
// ExclusiveStartKey; an empty next cursor means the scan is complete.
func (r *VoterRepo) ScanEmbeddings(ctx context.Context, limit int32, cursor string) ([]domain.EnrolledEmbedding, string, error) {
	input := &dynamodb.ScanInput{
		TableName:            aws.String(r.tableName),
		ProjectionExpression: aws.String("legal_id, embedding"),
		Limit:                aws.Int32(limit),
	}
	if cursor != "" {
		legalID, err := decodeCursor(cursor)
		if err != nil {
			return nil, "", fmt.Errorf("invalid cursor: %w", domain.ErrBadRequest)
		}
		input.ExclusiveStartKey = strKey("legal_id", legalID)
	}
	out, err := r.client.Scan(ctx, input)
	if err != nil {
		return nil, "", fmt.Errorf("scan voters: %v: %w", err, domain.ErrStorage)
	}
	var entries []domain.EnrolledEmbedding
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &entries); err != nil {
		return nil, "", err
	}
	nextCursor := ""
	if v, ok := out.LastEvaluatedKey["legal_id"].(*types.AttributeValueMemberS); ok {
		nextCursor = encodeCursor(v.Value)
	}
	return entries, nextCursor, nil
}

func (r *VoterRepo) queryGSI(ctx context.Context, index, attr, value string) (*domain.Voter, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: value}},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("query voters by %s: %v: %w", attr, err, domain.ErrStorage)
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("voter: %w", domain.ErrNotFound)
	}
	var v domain.Voter
	if err := attributevalue.UnmarshalMap(out.Items[0], &v); err != nil {
		return nil, err
	}
	return &v, nil
}
