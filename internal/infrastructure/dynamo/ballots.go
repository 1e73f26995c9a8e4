package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/evote-api-nosql/internal/domain"
)

// BallotRepo performs the vote-commit transaction across the voters and
// candidates tables.
type BallotRepo struct {
	client          *dynamodb.Client
	votersTable     string
	candidatesTable string
}

func NewBallotRepo(client *dynamodb.Client, votersTable, candidatesTable string) *BallotRepo {
	return &BallotRepo{client: client, votersTable: votersTable, candidatesTable: candidatesTable}
}

// CommitVote flips the voter's has_voted flag and increments the candidate
// tally in one atomic transaction. The voter update carries the
// has_voted = false precondition, so of any number of concurrent attempts for
// the same legal id exactly one commits; the rest fail the condition and
// surface as ErrAlreadyVoted. The candidate update requires the candidate to
// exist, so a bad candidate id cancels the whole transaction and the voter
// flag stays untouched.
func (r *BallotRepo) CommitVote(ctx context.Context, legalID, candidateID string, votedAt time.Time) error {
	_, err := r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Update: &types.Update{
				TableName:           aws.String(r.votersTable),
				Key:                 strKey("legal_id", legalID),
				UpdateExpression:    aws.String("SET has_voted = :t, voted_at = :ts"),
				ConditionExpression: aws.String("attribute_exists(legal_id) AND has_voted = :f"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":t":  &types.AttributeValueMemberBOOL{Value: true},
					":f":  &types.AttributeValueMemberBOOL{Value: false},
					":ts": &types.AttributeValueMemberS{Value: votedAt.UTC().Format(time.RFC3339Nano)},
				},
			}},
			{Update: &types.Update{
				TableName:           aws.String(r.candidatesTable),
				Key:                 strKey("candidate_id", candidateID),
				UpdateExpression:    aws.String("ADD vote_count :one"),
				ConditionExpression: aws.String("attribute_exists(candidate_id)"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":one": &types.AttributeValueMemberN{Value: "1"},
				},
			}},
		},
	})
	if err == nil {
		return nil
	}

	var tc *types.TransactionCanceledException
	if errors.As(err, &tc) && len(tc.CancellationReasons) == 2 {
		if conditionFailed(tc.CancellationReasons[0]) {
			return domain.ErrAlreadyVoted
		}
		if conditionFailed(tc.CancellationReasons[1]) {
			return domain.ErrCandidateNotFound
		}
	}
	return fmt.Errorf("commit vote: %v: %w", err, domain.ErrStorage)
}
