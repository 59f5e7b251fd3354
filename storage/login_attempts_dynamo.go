package storage

import (
	"context"
	"time"

	"github.com/alex-pricope/simple-polls/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Fixed width so sort keys order the same way the timestamps do.
const sortKeyLayout = "2006-01-02T15:04:05.000000000Z"

type loginAttemptItem struct {
	Username  string    `dynamodbav:"PK"`
	SortKey   string    `dynamodbav:"SK"` // timestamp#nanoid
	Success   bool      `dynamodbav:"Success"`
	CreatedAt time.Time `dynamodbav:"CreatedAt"`
}

// DynamoLoginAttemptStorage keeps attempts in a table keyed by username (PK)
// and attempt time (SK), so the throttle window is a single key-range query.
type DynamoLoginAttemptStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func attemptSortKey(t time.Time) string {
	suffix, err := gonanoid.New(8)
	if err != nil {
		logging.Log.Warnf("LOGIN: nanoid failed, using bare timestamp: %v", err)
		return t.UTC().Format(sortKeyLayout)
	}
	return t.UTC().Format(sortKeyLayout) + "#" + suffix
}

func (s *DynamoLoginAttemptStorage) Create(ctx context.Context, attempt *LoginAttempt) error {
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = time.Now().UTC()
	}
	item, err := attributevalue.MarshalMap(&loginAttemptItem{
		Username:  attempt.Username,
		SortKey:   attemptSortKey(attempt.CreatedAt),
		Success:   attempt.Success,
		CreatedAt: attempt.CreatedAt,
	})
	if err != nil {
		logging.Log.Errorf("LOGIN: failed to marshal attempt: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if err != nil {
		logging.Log.Errorf("LOGIN: failed to put attempt for %q: %v", attempt.Username, err)
		return err
	}
	return nil
}

func (s *DynamoLoginAttemptStorage) CountFailedSince(ctx context.Context, username string, since time.Time) (int, error) {
	var lastEvaluatedKey map[string]types.AttributeValue
	total := 0

	for {
		out, err := s.Client.Query(ctx, &dynamodb.QueryInput{
			TableName:              &s.TableName,
			KeyConditionExpression: aws.String("PK = :user AND SK >= :since"),
			FilterExpression:       aws.String("Success = :failed"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":user":   &types.AttributeValueMemberS{Value: username},
				":since":  &types.AttributeValueMemberS{Value: since.UTC().Format(sortKeyLayout)},
				":failed": &types.AttributeValueMemberBOOL{Value: false},
			},
			Select:            types.SelectCount,
			ExclusiveStartKey: lastEvaluatedKey,
		})
		if err != nil {
			logging.Log.Errorf("LOGIN: failed to count attempts for %q: %v", username, err)
			return 0, err
		}
		total += int(out.Count)

		if out.LastEvaluatedKey == nil {
			break
		}
		lastEvaluatedKey = out.LastEvaluatedKey
	}

	return total, nil
}

func (s *DynamoLoginAttemptStorage) DeleteFailed(ctx context.Context, username string) error {
	var lastEvaluatedKey map[string]types.AttributeValue

	for {
		out, err := s.Client.Query(ctx, &dynamodb.QueryInput{
			TableName:              &s.TableName,
			KeyConditionExpression: aws.String("PK = :user"),
			FilterExpression:       aws.String("Success = :failed"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":user":   &types.AttributeValueMemberS{Value: username},
				":failed": &types.AttributeValueMemberBOOL{Value: false},
			},
			ProjectionExpression: aws.String("PK, SK"),
			ExclusiveStartKey:    lastEvaluatedKey,
		})
		if err != nil {
			logging.Log.Errorf("LOGIN: query for purge failed: %v", err)
			return err
		}

		var writeRequests []types.WriteRequest
		for _, item := range out.Items {
			writeRequests = append(writeRequests, types.WriteRequest{
				DeleteRequest: &types.DeleteRequest{
					Key: map[string]types.AttributeValue{
						"PK": item["PK"],
						"SK": item["SK"],
					},
				},
			})
		}

		// BatchWriteItem accepts at most 25 requests.
		for i := 0; i < len(writeRequests); i += 25 {
			end := i + 25
			if end > len(writeRequests) {
				end = len(writeRequests)
			}
			_, err := s.Client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: map[string][]types.WriteRequest{
					s.TableName: writeRequests[i:end],
				},
			})
			if err != nil {
				logging.Log.Errorf("LOGIN: batch delete failed: %v", err)
				return err
			}
			logging.Log.Infof("LOGIN: purged batch of %d attempts for %q", end-i, username)
		}

		if out.LastEvaluatedKey == nil {
			break
		}
		lastEvaluatedKey = out.LastEvaluatedKey
	}

	return nil
}
