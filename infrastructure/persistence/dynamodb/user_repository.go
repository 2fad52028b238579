package dynamodb

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"advicehub-backend/application/ports"
	"advicehub-backend/domain/user"
	"advicehub-backend/pkg/errors"
	"advicehub-backend/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// UserRepository implements ports.UserRepository on the same single table.
// Email uniqueness is enforced with a sentinel item keyed by the
// normalized email, written in the same transaction as the account item.
type UserRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.UserRepository {
	return &UserRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// userItem represents the DynamoDB item structure for an account
type userItem struct {
	PK           string `dynamodbav:"PK"`
	SK           string `dynamodbav:"SK"`
	EntityType   string `dynamodbav:"EntityType"`
	UserID       string `dynamodbav:"UserID"`
	Username     string `dynamodbav:"Username"`
	Email        string `dynamodbav:"Email"`
	PasswordHash string `dynamodbav:"PasswordHash"`
	CreatedAt    string `dynamodbav:"CreatedAt"`
	UpdatedAt    string `dynamodbav:"UpdatedAt"`
}

func userPK(id string) string {
	return fmt.Sprintf("USER#%s", id)
}

func emailPK(email string) string {
	return fmt.Sprintf("EMAIL#%s", strings.ToLower(email))
}

func (r *UserRepository) toItem(u *user.User) userItem {
	return userItem{
		PK:           userPK(u.ID),
		SK:           metadataSK,
		EntityType:   "USER",
		UserID:       u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    utils.FormatTimestamp(u.CreatedAt),
		UpdatedAt:    utils.FormatTimestamp(u.UpdatedAt),
	}
}

func (r *UserRepository) fromItem(av map[string]types.AttributeValue) (*user.User, error) {
	var item userItem
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	createdAt, err := utils.ParseTimestamp(item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid CreatedAt on user %s: %w", item.UserID, err)
	}
	updatedAt, err := utils.ParseTimestamp(item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid UpdatedAt on user %s: %w", item.UserID, err)
	}

	return &user.User{
		ID:           item.UserID,
		Username:     item.Username,
		Email:        item.Email,
		PasswordHash: item.PasswordHash,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}, nil
}

// Create writes the account item and the email sentinel in one
// transaction. If the email is already claimed the whole transaction is
// cancelled and the account is never created.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	av, err := attributevalue.MarshalMap(r.toItem(u))
	if err != nil {
		return errors.NewDatabaseError("failed to store user", err)
	}

	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(r.tableName),
					Item:                av,
					ConditionExpression: aws.String("attribute_not_exists(PK)"),
				},
			},
			{
				Put: &types.Put{
					TableName: aws.String(r.tableName),
					Item: map[string]types.AttributeValue{
						"PK":         &types.AttributeValueMemberS{Value: emailPK(u.Email)},
						"SK":         &types.AttributeValueMemberS{Value: metadataSK},
						"EntityType": &types.AttributeValueMemberS{Value: "EMAIL"},
						"UserID":     &types.AttributeValueMemberS{Value: u.ID},
					},
					ConditionExpression: aws.String("attribute_not_exists(PK)"),
				},
			},
		},
	})
	if err != nil {
		var canceled *types.TransactionCanceledException
		if stderrors.As(err, &canceled) {
			for _, reason := range canceled.CancellationReasons {
				if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
					return errors.NewConflictError("email is already registered")
				}
			}
		}
		r.logger.Error("Failed to create user",
			zap.Error(err),
			zap.String("userID", u.ID),
		)
		return errors.NewDatabaseError("failed to store user", err)
	}

	return nil
}

// GetByID retrieves an account by its ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: userPK(id)},
			"SK": &types.AttributeValueMemberS{Value: metadataSK},
		},
	})
	if err != nil {
		r.logger.Error("Failed to get user item",
			zap.Error(err),
			zap.String("userID", id),
		)
		return nil, errors.NewDatabaseError("failed to load user", err)
	}
	if result.Item == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("user %s", id))
	}

	account, err := r.fromItem(result.Item)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to load user", err)
	}
	return account, nil
}

// GetByEmail resolves the email sentinel to a user ID, then loads the
// account item
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: emailPK(email)},
			"SK": &types.AttributeValueMemberS{Value: metadataSK},
		},
	})
	if err != nil {
		r.logger.Error("Failed to resolve email", zap.Error(err))
		return nil, errors.NewDatabaseError("failed to load user", err)
	}
	if result.Item == nil {
		return nil, errors.NewNotFoundError("user")
	}

	idAttr, ok := result.Item["UserID"].(*types.AttributeValueMemberS)
	if !ok {
		return nil, errors.NewDatabaseError("failed to load user", fmt.Errorf("email item for %s has no UserID", email))
	}
	return r.GetByID(ctx, idAttr.Value)
}
