package dynamodb

import (
	"context"
	stderrors "errors"
	"fmt"

	"advicehub-backend/application/ports"
	"advicehub-backend/domain/advice"
	"advicehub-backend/pkg/errors"
	"advicehub-backend/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

const (
	adviceEntityType = "ADVICE"
	metadataSK       = "METADATA"
	listPartition    = "ADVICE"
)

// AdviceRepository implements ports.AdviceRepository on a single DynamoDB
// table. Each advice record is one item; the liked set lives inside the
// item so that like and unlike are single conditional writes.
type AdviceRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string
	logger    *zap.Logger
}

// NewAdviceRepository creates a new AdviceRepository
func NewAdviceRepository(client *dynamodb.Client, tableName, indexName string, logger *zap.Logger) ports.AdviceRepository {
	return &AdviceRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// adviceItem represents the DynamoDB item structure for an advice record.
// Categories and LikedBy are stored as string sets; empty sets are omitted
// because DynamoDB rejects them.
type adviceItem struct {
	PK            string   `dynamodbav:"PK"`
	SK            string   `dynamodbav:"SK"`
	GSI1PK        string   `dynamodbav:"GSI1PK"`
	GSI1SK        string   `dynamodbav:"GSI1SK"`
	EntityType    string   `dynamodbav:"EntityType"`
	AdviceID      string   `dynamodbav:"AdviceID"`
	Title         string   `dynamodbav:"Title"`
	Content       string   `dynamodbav:"Content"`
	AuthorID      string   `dynamodbav:"AuthorID"`
	Categories    []string `dynamodbav:"Categories"`
	Likes         int      `dynamodbav:"Likes"`
	LikedBy       []string `dynamodbav:"LikedBy"`
	PublishedDate string   `dynamodbav:"PublishedDate"`
	CreatedAt     string   `dynamodbav:"CreatedAt"`
	UpdatedAt     string   `dynamodbav:"UpdatedAt"`
}

func advicePK(id string) string {
	return fmt.Sprintf("ADVICE#%s", id)
}

func adviceKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: advicePK(id)},
		"SK": &types.AttributeValueMemberS{Value: metadataSK},
	}
}

// marshalAdvice builds the raw item map. Sets are written as SS attributes
// explicitly so that contains() conditions and ADD/DELETE updates apply to
// them; MarshalMap alone would produce lists.
func marshalAdvice(a *advice.Advice) (map[string]types.AttributeValue, error) {
	categories := make([]string, len(a.Categories))
	for i, c := range a.Categories {
		categories[i] = string(c)
	}

	item := adviceItem{
		PK:            advicePK(a.ID),
		SK:            metadataSK,
		GSI1PK:        listPartition,
		GSI1SK:        fmt.Sprintf("%s#%s", utils.FormatTimestamp(a.CreatedAt), a.ID),
		EntityType:    adviceEntityType,
		AdviceID:      a.ID,
		Title:         a.Title,
		Content:       a.Content,
		AuthorID:      a.AuthorID,
		Likes:         a.Likes,
		PublishedDate: utils.FormatTimestamp(a.PublishedDate),
		CreatedAt:     utils.FormatTimestamp(a.CreatedAt),
		UpdatedAt:     utils.FormatTimestamp(a.UpdatedAt),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal advice: %w", err)
	}

	delete(av, "Categories")
	delete(av, "LikedBy")
	if len(categories) > 0 {
		av["Categories"] = &types.AttributeValueMemberSS{Value: categories}
	}
	if len(a.LikedBy) > 0 {
		av["LikedBy"] = &types.AttributeValueMemberSS{Value: a.LikedBy}
	}

	return av, nil
}

func unmarshalAdvice(av map[string]types.AttributeValue) (*advice.Advice, error) {
	var item adviceItem
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal advice: %w", err)
	}

	published, err := utils.ParseTimestamp(item.PublishedDate)
	if err != nil {
		return nil, fmt.Errorf("invalid PublishedDate on item %s: %w", item.AdviceID, err)
	}
	createdAt, err := utils.ParseTimestamp(item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid CreatedAt on item %s: %w", item.AdviceID, err)
	}
	updatedAt, err := utils.ParseTimestamp(item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid UpdatedAt on item %s: %w", item.AdviceID, err)
	}

	categories := make([]advice.Category, len(item.Categories))
	for i, c := range item.Categories {
		categories[i] = advice.Category(c)
	}
	likedBy := item.LikedBy
	if likedBy == nil {
		likedBy = []string{}
	}

	return &advice.Advice{
		ID:            item.AdviceID,
		Title:         item.Title,
		Content:       item.Content,
		AuthorID:      item.AuthorID,
		Categories:    categories,
		Likes:         item.Likes,
		LikedBy:       likedBy,
		PublishedDate: published,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}, nil
}

// Create stores a new advice item, guarded against ID collisions
func (r *AdviceRepository) Create(ctx context.Context, a *advice.Advice) error {
	av, err := marshalAdvice(a)
	if err != nil {
		return errors.NewDatabaseError("failed to store advice", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		var conditionalCheckFailed *types.ConditionalCheckFailedException
		if stderrors.As(err, &conditionalCheckFailed) {
			return errors.NewConflictError(fmt.Sprintf("advice %s already exists", a.ID))
		}
		r.logger.Error("Failed to put advice item",
			zap.Error(err),
			zap.String("adviceID", a.ID),
		)
		return errors.NewDatabaseError("failed to store advice", err)
	}

	return nil
}

// GetByID retrieves one advice item, with a consistent read so a toggle
// that just won its conditional write is visible to the next request
func (r *AdviceRepository) GetByID(ctx context.Context, id string) (*advice.Advice, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            adviceKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		r.logger.Error("Failed to get advice item",
			zap.Error(err),
			zap.String("adviceID", id),
		)
		return nil, errors.NewDatabaseError("failed to load advice", err)
	}
	if result.Item == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("advice %s", id))
	}

	record, err := unmarshalAdvice(result.Item)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to load advice", err)
	}
	return record, nil
}

// listFilter translates the domain filter into a DynamoDB filter
// expression. Category matching uses contains() per category, combined
// with OR, which mirrors the intersection semantics of the domain filter.
func listFilter(filter advice.Filter) *expression.ConditionBuilder {
	var cond *expression.ConditionBuilder

	if len(filter.Categories) > 0 {
		catCond := expression.Name("Categories").Contains(string(filter.Categories[0]))
		for _, c := range filter.Categories[1:] {
			catCond = catCond.Or(expression.Name("Categories").Contains(string(c)))
		}
		cond = &catCond
	}
	if filter.AuthorID != "" {
		authorCond := expression.Name("AuthorID").Equal(expression.Value(filter.AuthorID))
		if cond == nil {
			cond = &authorCond
		} else {
			combined := cond.And(authorCond)
			cond = &combined
		}
	}

	return cond
}

func (r *AdviceRepository) buildListQuery(filter advice.Filter, countOnly bool) (*dynamodb.QueryInput, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value(listPartition))
	builder := expression.NewBuilder().WithKeyCondition(keyCond)

	if cond := listFilter(filter); cond != nil {
		builder = builder.WithFilter(*cond)
	}

	expr, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build list expression: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.indexName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}
	if countOnly {
		input.Select = types.SelectCount
	}
	return input, nil
}

// FindMany queries the listing index and orders the matching records in
// memory. The listing partition is expected to stay small enough for that;
// skip and limit are applied after ordering so page boundaries are exact.
func (r *AdviceRepository) FindMany(ctx context.Context, filter advice.Filter, sort advice.Sort, skip, limit int) ([]*advice.Advice, error) {
	input, err := r.buildListQuery(filter, false)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list advices", err)
	}

	var records []*advice.Advice
	paginator := dynamodb.NewQueryPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			r.logger.Error("Failed to query advice listing", zap.Error(err))
			return nil, errors.NewDatabaseError("failed to list advices", err)
		}
		for _, item := range page.Items {
			record, err := unmarshalAdvice(item)
			if err != nil {
				return nil, errors.NewDatabaseError("failed to list advices", err)
			}
			records = append(records, record)
		}
	}

	advice.SortSlice(records, sort)

	if skip >= len(records) {
		return []*advice.Advice{}, nil
	}
	records = records[skip:]
	if limit >= 0 && limit < len(records) {
		records = records[:limit]
	}
	return records, nil
}

// Count runs the same query as FindMany with Select COUNT
func (r *AdviceRepository) Count(ctx context.Context, filter advice.Filter) (int, error) {
	input, err := r.buildListQuery(filter, true)
	if err != nil {
		return 0, errors.NewDatabaseError("failed to count advices", err)
	}

	total := 0
	paginator := dynamodb.NewQueryPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			r.logger.Error("Failed to count advice listing", zap.Error(err))
			return 0, errors.NewDatabaseError("failed to count advices", err)
		}
		total += int(page.Count)
	}
	return total, nil
}

// Update rewrites the full item, requiring it to still exist. Like state
// is carried over from the record, which the caller loaded via GetByID.
func (r *AdviceRepository) Update(ctx context.Context, a *advice.Advice) error {
	av, err := marshalAdvice(a)
	if err != nil {
		return errors.NewDatabaseError("failed to update advice", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})
	if err != nil {
		var conditionalCheckFailed *types.ConditionalCheckFailedException
		if stderrors.As(err, &conditionalCheckFailed) {
			return errors.NewNotFoundError(fmt.Sprintf("advice %s", a.ID))
		}
		r.logger.Error("Failed to update advice item",
			zap.Error(err),
			zap.String("adviceID", a.ID),
		)
		return errors.NewDatabaseError("failed to update advice", err)
	}

	return nil
}

// Delete removes the item, failing with not-found when it is already gone
func (r *AdviceRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 adviceKey(id),
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})
	if err != nil {
		var conditionalCheckFailed *types.ConditionalCheckFailedException
		if stderrors.As(err, &conditionalCheckFailed) {
			return errors.NewNotFoundError(fmt.Sprintf("advice %s", id))
		}
		r.logger.Error("Failed to delete advice item",
			zap.Error(err),
			zap.String("adviceID", id),
		)
		return errors.NewDatabaseError("failed to delete advice", err)
	}

	return nil
}

// AddLike adds the user to the liked set and bumps the counter in one
// conditional write. The condition re-checks membership at write time, so
// concurrent likes by the same user resolve to exactly one winner; the
// losers get a conflict and must not retry.
func (r *AdviceRepository) AddLike(ctx context.Context, adviceID, userID string) (*advice.Advice, error) {
	result, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 adviceKey(adviceID),
		UpdateExpression:    aws.String("ADD LikedBy :uset SET Likes = Likes + :one, UpdatedAt = :now"),
		ConditionExpression: aws.String("attribute_exists(PK) AND NOT contains(LikedBy, :uid)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uset": &types.AttributeValueMemberSS{Value: []string{userID}},
			":uid":  &types.AttributeValueMemberS{Value: userID},
			":one":  &types.AttributeValueMemberN{Value: "1"},
			":now":  &types.AttributeValueMemberS{Value: utils.NowTimestamp()},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var conditionalCheckFailed *types.ConditionalCheckFailedException
		if stderrors.As(err, &conditionalCheckFailed) {
			return nil, errors.NewConflictError("advice is already liked by this user")
		}
		r.logger.Error("Failed to add like",
			zap.Error(err),
			zap.String("adviceID", adviceID),
			zap.String("userID", userID),
		)
		return nil, errors.NewDatabaseError("failed to record like", err)
	}

	record, err := unmarshalAdvice(result.Attributes)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to record like", err)
	}
	return record, nil
}

// RemoveLike is the mirror write: it removes the user from the liked set
// and decrements the counter, conditional on the user still being present
func (r *AdviceRepository) RemoveLike(ctx context.Context, adviceID, userID string) (*advice.Advice, error) {
	result, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 adviceKey(adviceID),
		UpdateExpression:    aws.String("DELETE LikedBy :uset SET Likes = Likes - :one, UpdatedAt = :now"),
		ConditionExpression: aws.String("attribute_exists(PK) AND contains(LikedBy, :uid)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uset": &types.AttributeValueMemberSS{Value: []string{userID}},
			":uid":  &types.AttributeValueMemberS{Value: userID},
			":one":  &types.AttributeValueMemberN{Value: "1"},
			":now":  &types.AttributeValueMemberS{Value: utils.NowTimestamp()},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var conditionalCheckFailed *types.ConditionalCheckFailedException
		if stderrors.As(err, &conditionalCheckFailed) {
			return nil, errors.NewConflictError("advice is not liked by this user")
		}
		r.logger.Error("Failed to remove like",
			zap.Error(err),
			zap.String("adviceID", adviceID),
			zap.String("userID", userID),
		)
		return nil, errors.NewDatabaseError("failed to record unlike", err)
	}

	record, err := unmarshalAdvice(result.Attributes)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to record unlike", err)
	}
	return record, nil
}
