package repository

import (
	"context"
	"time"

	"laundry_desk/internal/domain/entities"
	"laundry_desk/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultCostsTable  = "costs"
	defaultAdminsTable = "admins"
)

type costItem struct {
	ID         string `dynamodbav:"id"`
	Name       string `dynamodbav:"name"`
	Price      string `dynamodbav:"price"`
	Date       string `dynamodbav:"date"`
	ReportedBy string `dynamodbav:"reported_by"`
	CreatedAt  string `dynamodbav:"created_at"`
}

// CostDynamoRepository persists expense entries.
//
// Table requirements:
//   - PK: id (string)
//
// date is stored as YYYY-MM-DD so range filters compare lexically.

type CostDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.ICostRepository = (*CostDynamoRepository)(nil)

func NewCostDynamoRepository(ddb DynamoAPI, t Tables) *CostDynamoRepository {
	return &CostDynamoRepository{
		ddb:       ddb,
		tableName: orDefault(t.Costs, defaultCostsTable),
	}
}

func (r *CostDynamoRepository) put(ctx context.Context, c entities.Cost, condition string) error {
	av, err := attributevalue.MarshalMap(toCostItem(c))
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String(condition),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	return err
}

func (r *CostDynamoRepository) Create(ctx context.Context, c entities.Cost) (entities.Cost, error) {
	if err := r.put(ctx, c, "attribute_not_exists(#id)"); err != nil {
		return entities.Cost{}, err
	}
	return c, nil
}

func (r *CostDynamoRepository) Update(ctx context.Context, c entities.Cost) (entities.Cost, error) {
	if err := r.put(ctx, c, "attribute_exists(#id)"); err != nil {
		if isConditionFailure(err) {
			return entities.Cost{}, nil
		}
		return entities.Cost{}, err
	}
	return c, nil
}

func (r *CostDynamoRepository) GetByID(ctx context.Context, id string) (entities.Cost, error) {
	it, found, err := getItem[costItem](ctx, r.ddb, r.tableName, "id", id)
	if err != nil || !found {
		return entities.Cost{}, err
	}
	return fromCostItem(it), nil
}

func (r *CostDynamoRepository) List(ctx context.Context) ([]entities.Cost, error) {
	return r.scan(ctx, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
}

func (r *CostDynamoRepository) ListBetween(ctx context.Context, from, to time.Time) ([]entities.Cost, error) {
	return r.scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("#date BETWEEN :from AND :to"),
		ExpressionAttributeNames: map[string]string{
			"#date": "date",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":from": &types.AttributeValueMemberS{Value: from.Format(dateLayout)},
			":to":   &types.AttributeValueMemberS{Value: to.Format(dateLayout)},
		},
	})
}

func (r *CostDynamoRepository) scan(ctx context.Context, in *dynamodb.ScanInput) ([]entities.Cost, error) {
	items, err := scanAll[costItem](ctx, r.ddb, in)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Cost, 0, len(items))
	for _, it := range items {
		out = append(out, fromCostItem(it))
	}
	return out, nil
}

func (r *CostDynamoRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteItem(ctx, r.ddb, r.tableName, "id", id)
}

func toCostItem(c entities.Cost) costItem {
	return costItem{
		ID:         c.ID,
		Name:       c.Name,
		Price:      c.Price.String(),
		Date:       c.Date.Format(dateLayout),
		ReportedBy: c.ReportedBy,
		CreatedAt:  formatTime(c.CreatedAt),
	}
}

func fromCostItem(it costItem) entities.Cost {
	date, _ := time.Parse(dateLayout, it.Date)
	return entities.Cost{
		ID:         it.ID,
		Name:       it.Name,
		Price:      parseDecimal(it.Price),
		Date:       date,
		ReportedBy: it.ReportedBy,
		CreatedAt:  parseTime(it.CreatedAt),
	}
}

type adminItem struct {
	Key       string `dynamodbav:"key"`
	Name      string `dynamodbav:"name"`
	FullToken string `dynamodbav:"full_token"`
	CreatedAt string `dynamodbav:"created_at"`
}

// AdminDynamoRepository maps device keys to staff names.
//
// Table requirements:
//   - PK: key (string)

type AdminDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IAdminRepository = (*AdminDynamoRepository)(nil)

func NewAdminDynamoRepository(ddb DynamoAPI, t Tables) *AdminDynamoRepository {
	return &AdminDynamoRepository{
		ddb:       ddb,
		tableName: orDefault(t.Admins, defaultAdminsTable),
	}
}

func (r *AdminDynamoRepository) GetByKey(ctx context.Context, key string) (entities.AdminIdentity, error) {
	it, found, err := getItem[adminItem](ctx, r.ddb, r.tableName, "key", key)
	if err != nil || !found {
		return entities.AdminIdentity{}, err
	}
	return entities.AdminIdentity{
		Key:       it.Key,
		Name:      it.Name,
		FullToken: it.FullToken,
		CreatedAt: parseTime(it.CreatedAt),
	}, nil
}

func (r *AdminDynamoRepository) Put(ctx context.Context, a entities.AdminIdentity) (entities.AdminIdentity, error) {
	av, err := attributevalue.MarshalMap(adminItem{
		Key:       a.Key,
		Name:      a.Name,
		FullToken: a.FullToken,
		CreatedAt: formatTime(a.CreatedAt),
	})
	if err != nil {
		return entities.AdminIdentity{}, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return entities.AdminIdentity{}, err
	}
	return a, nil
}
