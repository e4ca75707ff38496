package repository

import (
	"context"

	"laundry_desk/internal/domain/entities"
	"laundry_desk/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const defaultServicesTable = "services"

type serviceItem struct {
	ID          string `dynamodbav:"id"`
	Name        string `dynamodbav:"name"`
	Price       string `dynamodbav:"price"`
	PricingMode string `dynamodbav:"pricing_mode"`
	ImageRef    string `dynamodbav:"image_ref,omitempty"`
	ImageKey    string `dynamodbav:"image_key,omitempty"`
	CreatedAt   string `dynamodbav:"created_at"`
	UpdatedAt   string `dynamodbav:"updated_at"`
}

// ServiceDynamoRepository persists the catalog.
//
// Table requirements:
//   - PK: id (string)

type ServiceDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IServiceRepository = (*ServiceDynamoRepository)(nil)

func NewServiceDynamoRepository(ddb DynamoAPI, t Tables) *ServiceDynamoRepository {
	return &ServiceDynamoRepository{
		ddb:       ddb,
		tableName: orDefault(t.Services, defaultServicesTable),
	}
}

func (r *ServiceDynamoRepository) put(ctx context.Context, s entities.Service, condition string) error {
	av, err := attributevalue.MarshalMap(toServiceItem(s))
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

func (r *ServiceDynamoRepository) Create(ctx context.Context, s entities.Service) (entities.Service, error) {
	if err := r.put(ctx, s, "attribute_not_exists(#id)"); err != nil {
		return entities.Service{}, err
	}
	return s, nil
}

// Update replaces the whole record of an existing service.
func (r *ServiceDynamoRepository) Update(ctx context.Context, s entities.Service) (entities.Service, error) {
	if err := r.put(ctx, s, "attribute_exists(#id)"); err != nil {
		if isConditionFailure(err) {
			return entities.Service{}, nil
		}
		return entities.Service{}, err
	}
	return s, nil
}

func (r *ServiceDynamoRepository) GetByID(ctx context.Context, id string) (entities.Service, error) {
	it, found, err := getItem[serviceItem](ctx, r.ddb, r.tableName, "id", id)
	if err != nil || !found {
		return entities.Service{}, err
	}
	return fromServiceItem(it), nil
}

func (r *ServiceDynamoRepository) List(ctx context.Context) ([]entities.Service, error) {
	items, err := scanAll[serviceItem](ctx, r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
	if err != nil {
		return nil, err
	}
	out := make([]entities.Service, 0, len(items))
	for _, it := range items {
		out = append(out, fromServiceItem(it))
	}
	return out, nil
}

func (r *ServiceDynamoRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteItem(ctx, r.ddb, r.tableName, "id", id)
}

func toServiceItem(s entities.Service) serviceItem {
	return serviceItem{
		ID:          s.ID,
		Name:        s.Name,
		Price:       s.Price.String(),
		PricingMode: string(s.PricingMode),
		ImageRef:    s.ImageRef,
		ImageKey:    s.ImageKey,
		CreatedAt:   formatTime(s.CreatedAt),
		UpdatedAt:   formatTime(s.UpdatedAt),
	}
}

func fromServiceItem(it serviceItem) entities.Service {
	mode, ok := entities.ParsePricingMode(it.PricingMode)
	if !ok {
		mode = entities.PricingMode(it.PricingMode)
	}
	return entities.Service{
		ID:          it.ID,
		Name:        it.Name,
		Price:       parseDecimal(it.Price),
		PricingMode: mode,
		ImageRef:    it.ImageRef,
		ImageKey:    it.ImageKey,
		CreatedAt:   parseTime(it.CreatedAt),
		UpdatedAt:   parseTime(it.UpdatedAt),
	}
}
