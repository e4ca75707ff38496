package repository

import (
	"context"
	"fmt"
	"time"

	"laundry_desk/internal/domain/entities"
	"laundry_desk/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultOrdersActiveTable    = "orders_active"
	defaultOrdersDeliveredTable = "orders_delivered"
	defaultOrdersDeletedTable   = "orders_deleted"
)

type lineItemItem struct {
	ServiceID   string `dynamodbav:"service_id"`
	ServiceName string `dynamodbav:"service_name"`
	UnitPrice   string `dynamodbav:"unit_price"`
	PricingMode string `dynamodbav:"pricing_mode"`
	Quantity    string `dynamodbav:"quantity,omitempty"`
	Length      string `dynamodbav:"length,omitempty"`
	Width       string `dynamodbav:"width,omitempty"`
	ImageRef    string `dynamodbav:"image_ref,omitempty"`
}

type orderItem struct {
	ID            string         `dynamodbav:"id"`
	CustomerName  string         `dynamodbav:"customer_name"`
	CustomerPhone string         `dynamodbav:"customer_phone"`
	LocationRef   string         `dynamodbav:"location_ref"`
	Items         []lineItemItem `dynamodbav:"items"`
	Status        string         `dynamodbav:"status"`
	Total         string         `dynamodbav:"total"`
	CreatedAt     string         `dynamodbav:"created_at"`
	UpdatedAt     string         `dynamodbav:"updated_at"`
	ClosedAt      string         `dynamodbav:"closed_at,omitempty"`
}

// OrderDynamoRepository persists orders in one table per partition.
//
// Table requirements (all three):
//   - PK: id (string)
//
// Terminal moves use TransactWriteItems: a conditional put into the
// destination table plus a conditional delete from the active table, so an
// order is never in two tables or in none.

type OrderDynamoRepository struct {
	ddb    DynamoAPI
	tables map[entities.Partition]string
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb DynamoAPI, t Tables) *OrderDynamoRepository {
	return &OrderDynamoRepository{
		ddb: ddb,
		tables: map[entities.Partition]string{
			entities.PartitionActive:    orDefault(t.OrdersActive, defaultOrdersActiveTable),
			entities.PartitionDelivered: orDefault(t.OrdersDelivered, defaultOrdersDeliveredTable),
			entities.PartitionDeleted:   orDefault(t.OrdersDeleted, defaultOrdersDeletedTable),
		},
	}
}

func (r *OrderDynamoRepository) table(p entities.Partition) (string, error) {
	name, ok := r.tables[p]
	if !ok {
		return "", fmt.Errorf("unknown partition %q", p)
	}
	return name, nil
}

func (r *OrderDynamoRepository) Create(ctx context.Context, o entities.Order) (entities.Order, error) {
	table, err := r.table(o.Partition())
	if err != nil {
		return entities.Order{}, err
	}
	av, err := attributevalue.MarshalMap(toOrderItem(o))
	if err != nil {
		return entities.Order{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(table),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Order{}, err
	}
	return o, nil
}

func (r *OrderDynamoRepository) GetByID(ctx context.Context, partition entities.Partition, id string) (entities.Order, error) {
	table, err := r.table(partition)
	if err != nil {
		return entities.Order{}, err
	}
	it, found, err := getItem[orderItem](ctx, r.ddb, table, "id", id)
	if err != nil || !found {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

func (r *OrderDynamoRepository) ListByPartition(ctx context.Context, partition entities.Partition) ([]entities.Order, error) {
	table, err := r.table(partition)
	if err != nil {
		return nil, err
	}
	items, err := scanAll[orderItem](ctx, r.ddb, &dynamodb.ScanInput{
		TableName:      aws.String(table),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	out := make([]entities.Order, 0, len(items))
	for _, it := range items {
		out = append(out, fromOrderItem(it))
	}
	return out, nil
}

// UpdateStatus is a partial update of the active table: only status and
// updated_at change.
func (r *OrderDynamoRepository) UpdateStatus(ctx context.Context, id string, from, to entities.OrderStatus, at time.Time) (entities.Order, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tables[entities.PartitionActive]),
		Key:                 idKey("id", id),
		ConditionExpression: aws.String("attribute_exists(#id) AND #status = :from"),
		UpdateExpression:    aws.String("SET #status = :status, #updated_at = :updated_at"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":from":       &types.AttributeValueMemberS{Value: string(from)},
			":status":     &types.AttributeValueMemberS{Value: string(to)},
			":updated_at": &types.AttributeValueMemberS{Value: formatTime(at)},
		},
		ExpressionAttributeNames: mergeNames(map[string]string{
			"#status":     "status",
			"#updated_at": "updated_at",
		}, map[string]string{"#id": "id"}),
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailure(err) {
			return entities.Order{}, nil
		}
		return entities.Order{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Order{}, nil
	}
	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

func (r *OrderDynamoRepository) MoveToTerminal(ctx context.Context, o entities.Order, from entities.OrderStatus) (entities.Order, error) {
	dest := o.Partition()
	if dest == entities.PartitionActive {
		return entities.Order{}, fmt.Errorf("status %q is not terminal", o.Status)
	}
	av, err := attributevalue.MarshalMap(toOrderItem(o))
	if err != nil {
		return entities.Order{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:                aws.String(r.tables[dest]),
				Item:                     av,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			}},
			{Delete: &types.Delete{
				TableName:                aws.String(r.tables[entities.PartitionActive]),
				Key:                      idKey("id", o.ID),
				ConditionExpression:      aws.String("#status = :from"),
				ExpressionAttributeNames: map[string]string{"#status": "status"},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":from": &types.AttributeValueMemberS{Value: string(from)},
				},
			}},
		},
	})
	if err != nil {
		if isConditionFailure(err) {
			return entities.Order{}, nil
		}
		return entities.Order{}, err
	}
	return o, nil
}

func (r *OrderDynamoRepository) Purge(ctx context.Context, partition entities.Partition, id string) (bool, error) {
	table, err := r.table(partition)
	if err != nil {
		return false, err
	}
	return deleteItem(ctx, r.ddb, table, "id", id)
}

func toOrderItem(o entities.Order) orderItem {
	items := make([]lineItemItem, 0, len(o.Items))
	for _, li := range o.Items {
		items = append(items, lineItemItem{
			ServiceID:   li.ServiceID,
			ServiceName: li.ServiceName,
			UnitPrice:   li.UnitPrice.String(),
			PricingMode: string(li.PricingMode),
			Quantity:    li.Quantity,
			Length:      li.Length,
			Width:       li.Width,
			ImageRef:    li.ImageRef,
		})
	}
	it := orderItem{
		ID:            o.ID,
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		LocationRef:   o.LocationRef,
		Items:         items,
		Status:        string(o.Status),
		Total:         o.Total.String(),
		CreatedAt:     formatTime(o.CreatedAt),
		UpdatedAt:     formatTime(o.UpdatedAt),
	}
	if o.ClosedAt != nil {
		it.ClosedAt = formatTime(*o.ClosedAt)
	}
	return it
}

func fromOrderItem(it orderItem) entities.Order {
	items := make([]entities.LineItem, 0, len(it.Items))
	for _, li := range it.Items {
		mode, ok := entities.ParsePricingMode(li.PricingMode)
		if !ok {
			mode = entities.PricingMode(li.PricingMode)
		}
		items = append(items, entities.LineItem{
			ServiceID:   li.ServiceID,
			ServiceName: li.ServiceName,
			UnitPrice:   parseDecimal(li.UnitPrice),
			PricingMode: mode,
			Quantity:    li.Quantity,
			Length:      li.Length,
			Width:       li.Width,
			ImageRef:    li.ImageRef,
		})
	}
	o := entities.Order{
		ID:            it.ID,
		CustomerName:  it.CustomerName,
		CustomerPhone: it.CustomerPhone,
		LocationRef:   it.LocationRef,
		Items:         items,
		Status:        entities.OrderStatus(it.Status),
		Total:         parseDecimal(it.Total),
		CreatedAt:     parseTime(it.CreatedAt),
		UpdatedAt:     parseTime(it.UpdatedAt),
	}
	if it.ClosedAt != "" {
		closed := parseTime(it.ClosedAt)
		o.ClosedAt = &closed
	}
	return o
}
