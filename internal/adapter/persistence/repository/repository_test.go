package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"laundry_desk/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDynamo records the last request of each kind and answers with the
// configured outputs.
type fakeDynamo struct {
	get      *dynamodb.GetItemOutput
	update   *dynamodb.UpdateItemOutput
	scan     []*dynamodb.ScanOutput
	err      error
	lastPut  *dynamodb.PutItemInput
	lastUpd  *dynamodb.UpdateItemInput
	lastTx   *dynamodb.TransactWriteItemsInput
	lastScan []*dynamodb.ScanInput
}

func (f *fakeDynamo) GetItem(_ context.Context, _ *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.get == nil {
		return &dynamodb.GetItemOutput{}, f.err
	}
	return f.get, f.err
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.lastPut = in
	return &dynamodb.PutItemOutput{}, f.err
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.lastUpd = in
	if f.update == nil {
		return &dynamodb.UpdateItemOutput{}, f.err
	}
	return f.update, f.err
}

func (f *fakeDynamo) DeleteItem(_ context.Context, _ *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	return &dynamodb.DeleteItemOutput{}, f.err
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.lastScan = append(f.lastScan, in)
	if len(f.scan) == 0 {
		return &dynamodb.ScanOutput{}, f.err
	}
	out := f.scan[0]
	f.scan = f.scan[1:]
	return out, f.err
}

func (f *fakeDynamo) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.lastTx = in
	return &dynamodb.TransactWriteItemsOutput{}, f.err
}

func sampleOrder() entities.Order {
	created := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	closed := created.Add(2 * time.Hour)
	return entities.Order{
		ID:            "o1",
		CustomerName:  "Amina",
		CustomerPhone: "0550123456",
		LocationRef:   "https://www.google.com/maps?q=36.75,3.06",
		Items: []entities.LineItem{
			{ServiceID: "s1", ServiceName: "Shirt", UnitPrice: decimal.RequireFromString("150.5"), PricingMode: entities.PricingModePerUnit, Quantity: "2"},
			{ServiceID: "s2", ServiceName: "Rug", UnitPrice: decimal.NewFromInt(50), PricingMode: entities.PricingModePerArea, Length: "2.5", Width: "3"},
		},
		Status:    entities.OrderStatusDelivered,
		Total:     decimal.RequireFromString("676"),
		CreatedAt: created,
		UpdatedAt: closed,
		ClosedAt:  &closed,
	}
}

func TestOrderItemKeepsExactValues(t *testing.T) {
	o := sampleOrder()
	back := fromOrderItem(toOrderItem(o))

	assert.Equal(t, o.ID, back.ID)
	assert.True(t, o.Total.Equal(back.Total))
	assert.True(t, back.Items[0].UnitPrice.Equal(decimal.RequireFromString("150.5")))
	assert.Equal(t, "2.5", back.Items[1].Length)
	require.NotNil(t, back.ClosedAt)
	assert.True(t, o.ClosedAt.Equal(*back.ClosedAt))
}

func TestLegacyPricingModeIsNormalised(t *testing.T) {
	it := toOrderItem(sampleOrder())
	it.Items[1].PricingMode = "perSquareMeter"
	assert.Equal(t, entities.PricingModePerArea, fromOrderItem(it).Items[1].PricingMode)

	svc := fromServiceItem(serviceItem{ID: "s", Price: "10", PricingMode: "perPiece"})
	assert.Equal(t, entities.PricingModePerUnit, svc.PricingMode)
}

func TestOrderDynamoRepository_MoveToTerminal(t *testing.T) {
	t.Run("writes put and delete in one transaction", func(t *testing.T) {
		f := &fakeDynamo{}
		repo := NewOrderDynamoRepository(f, Tables{OrdersDelivered: "custom_delivered"})

		moved, err := repo.MoveToTerminal(context.Background(), sampleOrder(), entities.OrderStatusReady)
		require.NoError(t, err)
		assert.Equal(t, "o1", moved.ID)

		require.NotNil(t, f.lastTx)
		require.Len(t, f.lastTx.TransactItems, 2)
		put, del := f.lastTx.TransactItems[0].Put, f.lastTx.TransactItems[1].Delete
		require.NotNil(t, put)
		require.NotNil(t, del)
		assert.Equal(t, "custom_delivered", aws.ToString(put.TableName))
		assert.Equal(t, "orders_active", aws.ToString(del.TableName))
		assert.Equal(t, "#status = :from", aws.ToString(del.ConditionExpression))
		assert.Equal(t, &types.AttributeValueMemberS{Value: "Ready"}, del.ExpressionAttributeValues[":from"])
	})

	t.Run("cancelled transaction reports a lost race", func(t *testing.T) {
		f := &fakeDynamo{err: &types.TransactionCanceledException{
			CancellationReasons: []types.CancellationReason{{Code: aws.String("None")}, {Code: aws.String("ConditionalCheckFailed")}},
		}}
		repo := NewOrderDynamoRepository(f, Tables{})

		moved, err := repo.MoveToTerminal(context.Background(), sampleOrder(), entities.OrderStatusReady)
		require.NoError(t, err)
		assert.Empty(t, moved.ID)
	})

	t.Run("other failures surface", func(t *testing.T) {
		f := &fakeDynamo{err: errors.New("throttled")}
		repo := NewOrderDynamoRepository(f, Tables{})

		_, err := repo.MoveToTerminal(context.Background(), sampleOrder(), entities.OrderStatusReady)
		assert.Error(t, err)
	})

	t.Run("active status is refused", func(t *testing.T) {
		repo := NewOrderDynamoRepository(&fakeDynamo{}, Tables{})
		o := sampleOrder()
		o.Status = entities.OrderStatusReady
		_, err := repo.MoveToTerminal(context.Background(), o, entities.OrderStatusWaiting)
		assert.Error(t, err)
	})
}

func TestOrderDynamoRepository_UpdateStatus(t *testing.T) {
	t.Run("condition failure returns zero order", func(t *testing.T) {
		f := &fakeDynamo{err: &types.ConditionalCheckFailedException{}}
		repo := NewOrderDynamoRepository(f, Tables{})

		o, err := repo.UpdateStatus(context.Background(), "o1", entities.OrderStatusNew, entities.OrderStatusWaiting, time.Now())
		require.NoError(t, err)
		assert.Empty(t, o.ID)
		assert.Equal(t, "attribute_exists(#id) AND #status = :from", aws.ToString(f.lastUpd.ConditionExpression))
	})

	t.Run("returns updated item", func(t *testing.T) {
		o := sampleOrder()
		o.Status = entities.OrderStatusWaiting
		o.ClosedAt = nil
		av, err := attributevalue.MarshalMap(toOrderItem(o))
		require.NoError(t, err)
		f := &fakeDynamo{update: &dynamodb.UpdateItemOutput{Attributes: av}}
		repo := NewOrderDynamoRepository(f, Tables{})

		got, err := repo.UpdateStatus(context.Background(), "o1", entities.OrderStatusNew, entities.OrderStatusWaiting, time.Now())
		require.NoError(t, err)
		assert.Equal(t, entities.OrderStatusWaiting, got.Status)
		assert.Len(t, got.Items, 2)
	})
}

func TestOrderDynamoRepository_ListByPartitionPages(t *testing.T) {
	page := func(id string, last bool) *dynamodb.ScanOutput {
		o := sampleOrder()
		o.ID = id
		av, _ := attributevalue.MarshalMap(toOrderItem(o))
		out := &dynamodb.ScanOutput{Items: []map[string]types.AttributeValue{av}}
		if !last {
			out.LastEvaluatedKey = idKey("id", id)
		}
		return out
	}
	f := &fakeDynamo{scan: []*dynamodb.ScanOutput{page("a", false), page("b", true)}}
	repo := NewOrderDynamoRepository(f, Tables{})

	orders, err := repo.ListByPartition(context.Background(), entities.PartitionDelivered)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Len(t, f.lastScan, 2)
	assert.Equal(t, "orders_delivered", aws.ToString(f.lastScan[0].TableName))
}

func TestCostDynamoRepository_ListBetween(t *testing.T) {
	f := &fakeDynamo{}
	repo := NewCostDynamoRepository(f, Tables{})

	_, err := repo.ListBetween(context.Background(), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, f.lastScan, 1)
	in := f.lastScan[0]
	assert.Equal(t, "#date BETWEEN :from AND :to", aws.ToString(in.FilterExpression))
	assert.Equal(t, &types.AttributeValueMemberS{Value: "2024-03-01"}, in.ExpressionAttributeValues[":from"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "2024-03-31"}, in.ExpressionAttributeValues[":to"])
}

func TestServiceDynamoRepository_UpdateMissing(t *testing.T) {
	f := &fakeDynamo{err: &types.ConditionalCheckFailedException{}}
	repo := NewServiceDynamoRepository(f, Tables{})

	svc, err := repo.Update(context.Background(), entities.Service{ID: "missing", Price: decimal.NewFromInt(1)})
	require.NoError(t, err)
	assert.Empty(t, svc.ID)
	assert.Equal(t, "attribute_exists(#id)", aws.ToString(f.lastPut.ConditionExpression))
}
