package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// ChangePayload 集合变更事件的消息体
type ChangePayload struct {
	Table      string    `json:"table"`
	ID         int64     `json:"id"`
	Field      string    `json:"field,omitempty"`
	Value      any       `json:"value,omitempty"`
	TraceID    string    `json:"trace_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// CreatedKey / UpdatedKey 返回变更事件的 routing key
func CreatedKey(table string) string { return table + ".created" }
func UpdatedKey(table string) string { return table + ".updated" }

// InsertEventInTx 把 payload 编码为 JSON 并作为 pending 事件写入 tx。
// 事件与业务写入同提交、同回滚
func InsertEventInTx(ctx context.Context, tx pgx.Tx, repo *Repository, aggregateType string, aggregateID *int64, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", routingKey, err)
	}
	return repo.InsertEvent(ctx, tx, &Event{
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		RoutingKey:    routingKey,
		Payload:       body,
		Status:        StatusPending,
	})
}
