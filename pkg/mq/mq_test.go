package mq

import "testing"

// TestRoutingKey 测试路由键生成
func TestRoutingKey(t *testing.T) {
	cases := []struct {
		movementType string
		want         string
	}{
		{"INBOUND_RECEIPT", "movement.inbound_receipt"},
		{"OUTBOUND_SHIPMENT", "movement.outbound_shipment"},
		{"INTERNAL_TRANSFER", "movement.internal_transfer"},
		{"ADJUSTMENT", "movement.adjustment"},
	}

	for _, tc := range cases {
		if got := RoutingKey(tc.movementType); got != tc.want {
			t.Errorf("RoutingKey(%s)期望%s，实际%s", tc.movementType, tc.want, got)
		}
	}
}
