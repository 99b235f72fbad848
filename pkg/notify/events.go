package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/yathra/yathra/pkg/btdf"
	"github.com/yathra/yathra/pkg/elastic_client"
)

type notificationDeliveryElasticEvent struct {
	Timestamp time.Time

	Success    bool
	FailReason string

	Type            string
	BusID           string
	DropoffLocation string
}

func recordDeliveryEvent(delivery *btdf.NotificationDelivery, success bool, failReason string) {
	currentTime := time.Now()
	yearNumber, weekNumber := currentTime.ISOWeek()
	indexName := fmt.Sprintf("notification-events-%d-%d", yearNumber, weekNumber)

	elasticEvent, _ := json.Marshal(notificationDeliveryElasticEvent{
		Timestamp: currentTime,

		Success:    success,
		FailReason: failReason,

		Type:            string(delivery.Type),
		BusID:           delivery.BusID,
		DropoffLocation: delivery.DropoffLocation,
	})

	elastic_client.IndexRequest(indexName, bytes.NewReader(elasticEvent))
}
