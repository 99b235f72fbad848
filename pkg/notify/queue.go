package notify

import (
	"encoding/json"
	"errors"

	"github.com/adjust/rmq/v5"
	"github.com/yathra/yathra/pkg/btdf"
	"github.com/yathra/yathra/pkg/redis_client"
)

// Deliveries are queued rather than sent inline so that a slow email gateway
// can never hold up a location-update response.
const QueueName = "notification-queue"

var notificationQueue rmq.Queue

func SetupQueue() error {
	queue, err := redis_client.QueueConnection.OpenQueue(QueueName)
	if err != nil {
		return err
	}

	notificationQueue = queue

	return nil
}

func PublishDelivery(delivery btdf.NotificationDelivery) error {
	if notificationQueue == nil {
		return errors.New("notification queue has not been set up")
	}

	payload, err := json.Marshal(delivery)
	if err != nil {
		return err
	}

	return notificationQueue.Publish(string(payload))
}
