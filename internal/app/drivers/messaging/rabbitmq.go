package messaging

import (
	"fmt"
	"homevisit-service/internal/app/config"
	"log"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

const connectionName = "homevisit-service"

// NewRabbitMQ dials the broker with a named connection so it is identifiable
// in the management UI.
func NewRabbitMQ(driverConfig *config.DriverConfig) *amqp091.Connection {
	rabbitConfig := driverConfig.RabbitMQ
	url := fmt.Sprintf(
		"amqp://%s:%s@%s:%s/%s",
		rabbitConfig.Username,
		rabbitConfig.Password,
		rabbitConfig.Host,
		rabbitConfig.Port,
		rabbitConfig.VHost,
	)

	properties := amqp091.NewConnectionProperties()
	properties.SetClientConnectionName(connectionName)

	conn, err := amqp091.DialConfig(url, amqp091.Config{
		Heartbeat:  time.Duration(rabbitConfig.HeartbeatInSeconds) * time.Second,
		Locale:     "en_US",
		Properties: properties,
	})
	if err != nil {
		log.Fatalf("Failed to connect to rabbitMQ at %s:%s: %s", rabbitConfig.Host, rabbitConfig.Port, err.Error())
	}
	log.Println("Successfully connected to rabbitMQ")
	return conn
}
