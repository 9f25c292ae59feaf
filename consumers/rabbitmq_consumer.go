package consumers

import (
	"encoding/json"
	"fmt"
	"log"

	"rooms-api/repositories"

	"github.com/streadway/amqp"
)

// RoomMessage representa un mensaje sobre una publicación
type RoomMessage struct {
	Action string `json:"action"` // "create", "update", "delete", "approve", "reject"
	RoomID string `json:"room_id"`
}

// RabbitMQConsumer consume mensajes de RabbitMQ para invalidar el caché de búsquedas
// Cualquier cambio sobre una publicación deja viejas TODAS las búsquedas cacheadas
// (una búsqueda cacheada podría seguir mostrando una publicación ya rechazada)
type RabbitMQConsumer struct {
	connection *amqp.Connection
	channel    *amqp.Channel
	queueName  string
	cacheRepo  repositories.CacheRepository
}

// NewRabbitMQConsumer crea una nueva instancia de RabbitMQConsumer
func NewRabbitMQConsumer(rabbitURL, queueName string, cacheRepo repositories.CacheRepository) (*RabbitMQConsumer, error) {
	log.Printf("Connecting to RabbitMQ at %s", rabbitURL)

	// Conectar con RabbitMQ
	conn, err := amqp.Dial(rabbitURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	// Crear channel
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	// Declarar la queue
	if queueName == "" {
		queueName = "rooms_queue"
	}

	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	log.Printf("Queue '%s' declared successfully", queueName)

	return &RabbitMQConsumer{
		connection: conn,
		channel:    ch,
		queueName:  queueName,
		cacheRepo:  cacheRepo,
	}, nil
}

// Start inicia el consumo de mensajes de RabbitMQ
func (c *RabbitMQConsumer) Start() error {
	log.Printf("Starting RabbitMQ consumer for queue '%s'", c.queueName)

	// Configurar QoS para procesar un mensaje a la vez
	err := c.channel.Qos(
		1,     // prefetch count
		0,     // prefetch size
		false, // global
	)
	if err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	// Consumir mensajes de la queue
	msgs, err := c.channel.Consume(
		c.queueName, // queue
		"",          // consumer
		false,       // auto-ack (manejamos manualmente)
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	log.Printf("Consumer registered, waiting for messages...")

	// Procesar mensajes
	go func() {
		for msg := range msgs {
			c.processMessage(msg)
		}
	}()

	return nil
}

// processMessage procesa un mensaje individual
func (c *RabbitMQConsumer) processMessage(msg amqp.Delivery) {
	log.Printf("Received message: %s", string(msg.Body))

	// Deserializar JSON a RoomMessage
	var roomMsg RoomMessage
	if err := json.Unmarshal(msg.Body, &roomMsg); err != nil {
		log.Printf("Error unmarshaling message: %v", err)
		// Rechazar mensaje sin requeue si el formato es inválido
		msg.Nack(false, false)
		return
	}

	// Validar mensaje
	if roomMsg.RoomID == "" {
		log.Printf("Error: RoomID is empty in message")
		msg.Nack(false, false)
		return
	}

	switch roomMsg.Action {
	case "create", "update", "delete", "approve", "reject":
		// Todas las acciones invalidan el caché completo de búsquedas
		c.cacheRepo.Flush()
	default:
		log.Printf("Unknown action: %s", roomMsg.Action)
		msg.Nack(false, false)
		return
	}

	log.Printf("Successfully processed message: Action=%s, RoomID=%s", roomMsg.Action, roomMsg.RoomID)

	// ACK del mensaje
	if err := msg.Ack(false); err != nil {
		log.Printf("Error acknowledging message: %v", err)
	}
}

// Close cierra las conexiones de RabbitMQ
func (c *RabbitMQConsumer) Close() error {
	log.Printf("Closing RabbitMQ consumer connections")

	var errs []error

	// Cerrar channel
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing channel: %w", err))
		}
	}

	// Cerrar connection
	if c.connection != nil {
		if err := c.connection.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing connection: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing RabbitMQ consumer: %v", errs)
	}

	log.Printf("RabbitMQ consumer closed successfully")
	return nil
}
