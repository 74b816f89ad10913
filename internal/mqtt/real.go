package mqtt

import (
	"fmt"
	"log"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/sweeney/lamp-controller/internal/power"
)

// BufferCapacity is how many messages are held while disconnected.
const BufferCapacity = 256

// commandQueueSize bounds the inbound command channel. Commands past
// the bound are dropped with a log line rather than blocking paho's
// router goroutine.
const commandQueueSize = 16

// RealClient publishes to and subscribes from an actual MQTT broker.
type RealClient struct {
	client   paho.Client
	commands chan Command

	mu  sync.Mutex
	buf *ringBuffer
}

// NewRealClient connects to the given broker and subscribes to the
// command topic. The subscription is re-established on every reconnect.
func NewRealClient(broker string) (*RealClient, error) {
	c := &RealClient{
		commands: make(chan Command, commandQueueSize),
		buf:      newRingBuffer(BufferCapacity),
	}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("lamp-controller").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(c.onConnect).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			log.Printf("mqtt: connection lost: %v", err)
		})

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	c.client = client
	return c, nil
}

// Commands returns the channel of parsed inbound commands.
func (c *RealClient) Commands() <-chan Command {
	return c.commands
}

// onConnect runs on every (re)connect: it restores the command
// subscription and replays messages buffered while offline.
func (c *RealClient) onConnect(client paho.Client) {
	token := client.Subscribe(TopicCommands, 1, c.handleCommand)
	if !token.WaitTimeout(5 * time.Second) {
		log.Printf("mqtt: subscribe %s timeout", TopicCommands)
	} else if err := token.Error(); err != nil {
		log.Printf("mqtt: subscribe %s: %v", TopicCommands, err)
	}

	c.mu.Lock()
	msgs := c.buf.drainAll()
	c.mu.Unlock()

	if len(msgs) > 0 {
		log.Printf("mqtt: replaying %d buffered messages", len(msgs))
	}
	for _, msg := range msgs {
		token := client.Publish(msg.topic, msg.qos, msg.retained, msg.payload)
		if !token.WaitTimeout(5 * time.Second) {
			log.Printf("mqtt: replay publish timeout on %s", msg.topic)
		} else if err := token.Error(); err != nil {
			log.Printf("mqtt: replay publish on %s: %v", msg.topic, err)
		}
	}
}

func (c *RealClient) handleCommand(_ paho.Client, msg paho.Message) {
	cmd, err := ParseCommand(msg.Payload())
	if err != nil {
		log.Printf("mqtt: ignoring bad command on %s: %v", msg.Topic(), err)
		return
	}

	select {
	case c.commands <- cmd:
	default:
		log.Printf("mqtt: command queue full, dropping %s", cmd.Action)
	}
}

// publish sends one message, buffering it instead when disconnected.
func (c *RealClient) publish(topic string, qos byte, retained bool, payload []byte) error {
	if !c.client.IsConnectionOpen() {
		c.mu.Lock()
		c.buf.push(bufferedMsg{topic: topic, payload: payload, qos: qos, retained: retained})
		n := c.buf.len()
		c.mu.Unlock()
		log.Printf("mqtt: disconnected, buffered message for %s (%d pending)", topic, n)
		return nil
	}

	token := c.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	return nil
}

// PublishState sends a state event to the MQTT broker.
func (c *RealClient) PublishState(event StateEvent) error {
	payload, err := FormatStatePayload(event)
	if err != nil {
		return fmt.Errorf("format state payload: %w", err)
	}

	// QoS 0 (at-most-once), not retained
	return c.publish(TopicEvents, 0, false, payload)
}

// PublishPower sends a power-event notification to the MQTT broker.
func (c *RealClient) PublishPower(event power.Event) error {
	payload, err := FormatPowerPayload(event)
	if err != nil {
		return fmt.Errorf("format power payload: %w", err)
	}

	// QoS 1 (at-least-once) - power events must not go missing
	return c.publish(TopicPower, 1, false, payload)
}

// PublishSystem sends a system lifecycle event to the MQTT broker.
func (c *RealClient) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}

	// QoS 1 (at-least-once) for lifecycle events - we want to ensure delivery
	return c.publish(TopicSystem, 1, event.Retained, payload)
}

// IsConnected reports whether the broker connection is open.
func (c *RealClient) IsConnected() bool {
	return c.client.IsConnectionOpen()
}

// Close disconnects from the broker.
func (c *RealClient) Close() error {
	c.client.Disconnect(1000) // 1 second timeout
	return nil
}
