// Package notify publishes generated assignments to an MQTT broker, so
// station displays and home-automation setups can subscribe to the roster.
package notify

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/mbrivio/turni/core/logger"
	"github.com/mbrivio/turni/core/model"
)

// Config defines the connection parameters for the publisher.
type Config struct {
	Enabled        bool   `json:"enabled"`
	Broker         string `json:"broker"`
	ClientID       string `json:"client_id"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	Topic          string `json:"topic"`
	QoS            byte   `json:"qos"`
	Retained       bool   `json:"retained"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// SetDefaults fills unset values.
func (c *Config) SetDefaults() {
	if c.Topic == "" {
		c.Topic = "turni"
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 5
	}
}

// Validate checks the parameters needed for an enabled publisher.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Broker == "" {
		return errors.New("notify: broker is required when enabled")
	}
	return nil
}

// message is the JSON payload published per scheduled day.
type message struct {
	Date   string   `json:"date"`
	Driver string   `json:"driver,omitempty"`
	Crew   []string `json:"crew"`
}

// newClient builds the underlying paho client. Overridable in tests.
var newClient = func(opts *paho.ClientOptions) paho.Client {
	return paho.NewClient(opts)
}

// Publisher pushes assignments to the broker. It is one-shot: connect,
// publish the run, close.
type Publisher struct {
	cli     paho.Client
	cfg     Config
	timeout time.Duration
	log     logger.Logger
}

// New connects to the broker. The client id gets a random suffix so repeated
// runs never evict each other.
func New(cfg Config, log logger.Logger) (*Publisher, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "turni"
	}
	clientID = fmt.Sprintf("%s-%s", clientID, uuid.NewString()[:8])

	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(clientID).
		SetConnectTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	cli := newClient(opts)
	token := cli.Connect()
	if !token.WaitTimeout(timeout) {
		return nil, errors.New("notify: connect timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("notify: connect: %w", err)
	}
	return &Publisher{cli: cli, cfg: cfg, timeout: timeout, log: log}, nil
}

// PublishAssignments publishes one message per day under
// <topic>/<year>/<date>.
func (p *Publisher) PublishAssignments(year int, assignments []model.Assignment) error {
	for _, a := range assignments {
		payload, err := json.Marshal(message{
			Date:   a.Date.Format("2006-01-02"),
			Driver: a.Driver,
			Crew:   a.CrewMembers(),
		})
		if err != nil {
			return err
		}
		topic := fmt.Sprintf("%s/%d/%s", p.cfg.Topic, year, a.Date.Format("2006-01-02"))
		token := p.cli.Publish(topic, p.cfg.QoS, p.cfg.Retained, payload)
		if !token.WaitTimeout(p.timeout) {
			return fmt.Errorf("notify: publish timeout on %s", topic)
		}
		if err := token.Error(); err != nil {
			return fmt.Errorf("notify: publish %s: %w", topic, err)
		}
	}
	p.log.Infof("published %d assignments to %s/%d", len(assignments), p.cfg.Topic, year)
	return nil
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	p.cli.Disconnect(250)
}
