package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"github.com/milad/energyusage/internal/config"
	"github.com/milad/energyusage/internal/report"
)

const defaultTimeout = 10 * time.Second

// Client is the part of mqtt.Client the publisher needs.
type Client interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

type Options struct {
	TopicPrefix string
	QoS         byte
	Retain      bool
	// Timeout bounds the wait for each publish acknowledgement.
	Timeout time.Duration
}

// Publisher sends spending summaries to an MQTT broker.
type Publisher struct {
	client Client
	conn   mqtt.Client // set when the publisher owns the connection
	opts   Options
	log    *zap.Logger
}

func New(client Client, opts Options, log *zap.Logger) *Publisher {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Publisher{client: client, opts: opts, log: log.Named("publisher")}
}

// Connect dials the broker described by cfg.
func Connect(cfg config.MQTTConfig, log *zap.Logger) (*Publisher, error) {
	if cfg.Broker == "" {
		return nil, fmt.Errorf("MQTT broker address is required")
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectTimeout(defaultTimeout)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); !token.WaitTimeout(defaultTimeout) {
		return nil, fmt.Errorf("connecting to MQTT broker %s: timed out", cfg.Broker)
	} else if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connecting to MQTT broker %s: %w", cfg.Broker, err)
	}

	p := New(client, Options{
		TopicPrefix: cfg.TopicPrefix,
		QoS:         byte(cfg.QoS),
		Retain:      cfg.Retain,
	}, log)
	p.conn = client
	return p, nil
}

// Close disconnects from the broker if this publisher opened the connection.
func (p *Publisher) Close() {
	if p.conn != nil && p.conn.IsConnected() {
		p.conn.Disconnect(250)
	}
}

// PublishSummary publishes the all-time total to <prefix>/total and each
// period list to <prefix>/<period>.
func (p *Publisher) PublishSummary(ctx context.Context, s report.Summary) error {
	if err := p.publishJSON(ctx, p.topic("total"), s.Total); err != nil {
		return err
	}

	names := make([]string, 0, len(s.Periods))
	for name := range s.Periods {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := p.publishJSON(ctx, p.topic(name), s.Periods[name]); err != nil {
			return err
		}
	}

	p.log.Info("published spending summary",
		zap.String("total", s.Total.Usage),
		zap.Int("periods", len(names)),
	)
	return nil
}

func (p *Publisher) topic(name string) string {
	return p.opts.TopicPrefix + "/" + name
}

func (p *Publisher) publishJSON(ctx context.Context, topic string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding payload for %s: %w", topic, err)
	}

	token := p.client.Publish(topic, p.opts.QoS, p.opts.Retain, payload)
	if !token.WaitTimeout(p.opts.Timeout) {
		return fmt.Errorf("publishing to %s: timed out after %s", topic, p.opts.Timeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publishing to %s: %w", topic, err)
	}
	p.log.Debug("published", zap.String("topic", topic), zap.Int("bytes", len(payload)))
	return nil
}
