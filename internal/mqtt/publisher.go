package mqtt

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"skycast/internal/forecast"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

type Publisher struct {
	client      mqtt.Client
	topicPrefix string
	enabled     bool
}

type PublisherConfig struct {
	Broker      string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
	Enabled     bool
}

func NewPublisher(cfg PublisherConfig) (*Publisher, error) {
	if !cfg.Enabled {
		return &Publisher{enabled: false}, nil
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetConnectionLostHandler(func(c mqtt.Client, err error) {
			log.Printf("MQTT connection lost: %v", err)
		}).
		SetOnConnectHandler(func(c mqtt.Client) {
			log.Println("MQTT connected")
		})

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	return &Publisher{
		client:      client,
		topicPrefix: cfg.TopicPrefix,
		enabled:     true,
	}, nil
}

// Publish pushes the current conditions per-topic and the full report as a
// retained JSON status.
func (p *Publisher) Publish(r *forecast.Report) error {
	if !p.enabled || r == nil {
		return nil
	}

	topics := map[string]interface{}{
		"temperature": r.Current.Temperature,
		"feels_like":  r.Current.FeelsLike,
		"humidity":    r.Current.Humidity,
		"wind_speed":  r.Current.WindSpeed,
		"condition":   r.Current.Condition,
		"uv_index":    r.Current.UVIndex.Label,
		"pm2_5":       r.AirQuality.PM25.Label,
		"dust":        r.AirQuality.Dust,
	}

	for name, value := range topics {
		topic := fmt.Sprintf("%s/%s/%s", p.topicPrefix, r.Location.Name, name)
		payload := fmt.Sprintf("%v", value)
		token := p.client.Publish(topic, 0, false, payload)
		token.Wait()
		if token.Error() != nil {
			log.Printf("Failed to publish to %s: %v", topic, token.Error())
		}
	}

	statusJSON, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	statusTopic := fmt.Sprintf("%s/%s/report", p.topicPrefix, r.Location.Name)
	token := p.client.Publish(statusTopic, 0, true, statusJSON)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("failed to publish report: %w", token.Error())
	}

	return nil
}

// PublishHomeAssistantDiscovery announces the weather sensors so Home
// Assistant picks them up automatically.
func (p *Publisher) PublishHomeAssistantDiscovery(locationName string) error {
	if !p.enabled {
		return nil
	}

	sensors := []struct {
		Name       string
		ID         string
		StateTopic string
	}{
		{"Temperature", "temperature", "temperature"},
		{"Feels Like", "feels_like", "feels_like"},
		{"Humidity", "humidity", "humidity"},
		{"Wind Speed", "wind_speed", "wind_speed"},
		{"Condition", "condition", "condition"},
		{"UV Index", "uv_index", "uv_index"},
		{"PM2.5", "pm2_5", "pm2_5"},
		{"Dust", "dust", "dust"},
	}

	for _, sensor := range sensors {
		discoveryTopic := fmt.Sprintf("homeassistant/sensor/skycast/%s/config", sensor.ID)

		config := map[string]interface{}{
			"name":        fmt.Sprintf("Skycast %s", sensor.Name),
			"unique_id":   fmt.Sprintf("skycast_%s", sensor.ID),
			"state_topic": fmt.Sprintf("%s/%s/%s", p.topicPrefix, locationName, sensor.StateTopic),
			"device": map[string]interface{}{
				"identifiers":  []string{"skycast"},
				"name":         "Skycast",
				"manufacturer": "Skycast",
			},
		}

		payload, _ := json.Marshal(config)
		token := p.client.Publish(discoveryTopic, 0, true, payload)
		token.Wait()
	}

	return nil
}

func (p *Publisher) IsConnected() bool {
	if !p.enabled {
		return false
	}
	return p.client.IsConnected()
}

func (p *Publisher) Close() {
	if p.enabled && p.client != nil {
		p.client.Disconnect(1000)
	}
}
