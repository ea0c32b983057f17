package configuration

import "time"

type MqttConfig struct {
	Enabled     bool          `json:"enabled"`
	Broker      string        `json:"broker"`
	TopicPrefix string        `json:"topicPrefix"`
	ClientID    string        `json:"clientId"`
	PublishRate time.Duration `json:"publishRate"`
}
