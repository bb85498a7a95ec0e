package config

type CliConfig struct {
	// Directory holding the four JSON configuration documents.
	ConfigDir string `default:"config"`

	ListenAddress string `default:":8080"`

	// Address for the embedded MQTT broker. Empty disables it.
	MQTTAddress string

	LogLevel string `default:"info"`
}
