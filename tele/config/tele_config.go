// Separate package is workaround to import cycles.
package tele_config

type Config struct { //nolint:maligned
	Enabled          bool   `hcl:"enable"`
	DeviceId         int    `hcl:"device_id"`
	LogDebug         bool   `hcl:"log_debug"`
	KeepaliveSec     int    `hcl:"keepalive_sec"`
	MqttBroker       string `hcl:"mqtt_broker"`
	MqttPassword     string `hcl:"mqtt_password"` // secret
	PingTimeoutSec   int    `hcl:"ping_timeout_sec"`
	StateIntervalSec int    `hcl:"state_interval_sec"`
	StorePath        string `hcl:"store_path"`

	PersistPath  string                       `hcl:"-"`
	BuildVersion string                       `hcl:"-"`
	OnCommand    func(map[string]string) bool `hcl:"-"`
}
