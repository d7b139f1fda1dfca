package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type ServerConfig struct {
	Port string
}

type LoggingConfig struct {
	Directory string
	Level     string
	Format    string
}

type KafkaConfig struct {
	Brokers []string
	GroupID string
	// Topics carries the change-event streams that trigger floor refreshes.
	Topics []string
}

type RESTConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SecurityConfig struct {
	JWTSecret    string
	JWTPublicKey string
}

type WebsocketConfig struct {
	SendBuffer int
}

// FloorConfig tunes the floor projection and zone registry behaviour.
type FloorConfig struct {
	// UpcomingLateMinutes is how far past a reservation's time it still counts
	// as the table's current upcoming party.
	UpcomingLateMinutes int
	// UpcomingLeadMinutes is how far ahead a reservation pulls its table into
	// the upcoming state.
	UpcomingLeadMinutes int
	// DefaultTurnTimeMinutes is the assumed table turn time. Carried for the
	// clients that display it; the status projection does not consume it.
	DefaultTurnTimeMinutes int
	// ZoneSettleDelay postpones drop-zone registration until the client's
	// layout has settled, so mid-animation bounds are not recorded.
	ZoneSettleDelay time.Duration
}

type Config struct {
	Server    ServerConfig
	Logging   LoggingConfig
	Kafka     KafkaConfig
	REST      RESTConfig
	Security  SecurityConfig
	Websocket WebsocketConfig
	Floor     FloorConfig
}

// Load reads the full configuration from the environment, applying defaults
// suitable for local development.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envOr("PORT", "8081"),
		},
		Logging: LoggingConfig{
			Directory: envOr("LOG_DIR", "./logs"),
			Level:     envOr("LOG_LEVEL", "info"),
			Format:    envOr("LOG_FORMAT", "text"),
		},
		Kafka: KafkaConfig{
			Brokers: envList("KAFKA_BROKERS", envList("KAFKA_BROKER", nil)),
			GroupID: envOr("KAFKA_GROUP_ID", "mesaya-floor"),
			Topics:  envList("KAFKA_TOPICS", []string{"mesaya.reservations.changed", "mesaya.tables.changed", "mesaya.waitlist.changed"}),
		},
		Security: SecurityConfig{
			JWTSecret:    os.Getenv("JWT_SECRET"),
			JWTPublicKey: os.Getenv("JWT_PUBLIC_KEY"),
		},
	}

	restTimeout, err := envDuration("REST_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.REST = RESTConfig{
		BaseURL: envOr("REST_BASE_URL", "http://localhost:3000"),
		Timeout: restTimeout,
	}

	sendBuffer, err := envInt("WS_SEND_BUFFER", 32)
	if err != nil {
		return nil, err
	}
	cfg.Websocket = WebsocketConfig{SendBuffer: sendBuffer}

	late, err := envInt("FLOOR_UPCOMING_LATE_MINUTES", 15)
	if err != nil {
		return nil, err
	}
	lead, err := envInt("FLOOR_UPCOMING_LEAD_MINUTES", 30)
	if err != nil {
		return nil, err
	}
	turn, err := envInt("FLOOR_DEFAULT_TURN_TIME_MINUTES", 90)
	if err != nil {
		return nil, err
	}
	settle, err := envDuration("FLOOR_ZONE_SETTLE_DELAY", 120*time.Millisecond)
	if err != nil {
		return nil, err
	}
	cfg.Floor = FloorConfig{
		UpcomingLateMinutes:    late,
		UpcomingLeadMinutes:    lead,
		DefaultTurnTimeMinutes: turn,
		ZoneSettleDelay:        settle,
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}

func envList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	if len(values) == 0 {
		return fallback
	}
	return values
}
