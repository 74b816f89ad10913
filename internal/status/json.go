package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string     `json:"event,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	Device        string     `json:"device"`
	Level         int        `json:"level"`
	MaxLevel      int        `json:"max_level"`
	Overdriven    bool       `json:"overdriven"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	MQTT          MQTTStatus `json:"mqtt"`
	Counts        CountsJSON `json:"event_counts"`
	Config        ConfigJSON `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	Increase int `json:"increase"`
	Decrease int `json:"decrease"`
	Off      int `json:"off"`
	Full     int `json:"full"`
	Outage   int `json:"outage"`
	Surge    int `json:"surge"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	Broker      string `json:"broker"`
	HTTPPort    string `json:"http_port"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	Pin         int    `json:"pin"`
	ProfilePath string `json:"profile_path,omitempty"`
}

func buildInner(snap Snapshot) StatusInner {
	return StatusInner{
		Device:        snap.Name,
		Level:         snap.Level,
		MaxLevel:      snap.MaxLevel,
		Overdriven:    snap.Overdriven(),
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			Increase: snap.Counts.Increase,
			Decrease: snap.Counts.Decrease,
			Off:      snap.Counts.Off,
			Full:     snap.Counts.Full,
			Outage:   snap.Counts.Outage,
			Surge:    snap.Counts.Surge,
		},
		Config: ConfigJSON{
			Broker:      snap.Config.Broker,
			HTTPPort:    snap.Config.HTTPPort,
			HeartbeatMs: snap.Config.HeartbeatMs,
			Pin:         snap.Config.Pin,
			ProfilePath: snap.Config.ProfilePath,
		},
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
