package amqp

import (
	"encoding/json"
	"time"

	"costmanager/internal/core"
)

// AuditMessage is one request-audit event published by a service and
// drained into the shared logs table by the audit worker.
type AuditMessage struct {
	Method    string    `json:"method"`
	URL       string    `json:"url"`
	Status    int       `json:"status"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewAuditMessage builds a message from a completed request's metadata.
func NewAuditMessage(entry core.AccessLog, requestID string) *AuditMessage {
	ts := entry.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return &AuditMessage{
		Method:    entry.Method,
		URL:       entry.URL,
		Status:    entry.Status,
		RequestID: requestID,
		Timestamp: ts,
	}
}

// AccessLog converts the message back into the storage-side record.
func (m *AuditMessage) AccessLog() core.AccessLog {
	return core.AccessLog{
		Method:    m.Method,
		URL:       m.URL,
		Status:    m.Status,
		Timestamp: m.Timestamp,
	}
}

// ToJSON converts the message to JSON bytes.
func (m *AuditMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// AuditMessageFromJSON creates a message from JSON bytes.
func AuditMessageFromJSON(data []byte) (*AuditMessage, error) {
	var msg AuditMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
