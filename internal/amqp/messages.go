package amqp

import (
	"encoding/json"
	"time"

	"spendlog/internal/core"
)

// EntryRecordedMessage announces one appended ledger row. It carries
// the full record so the mirror worker never has to re-read the
// ledger file for routine traffic.
type EntryRecordedMessage struct {
	Row         int64     `json:"row"`
	Date        string    `json:"date"`
	Category    string    `json:"category"`
	AmountCents int64     `json:"amount_cents"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewEntryRecordedMessage creates a message for the given ledger row.
func NewEntryRecordedMessage(row int64, r core.Record) *EntryRecordedMessage {
	return &EntryRecordedMessage{
		Row:         row,
		Date:        string(r.Date),
		Category:    r.Category,
		AmountCents: r.Amount.Cents,
		Description: r.Description,
		Timestamp:   time.Now(),
	}
}

// Record rebuilds the ledger record carried by the message.
func (m *EntryRecordedMessage) Record() core.Record {
	return core.Record{
		Date:        core.Date(m.Date),
		Category:    m.Category,
		Amount:      core.Money{Cents: m.AmountCents},
		Description: m.Description,
	}
}

// ToJSON converts the message to JSON bytes
func (m *EntryRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// EntryRecordedMessageFromJSON creates a message from JSON bytes
func EntryRecordedMessageFromJSON(data []byte) (*EntryRecordedMessage, error) {
	var msg EntryRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
