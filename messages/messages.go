package messages

import (
	"encoding/json"
	"fmt"
)

type MessageType string

const (
	TypeInfo  MessageType = "INFO"
	TypeError MessageType = "ERROR"
)

// Message is the envelope returned by the Ajax endpoints.
type Message struct {
	Type MessageType `json:"type"`
	Text string      `json:"text"`
}

func Info(text string) Message {
	return Message{Type: TypeInfo, Text: text}
}

func Error(text string) Message {
	return Message{Type: TypeError, Text: text}
}

func Errorf(format string, args ...any) Message {
	return Error(fmt.Sprintf(format, args...))
}

// MovePayload is the body of a validateMove request.
type MovePayload struct {
	PieceID string `json:"piece_id"`
	From    string `json:"from"`
	To      string `json:"to"`
}

// Event is the envelope pushed over the spectator websocket feed.
type Event[T any] struct {
	Command string `json:"command"`
	Value   T      `json:"value,omitempty"`
}

func NewEvent[T any](command string, value T) ([]byte, error) {
	if _, ok := validCommands[command]; !ok {
		return nil, fmt.Errorf("invalid command: %s", command)
	}
	return json.Marshal(Event[T]{Command: command, Value: value})
}

func DecodeEvent[T any](data []byte) (*Event[T], error) {
	var event Event[T]
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("invalid event format: %w", err)
	}
	if _, ok := validCommands[event.Command]; !ok {
		return nil, fmt.Errorf("invalid command: %s", event.Command)
	}
	return &event, nil
}
