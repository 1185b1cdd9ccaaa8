package dto

// InboundMessage is one user turn entering the dialogue engine,
// already unwrapped from the transport envelope.
type InboundMessage struct {
	PhoneNumberId string
	From          string
	Text          string
}

// TurnResult reports what the engine decided for a turn. Reply is empty
// when the turn was dropped (no company, non-text, anti-loop).
type TurnResult struct {
	Reply      string  `json:"reply"`
	Intent     string  `json:"intent"`
	HandedOff  bool    `json:"handed_off"`
	Dropped    bool    `json:"dropped"`
	Confidence float64 `json:"confidence"`
}

// SimulateMessageRequest drives the chat flow without WhatsApp, for
// local testing and demos.
type SimulateMessageRequest struct {
	PhoneNumberId string `json:"phone_number_id" validate:"required"`
	From          string `json:"from" validate:"required"`
	Text          string `json:"text" validate:"required"`
}

// ResetSessionRequest clears one user's conversation state, including a
// hand-off, so the bot takes over again.
type ResetSessionRequest struct {
	PhoneNumberId string `json:"phone_number_id" validate:"required"`
	From          string `json:"from" validate:"required"`
}
