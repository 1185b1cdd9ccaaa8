package dto

// WebhookPayload mirrors the Meta Cloud API event envelope. Only the
// fields the router reads are mapped.
type WebhookPayload struct {
	Entry []WebhookEntry `json:"entry"`
}

type WebhookEntry struct {
	Changes []WebhookChange `json:"changes"`
}

type WebhookChange struct {
	Value WebhookValue `json:"value"`
}

type WebhookValue struct {
	Metadata WebhookMetadata  `json:"metadata"`
	Messages []WebhookMessage `json:"messages"`
}

type WebhookMetadata struct {
	PhoneNumberId string `json:"phone_number_id"`
}

type WebhookMessage struct {
	From string       `json:"from"`
	Type string       `json:"type"`
	Text *WebhookText `json:"text,omitempty"`
}

type WebhookText struct {
	Body string `json:"body"`
}

// FirstMessage digs out the first text message and its business phone
// number id. ok is false for statuses, media and other non-text events.
func (p *WebhookPayload) FirstMessage() (phoneNumberId, from, body string, ok bool) {
	if len(p.Entry) == 0 || len(p.Entry[0].Changes) == 0 {
		return "", "", "", false
	}
	value := p.Entry[0].Changes[0].Value
	if value.Metadata.PhoneNumberId == "" || len(value.Messages) == 0 {
		return "", "", "", false
	}
	msg := value.Messages[0]
	if msg.Text == nil {
		return "", "", "", false
	}
	return value.Metadata.PhoneNumberId, msg.From, msg.Text.Body, true
}
