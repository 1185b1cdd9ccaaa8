package dto

// OutboundReply is the payload flowing through the delivery pipeline
// from the dialogue engine to the WhatsApp sender.
type OutboundReply struct {
	PhoneNumberId string `json:"phone_number_id"`
	To            string `json:"to"`
	Body          string `json:"body"`
}
