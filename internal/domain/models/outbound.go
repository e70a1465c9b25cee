package models

// OutboundMessageRequest is a text message for a single WhatsApp recipient.
type OutboundMessageRequest struct {
	To         string
	Message    string
	PreviewURL bool
}
