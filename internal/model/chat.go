package model

// ChatRequest is the body accepted by the relay endpoint.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatReply is returned on success.
type ChatReply struct {
	Reply string `json:"reply"`
}

// ChatError is returned on any 4xx/5xx.
type ChatError struct {
	Error string `json:"error"`
}

type MessageSource string

const (
	MessageSourceSystem    = MessageSource("system")
	MessageSourceUser      = MessageSource("user")
	MessageSourceAssistant = MessageSource("assistant")
)
