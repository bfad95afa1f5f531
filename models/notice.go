package models

// NoticeKind classifies a user-visible notice
type NoticeKind string

const (
	NoticeInfo    NoticeKind = "info"
	NoticeWarning NoticeKind = "warning"
	NoticeError   NoticeKind = "error"
)

// Notice is a message surfaced to the person at the terminal
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}
