package events

import (
	"time"

	"github.com/spec-kit/account-service/internal/domain"
)

// Event is a security-relevant occurrence emitted by the services and
// consumed by the audit worker.
type Event struct {
	ID        string                `json:"id"`
	Action    domain.SecurityAction `json:"action"`
	Subject   string                `json:"subject"`
	Object    string                `json:"object"`
	Path      string                `json:"path"`
	Timestamp time.Time             `json:"timestamp"`
}

// AnonymousSubject is recorded when no authenticated principal exists.
const AnonymousSubject = "Anonymous"
