package nats

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	// ContactSend ist das Request-Subject, auf dem der Worker antwortet.
	ContactSend = "CONTACT.send"
	// WorkerQueue verteilt Requests auf alle laufenden Worker.
	WorkerQueue = "CONTACT_WORKER"
)

// Connect öffnet eine NATS-Verbindung, die sich bei Abbrüchen selbst neu verbindet.
func Connect(natsURL, name string) (*nats.Conn, error) {
	nc, err := nats.Connect(natsURL,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("error connecting to NATS at %s: %w", natsURL, err)
	}
	return nc, nil
}
