package bridge

import (
	"fmt"

	mochi "github.com/mochi-mqtt/server/v2"
	"github.com/mochi-mqtt/server/v2/hooks/auth"
	"github.com/mochi-mqtt/server/v2/listeners"
)

// EmbeddedBroker is an in-process MQTT broker for deployments without an
// external one. The bridge connects to it like any other broker.
type EmbeddedBroker struct {
	server *mochi.Server
}

// NewEmbeddedBroker builds a broker listening on address. A non-empty
// username restricts connections to those credentials; otherwise every
// client is accepted. The listener binds immediately, so an occupied port
// fails here rather than on Start.
func NewEmbeddedBroker(address, username, password string) (*EmbeddedBroker, error) {
	server := mochi.New(nil)

	if username != "" {
		options := auth.Options{
			Ledger: &auth.Ledger{
				Auth: auth.AuthRules{
					{Username: auth.RString(username), Password: auth.RString(password), Allow: true},
				},
				ACL: auth.ACLRules{
					{Username: auth.RString(username), Filters: auth.Filters{"#": auth.ReadWrite}},
				},
			},
		}
		if err := server.AddHook(new(auth.Hook), &options); err != nil {
			return nil, fmt.Errorf("bridge: configuring broker auth: %w", err)
		}
	} else {
		if err := server.AddHook(new(auth.AllowHook), nil); err != nil {
			return nil, fmt.Errorf("bridge: configuring broker auth: %w", err)
		}
	}

	tcp := listeners.NewTCP(listeners.Config{ID: "bridge", Address: address})
	if err := server.AddListener(tcp); err != nil {
		return nil, fmt.Errorf("bridge: binding broker listener: %w", err)
	}

	return &EmbeddedBroker{server: server}, nil
}

// Start begins accepting client connections.
func (b *EmbeddedBroker) Start() error {
	return b.server.Serve()
}

// Close shuts the broker down, disconnecting every client.
func (b *EmbeddedBroker) Close() error {
	return b.server.Close()
}
