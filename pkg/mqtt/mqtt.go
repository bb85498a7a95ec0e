package mqtt

import (
	"context"
	"encoding/json"
	"sync"

	mqttv2 "github.com/mochi-mqtt/server/v2"
	"github.com/mochi-mqtt/server/v2/hooks/auth"
	"github.com/mochi-mqtt/server/v2/listeners"
	"github.com/sze-home/controller/pkg/status"
)

// StatusTopic carries the current system snapshot.
const StatusTopic = "sze/status"

// Start runs an embedded broker so dashboards can subscribe to status
// snapshots without extra infrastructure. The broker closes when ctx is
// done.
func Start(ctx context.Context, wg *sync.WaitGroup, address string) (*mqttv2.Server, error) {
	server := mqttv2.New(&mqttv2.Options{
		InlineClient: true,
	})

	// Allow all connections.
	_ = server.AddHook(new(auth.AllowHook), nil)

	tcp := listeners.NewTCP(listeners.Config{ID: "sze", Address: address})
	err := server.AddListener(tcp)
	if err != nil {
		return nil, err
	}

	err = server.Serve()
	if err != nil {
		return nil, err
	}

	wg.Add(1)
	go func() {
		<-ctx.Done()
		server.Close()
		wg.Done()
	}()
	return server, nil
}

// PublishStatus pushes a snapshot to the status topic, retained so late
// subscribers get the current state immediately.
func PublishStatus(server *mqttv2.Server, snapshot status.SystemStatus) error {
	b, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return server.Publish(StatusTopic, b, true, 0)
}
