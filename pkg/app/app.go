package app

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	mqttv2 "github.com/mochi-mqtt/server/v2"
	"github.com/sirupsen/logrus"
	"github.com/sze-home/controller/pkg/config"
	"github.com/sze-home/controller/pkg/manager"
	"github.com/sze-home/controller/pkg/mqtt"
	"github.com/sze-home/controller/pkg/webserver"
)

type App struct {
	wg      *sync.WaitGroup
	config  *config.CliConfig
	manager *manager.Manager
	broker  *mqttv2.Server
	httpSrv *http.Server
}

func New(config *config.CliConfig) *App {
	return &App{
		wg:     &sync.WaitGroup{},
		config: config,
	}
}

func (a *App) Start(ctx context.Context) error {
	store := config.NewStore(a.config.ConfigDir)
	if !store.ReloadAll() {
		logrus.Warn("app: not all configuration documents loaded, continuing with partial data")
	}
	a.manager = manager.New(store, nil)

	if a.config.MQTTAddress != "" {
		broker, err := mqtt.Start(ctx, a.wg, a.config.MQTTAddress)
		if err != nil {
			return err
		}
		a.broker = broker
		a.publishStatus()
	}

	a.httpSrv = &http.Server{
		Addr:    a.config.ListenAddress,
		Handler: webserver.New(a.manager).Handler(),
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		logrus.Infof("app: http api listening on %s", a.config.ListenAddress)
		err := a.httpSrv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Error(err)
		}
	}()

	a.wg.Add(1)
	go a.refreshLoop(ctx)
	return nil
}

func (a *App) Wait() {
	a.wg.Wait()
}

// refreshLoop re-reads configuration and recomputes the snapshot at every
// quarter-hour mark, when tariff bands and daily windows can change.
func (a *App) refreshLoop(ctx context.Context) {
	defer a.wg.Done()
	delay := nextDelay()
	timer := time.NewTimer(delay)
	logrus.Debug("app: scheduling first refresh in ", delay)
	for {
		select {
		case <-timer.C:
			a.manager.Refresh()
			a.publishStatus()
			timer.Reset(nextDelay())
		case <-ctx.Done():
			a.httpSrv.Close()
			return
		}
	}
}

func (a *App) publishStatus() {
	if a.broker == nil {
		return
	}
	err := mqtt.PublishStatus(a.broker, a.manager.Status())
	if err != nil {
		logrus.Errorf("app: publishing status: %v", err)
	}
}
