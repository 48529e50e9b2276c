package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mini-ozon/internal/config"
	"github.com/mini-ozon/internal/models"
	"github.com/mini-ozon/internal/provider"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeService struct {
	name     string
	startErr error
	block    bool
	stopped  atomic.Bool
}

func (s *fakeService) Name() string { return s.name }

func (s *fakeService) Start(ctx context.Context) error {
	if s.block {
		<-ctx.Done()
		return nil
	}
	return s.startErr
}

func (s *fakeService) Stop(context.Context) error {
	s.stopped.Store(true)
	return nil
}

func TestRunnerStopsAllServicesOnFailure(t *testing.T) {
	failing := &fakeService{name: "failing", startErr: errors.New("boom")}
	blocking := &fakeService{name: "blocking", block: true}
	runner := NewRunner(failing, blocking)

	err := runner.Run(context.Background(), time.Second, nil)
	if err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
	if !failing.stopped.Load() || !blocking.stopped.Load() {
		t.Fatalf("expected every service to be stopped")
	}
}

func TestRunnerReturnsNilOnCancel(t *testing.T) {
	blocking := &fakeService{name: "blocking", block: true}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewRunner(blocking).Run(ctx, time.Second, nil); err != nil {
		t.Fatalf("expected nil on cancel, got %v", err)
	}
	if err := NewRunner().Run(context.Background(), time.Second, nil); err == nil {
		t.Fatalf("expected error for empty runner")
	}
}

func TestBuildRunnerModes(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), models.NewGormConfig(logger.Default.LogMode(logger.Silent)))
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.MigrateDB(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: "0", Mode: "debug"},
		JWT:    config.JWTConfig{SecretKey: "app-test", ExpireHours: 1},
	}
	container, err := provider.NewContainerWithDB(cfg, db, nil)
	if err != nil {
		t.Fatalf("new container failed: %v", err)
	}

	runner, err := buildRunnerWithContainer(cfg, ModeAll, container)
	if err != nil {
		t.Fatalf("build all runner failed: %v", err)
	}
	if len(runner.services) != 1 || runner.services[0].Name() != "http" {
		t.Fatalf("queue disabled should run http only, got %d services", len(runner.services))
	}
	if _, err := buildRunnerWithContainer(cfg, ModeWorker, container); err == nil {
		t.Fatalf("worker mode without queue should fail")
	}
	if _, err := BuildRunner(cfg, "cron"); err == nil {
		t.Fatalf("expected unknown mode error")
	}
}

func TestNewHTTPServiceAppliesTimeouts(t *testing.T) {
	svc := NewHTTPService(config.ServerConfig{Host: "0.0.0.0", Port: "9000", ReadTimeoutSeconds: 3}, nil)
	if svc.server.Addr != "0.0.0.0:9000" {
		t.Fatalf("unexpected addr %s", svc.server.Addr)
	}
	if svc.server.ReadTimeout != 3*time.Second || svc.server.WriteTimeout != 30*time.Second {
		t.Fatalf("unexpected timeouts %v %v", svc.server.ReadTimeout, svc.server.WriteTimeout)
	}
}
