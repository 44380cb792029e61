package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	platforms "github.com/dockhand/deployer/interfaces"
	"github.com/dockhand/deployer/models"
	"github.com/dockhand/deployer/services/deployment"
	"github.com/dockhand/deployer/services/docker"
	"github.com/dockhand/deployer/services/notify"
)

const defaultLogsPath = "/var/log/dockhand"

func loadConfiguration(path string) (models.Configuration, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return models.Configuration{}, fmt.Errorf("read config file %q: %w", path, err)
	}

	var cfg models.Configuration
	if err := json.Unmarshal(b, &cfg); err != nil {
		return models.Configuration{}, fmt.Errorf("parse config json %q: %w", path, err)
	}

	return cfg, nil
}

// platformFor resolves an application's server id to a platform, building
// one engine client per host and reusing it across applications.
func platformFor(cfg models.Configuration, serverID string, cache map[string]platforms.Platform) (platforms.Platform, error) {
	if p, ok := cache[serverID]; ok {
		return p, nil
	}

	host := ""
	if serverID != "" {
		server, ok := cfg.Servers[serverID]
		if !ok {
			return nil, fmt.Errorf("%q is not a configured server", serverID)
		}
		host = server.Host
	}

	p, err := docker.NewSwarmPlatformForHost(host, cfg.FilesPath)
	if err != nil {
		return nil, err
	}
	cache[serverID] = p
	return p, nil
}

func main() {
	configPath := flag.String("config", "/etc/dockhand/config.json", "path to the runner configuration")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if *debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	log := logrus.WithField("module", "main")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfiguration(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.LogsPath == "" {
		cfg.LogsPath = defaultLogsPath
	}

	notifier, err := notify.FromEnv()
	if err != nil {
		log.Fatal(err)
	}

	cache := make(map[string]platforms.Platform)
	failed := 0
	for _, app := range cfg.Applications {
		p, err := platformFor(cfg, app.ServerID, cache)
		if err != nil {
			log.WithField("app", app.AppName).Error(err)
			failed++
			continue
		}

		d := deployment.NewDeployer(p, cfg.LogsPath, notifier)
		if err := d.Deploy(ctx, app); err != nil {
			// Deploy already logged and recorded the failure; keep going so
			// one bad application does not block the rest.
			failed++
		}
	}

	if failed > 0 {
		log.Fatalf("%d of %d deployments failed", failed, len(cfg.Applications))
	}
}
