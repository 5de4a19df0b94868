// Package source provides the producers that feed updates to the host.
package source

import (
	"fmt"
	"io"
	"os"

	"github.com/rusenback/updatepanel/internal/config"
	"github.com/rusenback/updatepanel/internal/docker"
	"github.com/rusenback/updatepanel/internal/model"
)

// Source produces updates. Stream starts producing and returns the update
// channel, an error channel and a cancel func; both channels are closed
// once the producer stops.
type Source interface {
	Name() string
	Stream() (<-chan model.Update, <-chan error, func())
	Connected() bool
}

var (
	_ Source = (*docker.Client)(nil)
	_ Source = (*WebSocket)(nil)
	_ Source = (*JSONLines)(nil)
	_ Source = (*Demo)(nil)
)

// New builds the source selected in cfg. The returned closer releases
// whatever the source holds open and is never nil.
func New(cfg config.Config) (Source, io.Closer, error) {
	switch cfg.Source.Kind {
	case "docker":
		dcfg := docker.DefaultConfig()
		dcfg.Host = cfg.Docker.Host
		if cfg.Docker.Timeout > 0 {
			dcfg.Timeout = cfg.Docker.Timeout
		}
		if cfg.Docker.Interval > 0 {
			dcfg.Interval = cfg.Docker.Interval
		}
		client, err := docker.NewClient(dcfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to docker: %w", err)
		}
		return client, client, nil

	case "websocket":
		return NewWebSocket(cfg.Source.URL), nopCloser{}, nil

	case "jsonl":
		if cfg.Source.Path == "" || cfg.Source.Path == "-" {
			return NewJSONLines("stdin", os.Stdin), nopCloser{}, nil
		}
		f, err := os.Open(cfg.Source.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open update file: %w", err)
		}
		return NewJSONLines(cfg.Source.Path, f), f, nil

	case "demo":
		return NewDemo(0), nopCloser{}, nil

	default:
		return nil, nil, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
