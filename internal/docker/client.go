package docker

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/docker/docker/client"
)

// Config sisältää Docker client konfiguraation
type Config struct {
	Host      string
	TLSVerify bool
	CertPath  string
	Timeout   time.Duration
	Interval  time.Duration // kuinka usein containerien tila haetaan
}

func DefaultConfig() Config {
	return Config{
		Host:     "unix:///var/run/docker.sock",
		Timeout:  30 * time.Second,
		Interval: 2 * time.Second,
	}
}

// Client wrappaa Docker API clientin ja raportoi containerien muutokset päivityksinä
type Client struct {
	api       engineAPI
	ctx       context.Context
	interval  time.Duration
	connected atomic.Bool
}

// NewClient luo uuden Docker clientin ja tarkistaa että engine vastaa
func NewClient(cfg Config) (*Client, error) {
	opts := []client.Opt{
		client.WithHost(cfg.Host),
		client.WithAPIVersionNegotiation(),
	}

	if cfg.TLSVerify {
		opts = append(opts, client.WithTLSClientConfig(
			cfg.CertPath+"/ca.pem",
			cfg.CertPath+"/cert.pem",
			cfg.CertPath+"/key.pem",
		))
	}

	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("docker client: %w", err)
	}

	c := newClient(cli, cfg.Interval)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	if err := c.Ping(ctx); err != nil {
		cli.Close()
		return nil, err
	}

	return c, nil
}

func newClient(api engineAPI, interval time.Duration) *Client {
	if interval <= 0 {
		interval = DefaultConfig().Interval
	}
	return &Client{
		api:      api,
		ctx:      context.Background(),
		interval: interval,
	}
}

// Ping tarkistaa enginen ja tallentaa tuloksen yhteyden tilaksi
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.api.Ping(ctx)
	c.connected.Store(err == nil)
	if err != nil {
		return fmt.Errorf("docker ping: %w", err)
	}
	return nil
}

// Connected kertoo onnistuiko viimeisin engine-kutsu
func (c *Client) Connected() bool {
	return c.connected.Load()
}

// Name tunnistaa lähteen
func (c *Client) Name() string {
	return "docker"
}

// Close sulkee yhteyden
func (c *Client) Close() error {
	if c.api != nil {
		return c.api.Close()
	}
	return nil
}
