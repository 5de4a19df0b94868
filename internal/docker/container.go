package docker

import (
	"context"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
)

// Container on containerin tila jota verrataan hakujen välillä
type Container struct {
	ID     string
	Name   string
	Image  string
	State  string
	Status string
}

// ListContainers palauttaa kaikki containerit (running + stopped)
func (c *Client) ListContainers() ([]Container, error) {
	ctx, cancel := context.WithTimeout(c.ctx, 10*time.Second)
	defer cancel()

	containers, err := c.api.ContainerList(ctx, container.ListOptions{
		All: true, // Näytä myös pysäytetyt
	})
	c.connected.Store(err == nil)
	if err != nil {
		return nil, err
	}

	result := make([]Container, 0, len(containers))
	for _, cont := range containers {
		// Poista "/" container nimen alusta jos on
		name := ""
		if len(cont.Names) > 0 {
			name = strings.TrimPrefix(cont.Names[0], "/")
		}

		id := cont.ID // Lyhyt ID
		if len(id) > 12 {
			id = id[:12]
		}

		result = append(result, Container{
			ID:     id,
			Name:   name,
			Image:  cont.Image,
			State:  cont.State,
			Status: cont.Status,
		})
	}

	return result, nil
}
