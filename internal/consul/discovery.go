package consul

import (
	"context"
	"fmt"
	"math/rand"
	"net"
	"strconv"

	"storefront/internal/backend"

	consulapi "github.com/hashicorp/consul/api"
)

// ServiceInstance represents a discovered service instance
type ServiceInstance struct {
	ID      string
	Name    string
	Address string
	Port    int
	Tags    []string
}

// Healthy retrieves all passing instances of a service.
func (c *Client) Healthy(ctx context.Context, serviceName string) ([]*ServiceInstance, error) {
	opts := (&consulapi.QueryOptions{}).WithContext(ctx)
	entries, _, err := c.api.Health().Service(serviceName, "", true, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to discover service %s: %w", serviceName, err)
	}
	return toInstances(entries), nil
}

func toInstances(entries []*consulapi.ServiceEntry) []*ServiceInstance {
	instances := make([]*ServiceInstance, 0, len(entries))
	for _, entry := range entries {
		instance := &ServiceInstance{
			ID:      entry.Service.ID,
			Name:    entry.Service.Service,
			Address: entry.Service.Address,
			Port:    entry.Service.Port,
			Tags:    entry.Service.Tags,
		}
		// Use node address if service address is empty
		if instance.Address == "" && entry.Node != nil {
			instance.Address = entry.Node.Address
		}
		instances = append(instances, instance)
	}
	return instances
}

// APILocator resolves the primary shop API through Consul. It implements
// backend.Locator; a lookup with no passing instance is a failed probe.
type APILocator struct {
	client  *Client
	service string
	scheme  string
	apiPath string
}

// NewAPILocator locates service, building "<scheme>://host:port<apiPath>".
func NewAPILocator(client *Client, service, scheme, apiPath string) *APILocator {
	if scheme == "" {
		scheme = "http"
	}
	return &APILocator{client: client, service: service, scheme: scheme, apiPath: apiPath}
}

// Locate implements backend.Locator using random load balancing.
func (l *APILocator) Locate(ctx context.Context) (backend.Endpoint, error) {
	instances, err := l.client.Healthy(ctx, l.service)
	if err != nil {
		return backend.Endpoint{}, err
	}
	if len(instances) == 0 {
		return backend.Endpoint{}, fmt.Errorf("no healthy instances found for service: %s", l.service)
	}
	return endpointFor(instances[rand.Intn(len(instances))], l.scheme, l.apiPath), nil
}

func endpointFor(inst *ServiceInstance, scheme, apiPath string) backend.Endpoint {
	host := scheme + "://" + net.JoinHostPort(inst.Address, strconv.Itoa(inst.Port))
	return backend.Endpoint{
		BaseURL:   host + apiPath,
		HealthURL: host + "/health",
	}
}
