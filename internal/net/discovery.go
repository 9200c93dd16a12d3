// Package net handles local-network concerns: mDNS discovery of the
// OCR backend and the websocket snapshot stream for external
// renderers.
package net

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

const (
	// OCRServiceType is the mDNS service type an OCR backend
	// advertises under.
	OCRServiceType = "_mathocr._tcp"
	// StreamServiceType is what this app advertises so external
	// renderers can find the snapshot stream.
	StreamServiceType = "_mathnotes._tcp"
)

// Advertise publishes a service instance on the local network. The
// caller shuts the returned server down when the service stops.
func Advertise(serviceType, instance string, port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}
	if instance == "" {
		instance = host
	}

	service, err := mdns.NewMDNSService(
		instance,
		serviceType,
		"", // domain, defaults to .local
		"", // hostname, defaults to the OS hostname
		port,
		nil, // IPs auto-detected
		[]string{instance},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}

// DiscoverEndpoint browses for a service and returns the first
// "host:port" seen within the timeout. An empty string means nothing
// answered; for the OCR service the caller then falls back to the
// built-in recognizer.
func DiscoverEndpoint(serviceType string, timeout time.Duration) (string, error) {
	entries := make(chan *mdns.ServiceEntry, 8)
	found := make(chan string, 1)
	go func() {
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			select {
			case found <- fmt.Sprintf("%s:%d", e.AddrV4.String(), e.Port):
			default:
			}
		}
	}()

	err := mdns.Query(&mdns.QueryParam{
		Service:     serviceType,
		Timeout:     timeout,
		Entries:     entries,
		DisableIPv6: true,
	})
	close(entries)
	if err != nil {
		return "", fmt.Errorf("mDNS lookup failed: %w", err)
	}

	select {
	case addr := <-found:
		return addr, nil
	default:
		return "", nil
	}
}
