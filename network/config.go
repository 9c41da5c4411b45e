package network

import (
	"net"
	"strconv"
	"time"
)

// Config holds peer messaging configuration
type Config struct {
	// Listen address for inbound datagrams
	ListenHost string
	Port       int

	// Largest encoded envelope accepted or sent
	MaxDatagram int

	// Timing
	ReadTimeout time.Duration // Receive poll interval, bounds Stop latency
	SendTimeout time.Duration // Per-send deadline

	// Inbound queue capacity, power of two
	QueueSize int
}

// DefaultConfig returns the defaults peers expect
func DefaultConfig() *Config {
	return &Config{
		ListenHost:  "0.0.0.0",
		Port:        8080,
		MaxDatagram: 65507,
		ReadTimeout: 100 * time.Millisecond,
		SendTimeout: 2 * time.Second,
		QueueSize:   256,
	}
}

// ListenAddress returns host:port for the listener
func (c *Config) ListenAddress() string {
	return net.JoinHostPort(c.ListenHost, strconv.Itoa(c.Port))
}
