package net

import (
	"fmt"
	"log"

	"github.com/hashicorp/mdns"
)

const serviceType = "_maskpad._tcp"

// DiscoverServer browses the local network for an inpainting server
// advertising itself over mDNS and returns its base URL. The first usable
// entry wins; lookup failure and "nothing found" are both errors so the
// caller can fall back to the configured URL.
func DiscoverServer() (string, error) {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan struct{})
	var addr string

	go func() {
		defer close(done)
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			if addr == "" {
				addr = fmt.Sprintf("http://%s:%d", e.AddrV4.String(), e.Port)
				log.Printf("Discovered inpainting server %q at %s", e.Name, addr)
			}
		}
	}()

	err := mdns.Lookup(serviceType, entries)
	close(entries)
	<-done
	if err != nil {
		return "", fmt.Errorf("mdns lookup failed: %w", err)
	}
	if addr == "" {
		return "", fmt.Errorf("no %s service found on the local network", serviceType)
	}
	return addr, nil
}
