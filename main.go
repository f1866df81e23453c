package main

import (
	"flag"
	"log"

	"MaskPad/internal/config"
	"MaskPad/internal/net"
	"MaskPad/internal/ui"
)

func main() {
	serverFlag := flag.String("server", "", "inpainting server URL (overrides config and discovery)")
	imageFlag := flag.String("image", "", "image to open at startup")
	flag.Parse()

	conf, err := config.Load()
	if err != nil {
		log.Printf("Using default config: %v", err)
	}

	serverURL := conf.ServerURL
	if conf.DiscoverLAN {
		if addr, err := net.DiscoverServer(); err == nil {
			serverURL = addr
		} else {
			log.Printf("LAN discovery: %v, falling back to %s", err, serverURL)
		}
	}
	if *serverFlag != "" {
		serverURL = *serverFlag
	}
	log.Printf("Using inpainting server at %s", serverURL)

	ui.RunApp(conf, serverURL, *imageFlag)
}
