package api

import (
	"encoding/json"
	"net"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// DefaultPort is used when the ports file is missing or unparseable
const DefaultPort = 3080

// AllocatePort resolves the TCP port for this deployment from the shared
// ports file keyed by bot name. A known entry is reused; otherwise a
// kernel-chosen ephemeral port is probed and the mapping written back so
// the parent API can route to us.
func AllocatePort(portsFile, botName string) int {
	data, err := os.ReadFile(portsFile)
	if err != nil {
		log.Warnf("Ports file %s not readable, using default port %d: %v", portsFile, DefaultPort, err)
		return DefaultPort
	}
	if !gjson.ValidBytes(data) {
		log.Warnf("Ports file %s is not valid JSON, using default port %d", portsFile, DefaultPort)
		return DefaultPort
	}

	entries := gjson.ParseBytes(data).Map()
	port := int(entries[botName].Int())
	if port == 0 {
		port = probeEphemeralPort()
	}

	ports := make(map[string]int, len(entries)+1)
	for name, value := range entries {
		ports[name] = int(value.Int())
	}
	ports[botName] = port

	out, err := json.MarshalIndent(ports, "", "    ")
	if err == nil {
		if err := os.WriteFile(portsFile, out, 0o644); err != nil {
			log.Warnf("Failed to write ports file %s: %v", portsFile, err)
		}
	}

	return port
}

// probeEphemeralPort asks the kernel for a free port via a throwaway bind
func probeEphemeralPort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		log.Warnf("Failed to probe for a free port, using default port %d: %v", DefaultPort, err)
		return DefaultPort
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}
