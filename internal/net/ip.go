package net

import (
	"net"
)

// OutgoingIP finds the local address peers on the LAN can reach, for
// printing the snapshot stream URL. The UDP dial never sends a packet;
// it only asks the kernel which interface would route out.
func OutgoingIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return localIPFallback()
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}

// localIPFallback covers networks without a default route.
func localIPFallback() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "127.0.0.1"
	}
	for _, address := range addrs {
		if ipnet, ok := address.(*net.IPNet); ok && !ipnet.IP.IsLoopback() && ipnet.IP.To4() != nil {
			return ipnet.IP.String()
		}
	}
	return "127.0.0.1"
}
