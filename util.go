package kafka

import (
	"fmt"
	"net"
	"strconv"
)

// joinHostPort formats a broker's host/port as the "host:port" address
// form used as the map value of MetadataCache.brokers and as the dial
// target for conn_pool.go.
func joinHostPort(host string, port int32) string {
	return net.JoinHostPort(host, strconv.FormatInt(int64(port), 10))
}

// formatAddr renders a broker id/address pair for error messages, shared by
// conn_pool.go's dial-failure paths so they read identically regardless of
// which one fired.
func formatAddr(nodeID int32, addr string) string {
	return fmt.Sprintf("broker %d (%s)", nodeID, addr)
}
