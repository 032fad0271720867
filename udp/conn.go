// Package udp wraps the stdlib UDP socket calls the dispatcher needs:
// bind on the server side, dial on a test-client side. Framing and
// validation of what travels over the socket lives in package wire.
package udp

import (
	"net"

	"github.com/cockroachdb/errors"
)

// MaxDatagramSize is the largest datagram the protocol ever sends or
// receives; see wire.MaxDatagramSize for the rationale.
const MaxDatagramSize = 65507

// DialUDP is a thin wrapper over net.DialUDP for test clients.
func DialUDP(address string) (*net.UDPConn, error) {
	udpAddr, err := net.ResolveUDPAddr("udp4", address)
	if err != nil {
		return nil, errors.Errorf("resolve UDP addr: %w", err)
	}
	return net.DialUDP("udp4", nil, udpAddr)
}

// ListenUDP binds an IPv4 UDP socket on INADDR_ANY:port, as spec.md §6
// requires.
func ListenUDP(port uint16) (*net.UDPConn, error) {
	addr := &net.UDPAddr{IP: net.IPv4zero, Port: int(port)}
	conn, err := net.ListenUDP("udp4", addr)
	if err != nil {
		return nil, errors.Errorf("listen UDP: %w", err)
	}
	return conn, nil
}
