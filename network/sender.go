package network

import (
	"context"
	"fmt"
	"net"
)

// Send transmits one request as a datagram to addr
// Fire and forget: success means the datagram left this host
func Send(ctx context.Context, addr string, req Request) error {
	payload, err := Encode(req)
	if err != nil {
		return err
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "udp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetWriteDeadline(deadline)
	}
	if _, err := conn.Write(payload); err != nil {
		return fmt.Errorf("send to %s: %w", addr, err)
	}
	return nil
}
