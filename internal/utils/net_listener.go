package utils

import (
	"fmt"
	"net"
	"time"
)

// Scrape-соединения долгоживущие, мёртвые обрываем keepalive'ом.
const listenerKeepAlive = 30 * time.Second

type Listener struct {
	net.Listener
}

func (l Listener) Accept() (net.Conn, error) {
	conn, err := l.Listener.Accept()
	if err != nil {
		return nil, err //nolint: wrapcheck
	}

	if tcpConn, ok := conn.(*net.TCPConn); ok {
		if err := tcpConn.SetKeepAliveConfig(net.KeepAliveConfig{
			Enable:   true,
			Idle:     listenerKeepAlive,
			Interval: listenerKeepAlive,
			Count:    3, //nolint: gomnd
		}); err != nil {
			conn.Close()

			return nil, fmt.Errorf("cannot set TCP options: %w", err)
		}
	}

	return conn, nil
}

// NewListener создаёт TCP listener для HTTP endpoint с метриками.
func NewListener(bindTo string) (net.Listener, error) {
	base, err := net.Listen("tcp", bindTo)
	if err != nil {
		return nil, fmt.Errorf("cannot build a base listener: %w", err)
	}

	return Listener{
		Listener: base,
	}, nil
}
