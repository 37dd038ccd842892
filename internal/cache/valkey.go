// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package cache connects to Valkey and caches public listing responses
// in it. The same client backs sessions and auth events.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

const dialTimeout = 5 * time.Second

// ConnectValkey dials Valkey at host:port and pings it before returning.
func ConnectValkey(ctx context.Context, host, port, password string) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:        net.JoinHostPort(host, port),
		Password:    password,
		ClientName:  "folio",
		DialTimeout: dialTimeout,
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("valkey ping %s: %w", opts.Addr, err)
	}

	slog.Info("valkey connected", "addr", opts.Addr)
	return client, nil
}
