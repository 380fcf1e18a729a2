// CLASSIFICATION: COMMUNITY
// Filename: health_test.go v0.1
// Author: Lukas Bower
// Date Modified: 2026-10-18
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package health

import (
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

func newClient(t *testing.T, lis *bufconn.Listener) (healthpb.HealthClient, *grpc.ClientConn) {
	t.Helper()
	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return healthpb.NewHealthClient(conn), conn
}

func check(t *testing.T, client healthpb.HealthClient, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		t.Fatalf("check %q: %v", service, err)
	}
	return resp.GetStatus()
}

func TestServingTransitions(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	lis := bufconn.Listen(1 << 20)
	srv := New(log)
	go srv.Serve(lis)
	defer srv.Stop()

	client, conn := newClient(t, lis)
	defer conn.Close()
	if got := check(t, client, ServiceName); got != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("expected NOT_SERVING before start, got %v", got)
	}

	srv.SetServing(true)
	for _, service := range []string{"", ServiceName} {
		if got := check(t, client, service); got != healthpb.HealthCheckResponse_SERVING {
			t.Fatalf("%q: expected SERVING, got %v", service, got)
		}
	}

	srv.SetServing(false)
	if got := check(t, client, ""); got != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("expected NOT_SERVING, got %v", got)
	}
}

func TestStartStopsOnCancel(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	srv := New(log)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()
	if err := srv.Start(ctx, "127.0.0.1:0"); err != nil {
		t.Fatalf("start: %v", err)
	}
}
