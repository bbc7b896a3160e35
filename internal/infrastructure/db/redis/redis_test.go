package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestConnect_AddrAndURL(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	for _, addr := range []string{mr.Addr(), "redis://" + mr.Addr() + "/0"} {
		client, err := Connect(ctx, Config{Addr: addr})
		if err != nil {
			t.Fatalf("Connect(%q): %v", addr, err)
		}
		if err := client.Set(ctx, "k", "v", 0).Err(); err != nil {
			t.Fatalf("set via %q: %v", addr, err)
		}
		_ = client.Close()
	}
}

func TestConnect_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if _, err := Connect(context.Background(), Config{Addr: addr, Timeout: 200 * time.Millisecond}); err == nil {
		t.Fatalf("expected ping error")
	}
}

func TestConfig_Options(t *testing.T) {
	opts, err := Config{Addr: "redis://:pw@cache:6380/2", DB: 3}.options()
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.Addr != "cache:6380" || opts.Password != "pw" || opts.DB != 3 {
		t.Fatalf("options = %+v", opts)
	}
	if opts.DialTimeout != defaultTimeout {
		t.Fatalf("dial timeout = %s", opts.DialTimeout)
	}

	if _, err := (Config{Addr: "http://nope"}).options(); err == nil {
		t.Fatalf("expected url error")
	}
}
