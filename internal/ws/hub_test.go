package ws

import (
	"context"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met in time")
}

func TestHub_BroadcastStaysInTopic(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub(nil)
	go h.Run(ctx)

	a := &Client{hub: h, topic: "referral:a", send: make(chan []byte, 4)}
	b := &Client{hub: h, topic: "referral:b", send: make(chan []byte, 4)}
	h.Register(a)
	h.Register(b)
	waitFor(t, func() bool { return h.ClientCount("referral:a") == 1 && h.ClientCount("referral:b") == 1 })

	h.Broadcast("referral:a", []byte(`{"type":"message"}`))

	select {
	case msg := <-a.send:
		if string(msg) != `{"type":"message"}` {
			t.Fatalf("unexpected payload %q", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("client in topic did not receive the message")
	}

	select {
	case msg := <-b.send:
		t.Fatalf("client in another topic received %q", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub(nil)
	go h.Run(ctx)

	c := &Client{hub: h, topic: "referral:x", send: make(chan []byte, 1)}
	h.Register(c)
	waitFor(t, func() bool { return h.ClientCount("referral:x") == 1 })

	h.Unregister(c)
	waitFor(t, func() bool { return h.ClientCount("referral:x") == 0 })

	if _, ok := <-c.send; ok {
		t.Fatalf("expected send channel closed")
	}
}

func TestHub_NilSafe(t *testing.T) {
	var h *Hub
	h.Broadcast("t", []byte("x"))
	if h.ClientCount("t") != 0 {
		t.Fatalf("nil hub has no clients")
	}
}
