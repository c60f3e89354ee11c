package eventbus_test

import (
	"testing"
	"time"

	"github.com/roffe/empol/pkg/eventbus"
	"github.com/roffe/empol/pkg/params"
)

func recv(t *testing.T, ch <-chan float64) float64 {
	t.Helper()
	select {
	case v, ok := <-ch:
		if !ok {
			t.Fatal("channel closed")
		}
		return v
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for value")
	}
	return 0
}

func TestPublishSubscribe(t *testing.T) {
	tests := []struct {
		name  string
		topic string
		data  float64
	}{
		{name: "frequency", topic: params.TopicFrequency, data: 1.5},
		{name: "phase", topic: params.TopicPhase, data: params.RightCircular},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := eventbus.New(nil)
			defer bus.Close()
			ch := bus.Subscribe(tt.topic)
			if err := bus.Publish(tt.topic, tt.data); err != nil {
				t.Fatalf("Publish() failed: %v", err)
			}
			if v := recv(t, ch); v != tt.data {
				t.Errorf("Subscribe() got %v, want %v", v, tt.data)
			}
			bus.Unsubscribe(ch)
			if _, ok := <-ch; ok {
				t.Error("channel open after Unsubscribe")
			}
		})
	}
}

func TestReplayLastValue(t *testing.T) {
	bus := eventbus.New(nil)
	defer bus.Close()
	if err := bus.Publish(params.TopicPhase, params.LeftCircular); err != nil {
		t.Fatal(err)
	}
	// wait for the run loop to cache it
	deadline := time.Now().Add(time.Second)
	for {
		if _, ok := bus.Last(params.TopicPhase); ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("value never cached")
		}
		time.Sleep(time.Millisecond)
	}
	ch := bus.Subscribe(params.TopicPhase)
	if v := recv(t, ch); v != params.LeftCircular {
		t.Errorf("replayed %v, want %v", v, params.LeftCircular)
	}
	if got := bus.Values()[params.TopicPhase]; got != params.LeftCircular {
		t.Errorf("Values() = %v", got)
	}
}

func TestSubscribeFuncDispatch(t *testing.T) {
	posted := make(chan func(), 4)
	cfg := *eventbus.DefaultConfig
	cfg.Dispatch = func(f func()) { posted <- f }
	bus := eventbus.New(&cfg)
	defer bus.Close()

	got := make(chan float64, 1)
	cancel := bus.SubscribeFunc(params.TopicFrequency, func(v float64) { got <- v })
	defer cancel()
	bus.Publish(params.TopicFrequency, 2.71)

	select {
	case f := <-posted:
		select {
		case <-got:
			t.Fatal("callback ran before dispatch")
		default:
		}
		f()
	case <-time.After(time.Second):
		t.Fatal("nothing dispatched")
	}
	if v := <-got; v != 2.71 {
		t.Errorf("SubscribeFunc() got %v, want 2.71", v)
	}
}

func TestClose(t *testing.T) {
	bus := eventbus.New(nil)
	ch := bus.Subscribe(params.TopicAmplitude)
	bus.Close()
	if _, ok := <-ch; ok {
		t.Error("subscriber channel open after Close")
	}
	bus.Close()
}
