package eventbus

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

type Config struct {
	IncomingBuffer    int
	SubscribeBuffer   int
	UnsubscribeBuffer int
	ChannelBuffer     int
	CacheTTL          time.Duration
	// Dispatch runs SubscribeFunc callbacks, fyne.Do in the GUI. Nil calls
	// them on the delivery goroutine.
	Dispatch func(func())
}

var DefaultConfig = &Config{
	IncomingBuffer:    100,
	SubscribeBuffer:   20,
	UnsubscribeBuffer: 20,
	ChannelBuffer:     10,
	CacheTTL:          ttlcache.NoTTL,
}

type Message struct {
	Topic string
	Data  float64
}

// Controller fans parameter changes out to subscribers. The last value per
// topic is cached and replayed to new subscribers, so a control created late
// still shows the current setting.
type Controller struct {
	cfg      Config
	subs     sync.Map // topic -> []chan float64
	incoming chan Message
	sub      chan newSub
	unsub    chan chan float64
	cache    *ttlcache.Cache[string, float64]

	closeOnce sync.Once
	quit      chan struct{}
	done      chan struct{}
}

type newSub struct {
	topic string
	resp  chan float64
}

func New(cfg *Config) *Controller {
	if cfg == nil {
		cfg = DefaultConfig
	}
	c := &Controller{
		cfg:      *cfg,
		incoming: make(chan Message, cfg.IncomingBuffer),
		sub:      make(chan newSub, cfg.SubscribeBuffer),
		unsub:    make(chan chan float64, cfg.UnsubscribeBuffer),
		cache:    ttlcache.New[string, float64](ttlcache.WithTTL[string, float64](cfg.CacheTTL)),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go c.run()
	return c
}

func (e *Controller) run() {
	defer close(e.done)
	for {
		select {
		case <-e.quit:
			e.cleanup()
			return
		case msg := <-e.incoming:
			e.handleMessage(msg)
		case sub := <-e.sub:
			e.handleSubscription(sub)
		case unsub := <-e.unsub:
			e.handleUnsubscription(unsub)
		}
	}
}

func (e *Controller) handleMessage(msg Message) {
	e.cache.Set(msg.Topic, msg.Data, ttlcache.DefaultTTL)
	value, ok := e.subs.Load(msg.Topic)
	if !ok {
		return
	}
	for _, sub := range value.([]chan float64) {
		select {
		case sub <- msg.Data:
		default:
			log.Printf("eventbus: subscriber channel full for %s", msg.Topic)
		}
	}
}

func (e *Controller) handleSubscription(sub newSub) {
	var subs []chan float64
	if value, ok := e.subs.Load(sub.topic); ok {
		subs = value.([]chan float64)
	}
	e.subs.Store(sub.topic, append(subs, sub.resp))

	if item := e.cache.Get(sub.topic); item != nil {
		select {
		case sub.resp <- item.Value():
		default:
		}
	}
}

func (e *Controller) handleUnsubscription(unsub chan float64) {
	e.subs.Range(func(key, value any) bool {
		subs := value.([]chan float64)
		for i, sub := range subs {
			if sub != unsub {
				continue
			}
			rest := append(subs[:i:i], subs[i+1:]...)
			if len(rest) == 0 {
				e.subs.Delete(key)
			} else {
				e.subs.Store(key, rest)
			}
			close(unsub)
			return false
		}
		return true
	})
}

func (e *Controller) cleanup() {
	e.cache.DeleteAll()
	// subscriptions still queued never saw the run loop
pending:
	for {
		select {
		case s := <-e.sub:
			close(s.resp)
		default:
			break pending
		}
	}
	e.subs.Range(func(key, value any) bool {
		for _, sub := range value.([]chan float64) {
			close(sub)
		}
		e.subs.Delete(key)
		return true
	})
}

// Close stops the controller and closes every subscriber channel.
func (e *Controller) Close() {
	e.closeOnce.Do(func() {
		close(e.quit)
	})
	<-e.done
}

func (e *Controller) Publish(topic string, data float64) error {
	select {
	case e.incoming <- Message{Topic: topic, Data: data}:
		return nil
	case <-e.quit:
		return fmt.Errorf("publish %s: bus closed", topic)
	default:
		return fmt.Errorf("publish %s: channel full", topic)
	}
}

func (e *Controller) Subscribe(topic string) chan float64 {
	resp := make(chan float64, e.cfg.ChannelBuffer)
	select {
	case e.sub <- newSub{topic: topic, resp: resp}:
	case <-e.quit:
		close(resp)
	}
	return resp
}

func (e *Controller) Unsubscribe(ch chan float64) {
	select {
	case e.unsub <- ch:
	case <-e.quit:
	}
}

// SubscribeFunc calls fn for every value on topic and returns a function
// that cancels the subscription.
func (e *Controller) SubscribeFunc(topic string, fn func(float64)) (cancel func()) {
	ch := e.Subscribe(topic)
	go func() {
		for v := range ch {
			if d := e.cfg.Dispatch; d != nil {
				d(func() { fn(v) })
				continue
			}
			fn(v)
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() { e.Unsubscribe(ch) })
	}
}

// Last returns the most recent value published on topic.
func (e *Controller) Last(topic string) (float64, bool) {
	if item := e.cache.Get(topic); item != nil {
		return item.Value(), true
	}
	return 0, false
}

func (e *Controller) Values() map[string]float64 {
	values := make(map[string]float64)
	for k, v := range e.cache.Items() {
		values[k] = v.Value()
	}
	return values
}
