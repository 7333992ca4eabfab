package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_HandlerReceivesPublishedEvents(t *testing.T) {
	bus := NewBus()
	var got []Event
	bus.Subscribe(func(e Event) { got = append(got, e) })

	bus.Publish(TopicSales, "sale_recorded")
	bus.Publish(TopicPools, "pool_changed")

	require.Len(t, got, 2)
	assert.Equal(t, TopicSales, got[0].Topic)
	assert.Equal(t, "sale_recorded", got[0].Action)
	assert.False(t, got[0].At.IsZero())
}

func TestBus_ChannelSubscriberDropsWhenFull(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.SubscribeChan()
	defer cancel()

	// overflow the buffer; the publisher must not block
	for i := 0; i < 40; i++ {
		bus.Publish(TopicPayments, "payment_recorded")
	}

	var received int
	for {
		select {
		case <-ch:
			received++
			continue
		default:
		}
		break
	}
	assert.Equal(t, 16, received)
}

func TestBus_CancelClosesChannel(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.SubscribeChan()
	cancel()

	_, open := <-ch
	assert.False(t, open)

	// publishing after cancel must not panic
	bus.Publish(TopicSales, "sale_recorded")
}
