package bus_test

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"threadbase.app/comments/common/id"
	"threadbase.app/comments/internal/bus"
	"threadbase.app/comments/internal/model"
)

var _ = Describe("Bus", func() {
	var (
		b   bus.Bus
		ctx context.Context
	)

	newEvent := func(t model.EventType) model.Event {
		return model.Event{
			ID:        id.New(),
			Type:      t,
			Timestamp: time.Now().UTC(),
		}
	}

	BeforeEach(func() {
		ctx = context.Background()
		Expect(id.Init(1)).To(Succeed())
		b = bus.New(nil)
	})

	Describe("Publish", func() {
		It("delivers the event to a subscribed handler", func() {
			received := make(chan model.Event, 1)
			b.Subscribe(model.EventCommentCreated, func(_ context.Context, evt model.Event) error {
				received <- evt
				return nil
			})

			evt := newEvent(model.EventCommentCreated)
			b.Publish(ctx, evt)

			Eventually(received).Should(Receive(Equal(evt)))
		})

		It("is a no-op when nothing is subscribed", func() {
			Expect(func() {
				b.Publish(ctx, newEvent(model.EventCommentCreated))
			}).NotTo(Panic())
		})

		It("invokes every handler registered for the type", func() {
			var calls atomic.Int32
			for i := 0; i < 3; i++ {
				b.Subscribe(model.EventCommentUpdated, func(_ context.Context, _ model.Event) error {
					calls.Add(1)
					return nil
				})
			}

			b.Publish(ctx, newEvent(model.EventCommentUpdated))

			Eventually(calls.Load).Should(Equal(int32(3)))
		})

		It("does not deliver to handlers of other types", func() {
			var calls atomic.Int32
			b.Subscribe(model.EventCommentDeleted, func(_ context.Context, _ model.Event) error {
				calls.Add(1)
				return nil
			})

			b.Publish(ctx, newEvent(model.EventCommentCreated))

			Consistently(calls.Load).Should(Equal(int32(0)))
		})

		It("returns before handlers complete", func() {
			release := make(chan struct{})
			done := make(chan struct{})
			b.Subscribe(model.EventCommentCreated, func(_ context.Context, _ model.Event) error {
				<-release
				close(done)
				return nil
			})

			start := time.Now()
			b.Publish(ctx, newEvent(model.EventCommentCreated))
			Expect(time.Since(start)).To(BeNumerically("<", 100*time.Millisecond))

			close(release)
			Eventually(done).Should(BeClosed())
		})

		It("isolates a failing handler from the others", func() {
			var healthy atomic.Int32
			b.Subscribe(model.EventCommentCreated, func(_ context.Context, _ model.Event) error {
				return errors.New("store unavailable")
			})
			b.Subscribe(model.EventCommentCreated, func(_ context.Context, _ model.Event) error {
				healthy.Add(1)
				return nil
			})

			b.Publish(ctx, newEvent(model.EventCommentCreated))

			Eventually(healthy.Load).Should(Equal(int32(1)))
		})

		It("recovers a panicking handler", func() {
			var healthy atomic.Int32
			b.Subscribe(model.EventCommentCreated, func(_ context.Context, _ model.Event) error {
				panic("boom")
			})
			b.Subscribe(model.EventCommentCreated, func(_ context.Context, _ model.Event) error {
				healthy.Add(1)
				return nil
			})

			Expect(func() {
				b.Publish(ctx, newEvent(model.EventCommentCreated))
			}).NotTo(Panic())

			Eventually(healthy.Load).Should(Equal(int32(1)))
		})

		It("does not redeliver to handlers registered after publish", func() {
			b.Publish(ctx, newEvent(model.EventCommentCreated))

			var calls atomic.Int32
			b.Subscribe(model.EventCommentCreated, func(_ context.Context, _ model.Event) error {
				calls.Add(1)
				return nil
			})

			Consistently(calls.Load).Should(Equal(int32(0)))
		})

		It("survives a cancelled publish context", func() {
			received := make(chan struct{})
			b.Subscribe(model.EventCommentCreated, func(hctx context.Context, _ model.Event) error {
				Expect(hctx.Err()).To(BeNil())
				close(received)
				return nil
			})

			cancelled, cancel := context.WithCancel(ctx)
			b.Publish(cancelled, newEvent(model.EventCommentCreated))
			cancel()

			Eventually(received).Should(BeClosed())
		})
	})

	Describe("Unsubscribe", func() {
		It("stops delivery for the removed handler only", func() {
			var first, second atomic.Int32
			sub := b.Subscribe(model.EventCommentReplied, func(_ context.Context, _ model.Event) error {
				first.Add(1)
				return nil
			})
			b.Subscribe(model.EventCommentReplied, func(_ context.Context, _ model.Event) error {
				second.Add(1)
				return nil
			})

			b.Unsubscribe(sub)
			b.Publish(ctx, newEvent(model.EventCommentReplied))

			Eventually(second.Load).Should(Equal(int32(1)))
			Consistently(first.Load).Should(Equal(int32(0)))
		})

		It("ignores unknown and repeated subscriptions", func() {
			sub := b.Subscribe(model.EventCommentReplied, func(_ context.Context, _ model.Event) error {
				return nil
			})

			Expect(func() {
				b.Unsubscribe(sub)
				b.Unsubscribe(sub)
				b.Unsubscribe(nil)
			}).NotTo(Panic())
		})
	})
})
