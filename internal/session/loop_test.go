package session_test

import (
	"context"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/san-kum/golfsim/internal/session"
)

var _ = Describe("Loop", func() {
	It("dispatches commands, ticks frames and stops on cancel", func(ctx SpecContext) {
		s := session.New(session.Options{Logger: zap.NewNop()})
		s.AttachPhysics(newStepper(), nil)

		var (
			state       atomic.Int32
			frames      atomic.Int64
			withinClamp atomic.Bool
		)
		loop := session.NewLoop(s, 120, 0.1)
		loop.OnFrame = func(s *session.Session, dt float64) {
			if dt > 0.1 {
				withinClamp.Store(false)
			}
			state.Store(int32(s.State()))
			frames.Add(1)
		}
		withinClamp.Store(true)

		runCtx, cancel := context.WithCancel(ctx)
		commands := make(chan session.Command, 4)
		done := make(chan error, 1)
		go func() {
			defer GinkgoRecover()
			done <- loop.Run(runCtx, commands)
		}()

		commands <- session.PlayerReady{}
		commands <- drive
		Eventually(func() session.State { return session.State(state.Load()) }).
			WithTimeout(2 * time.Second).
			Should(Equal(session.Flight))
		Expect(frames.Load()).To(BeNumerically(">", 0))
		Expect(withinClamp.Load()).To(BeTrue())

		close(commands)
		cancel()
		Eventually(done).WithTimeout(time.Second).Should(Receive(BeNil()))
	}, SpecTimeout(5*time.Second))

	It("falls back to defaults for bad rates", func() {
		s := session.New(session.Options{})
		Expect(session.NewLoop(s, 0, -1)).NotTo(BeNil())
	})
})
