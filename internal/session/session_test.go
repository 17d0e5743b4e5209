package session_test

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/san-kum/golfsim/internal/dynamo"
	"github.com/san-kum/golfsim/internal/physics"
	"github.com/san-kum/golfsim/internal/session"
	"github.com/san-kum/golfsim/internal/terrain"
)

var drive = session.Swing{Velocity: mgl64.Vec3{0, 20, -40}}

var _ = Describe("Transition table", func() {
	DescribeTable("Next",
		func(from session.State, ev session.Event, want session.State, ok bool) {
			got, found := session.Next(from, ev)
			Expect(found).To(Equal(ok))
			if ok {
				Expect(got).To(Equal(want))
			}
		},
		Entry("loading init", session.Loading, session.EventInitComplete, session.Ready, true),
		Entry("loading failsafe", session.Loading, session.EventFailsafe, session.Ready, true),
		Entry("ready swing", session.Ready, session.EventSwing, session.Swinging, true),
		Entry("result swing", session.Result, session.EventSwing, session.Swinging, true),
		Entry("putting swing stays", session.Putting, session.EventSwing, session.Putting, true),
		Entry("swing launch", session.Swinging, session.EventLaunch, session.Flight, true),
		Entry("flight stopped", session.Flight, session.EventStopped, session.Result, true),
		Entry("putting stopped", session.Putting, session.EventStopped, session.Result, true),
		Entry("ready putting on", session.Ready, session.EventPuttingOn, session.Putting, true),
		Entry("putting off", session.Putting, session.EventPuttingOff, session.Ready, true),
		Entry("mulligan from flight", session.Flight, session.EventMulligan, session.Ready, true),
		Entry("new hole from result", session.Result, session.EventNewHole, session.Loading, true),
		Entry("loading swing", session.Loading, session.EventSwing, session.Loading, false),
		Entry("flight swing", session.Flight, session.EventSwing, session.Flight, false),
		Entry("ready stopped", session.Ready, session.EventStopped, session.Ready, false),
		Entry("flight putting on", session.Flight, session.EventPuttingOn, session.Flight, false),
	)

	It("names states and events", func() {
		Expect(session.Putting.String()).To(Equal("putting"))
		Expect(session.Swinging.String()).To(Equal("swing"))
		Expect(session.EventNewHole.String()).To(Equal("new_hole"))
		Expect(session.State(42).String()).To(Equal("State(42)"))
	})
})

var _ = Describe("Session", func() {
	var (
		notes *recorder
		s     *session.Session
		st    *physics.Stepper
	)

	newSession := func(opts session.Options) *session.Session {
		opts.Notifier = notes
		opts.Logger = zap.NewNop()
		return session.New(opts)
	}

	BeforeEach(func() {
		notes = &recorder{}
		s = newSession(session.Options{})
		st = newStepper()
	})

	ready := func() {
		GinkgoHelper()
		s.AttachPhysics(st, nil)
		Expect(s.Dispatch(session.PlayerReady{})).To(Succeed())
		Expect(s.State()).To(Equal(session.Ready))
		notes.reset()
	}

	Describe("loading", func() {
		It("starts in loading without notifying", func() {
			Expect(s.State()).To(Equal(session.Loading))
			Expect(notes.events).To(BeEmpty())
		})

		It("needs both physics and the player", func() {
			Expect(s.Dispatch(session.PlayerReady{})).To(Succeed())
			Expect(s.State()).To(Equal(session.Loading))

			s.AttachPhysics(st, nil)
			Expect(s.State()).To(Equal(session.Ready))
			Expect(notes.events).To(Equal([]string{
				"camera tee",
				"cue ready",
				"state loading->ready",
			}))
		})

		It("forces ready after the failsafe timeout", func() {
			for i := 0; i < 4; i++ {
				s.Tick(1)
			}
			Expect(s.State()).To(Equal(session.Loading))
			s.Tick(1)
			Expect(s.State()).To(Equal(session.Ready))
		})

		It("leaves degraded loading only through the failsafe", func() {
			s.AttachPhysics(nil, errors.New("no backend"))
			Expect(s.Dispatch(session.PlayerReady{})).To(Succeed())
			Expect(s.State()).To(Equal(session.Loading))
			Expect(s.Degraded()).To(BeTrue())

			Expect(runUntil(s, session.Ready, 1000)).To(BeNumerically("<", 1000))
		})

		It("rejects a swing with no side effects", func() {
			err := s.Dispatch(drive)
			Expect(errors.Is(err, session.ErrInvalidTransition)).To(BeTrue())
			Expect(notes.events).To(BeEmpty())
		})

		It("panics on a frame dt that is not positive and finite", func() {
			for _, dt := range []float64{0, -frame, math.NaN(), math.Inf(1)} {
				Expect(func() { s.Tick(dt) }).To(PanicWith(BeAssignableToTypeOf(&dynamo.SimulationError{})))
			}
			func() {
				defer func() {
					err, ok := recover().(error)
					Expect(ok).To(BeTrue())
					Expect(errors.Is(err, dynamo.ErrInvalidTimestep)).To(BeTrue())
				}()
				s.Tick(math.NaN())
			}()
			Expect(s.State()).To(Equal(session.Loading))
			Expect(notes.events).To(BeEmpty())
		})
	})

	Describe("a full shot", func() {
		BeforeEach(ready)

		It("goes swing then flight with camera and cue", func() {
			Expect(s.Dispatch(drive)).To(Succeed())
			Expect(s.State()).To(Equal(session.Flight))
			Expect(notes.events).To(Equal([]string{
				"state ready->swing",
				"camera follow",
				"cue impact",
				"state swing->flight",
			}))
		})

		It("records exactly one result before announcing the state", func() {
			Expect(s.Dispatch(drive)).To(Succeed())
			notes.reset()

			Expect(runUntil(s, session.Result, 3000)).To(BeNumerically("<", 3000))
			Expect(notes.events).To(Equal([]string{
				"shot FAIRWAY",
				"cue good",
				"state flight->result",
			}))

			res := notes.shots[0]
			Expect(res.Outcome).To(Equal(terrain.Fairway))
			Expect(res.Distance).To(BeNumerically(">", res.Carry))
			Expect(res.Carry).To(BeNumerically("~", 99, 3))
			Expect(res.Speed).To(BeNumerically("~", math.Hypot(20, 40), 1e-9))
			Expect(res.LaunchAngle).To(BeNumerically("~", 26.565, 1e-3))
			Expect(res.Ball).To(Equal("standard"))

			for i := 0; i < 120; i++ {
				s.Tick(frame)
			}
			Expect(notes.shots).To(HaveLen(1))
		})

		It("rejects non-finite swings before any transition", func() {
			err := s.Dispatch(session.Swing{Velocity: mgl64.Vec3{math.NaN(), 1, 1}})
			Expect(errors.Is(err, dynamo.ErrInvalidInput)).To(BeTrue())
			Expect(s.State()).To(Equal(session.Ready))
			Expect(notes.events).To(BeEmpty())
		})

		It("rejects a second swing mid-flight", func() {
			Expect(s.Dispatch(drive)).To(Succeed())
			notes.reset()
			err := s.Dispatch(drive)
			Expect(errors.Is(err, session.ErrInvalidTransition)).To(BeTrue())
			Expect(notes.events).To(BeEmpty())
		})

		It("ends out of bounds", func() {
			Expect(s.Dispatch(session.Swing{Velocity: mgl64.Vec3{90, 15, -10}})).To(Succeed())
			Expect(runUntil(s, session.Result, 3000)).To(BeNumerically("<", 3000))
			Expect(notes.shots).To(HaveLen(1))
			Expect(notes.shots[0].Outcome).To(Equal(terrain.OutOfBounds))
			Expect(notes.events).To(ContainElement("cue ob"))
		})

		It("stops after the max flight time", func() {
			s = newSession(session.Options{MaxFlightTime: 1})
			ready()
			Expect(s.Dispatch(drive)).To(Succeed())
			frames := runUntil(s, session.Result, 3000)
			Expect(frames).To(BeNumerically("~", 60, 2))
			Expect(s.FlightTime()).To(BeNumerically(">=", 1))
		})

		It("swings again from result off a fresh tee", func() {
			Expect(s.Dispatch(drive)).To(Succeed())
			runUntil(s, session.Result, 3000)
			Expect(st.Body().Position).NotTo(Equal(st.Start()))

			Expect(s.Dispatch(drive)).To(Succeed())
			Expect(s.State()).To(Equal(session.Flight))
			Expect(s.Recorder().Start()).To(Equal(st.Start()))
		})
	})

	Describe("water", func() {
		It("ends the shot as soon as the ball is over a hazard", func() {
			pond := terrain.Zone{Name: "pond", Type: terrain.Water, Bounds: terrain.Bounds{XMin: -30, XMax: 30, ZMin: -150, ZMax: -60}}
			st = newStepper(pond)
			ready()

			Expect(s.Dispatch(drive)).To(Succeed())
			Expect(runUntil(s, session.Result, 3000)).To(BeNumerically("<", 400))
			Expect(notes.shots[0].Outcome).To(Equal(terrain.Water))
			Expect(notes.events).To(ContainElement("cue hazard"))
		})
	})

	Describe("mulligan", func() {
		BeforeEach(ready)

		It("cancels a flight without recording it", func() {
			Expect(s.Dispatch(drive)).To(Succeed())
			for i := 0; i < 30; i++ {
				s.Tick(frame)
			}
			notes.reset()

			Expect(s.Dispatch(session.Mulligan{})).To(Succeed())
			Expect(s.State()).To(Equal(session.Ready))
			Expect(notes.shots).To(BeEmpty())
			Expect(notes.events).To(Equal([]string{"camera tee", "cue ready", "state flight->ready"}))

			body := st.Body()
			Expect(body.Position).To(Equal(st.Start()))
			Expect(body.Velocity).To(Equal(mgl64.Vec3{}))
			Expect(st.AtRest()).To(BeTrue())

			for i := 0; i < 60; i++ {
				s.Tick(frame)
			}
			Expect(st.Body()).To(Equal(body))
		})

		It("is idempotent", func() {
			Expect(s.Dispatch(drive)).To(Succeed())
			s.Tick(frame)
			Expect(s.Dispatch(session.Mulligan{})).To(Succeed())
			once := st.Body()
			Expect(s.Dispatch(session.Mulligan{})).To(Succeed())
			Expect(st.Body()).To(Equal(once))
			Expect(s.State()).To(Equal(session.Ready))
		})
	})

	Describe("putting", func() {
		BeforeEach(ready)

		It("is a flag while the ball is in flight", func() {
			Expect(s.Dispatch(drive)).To(Succeed())
			notes.reset()

			Expect(s.Dispatch(session.TogglePutting{On: true})).To(Succeed())
			Expect(s.State()).To(Equal(session.Flight))
			Expect(s.Putting()).To(BeTrue())
			Expect(notes.events).To(BeEmpty())

			runUntil(s, session.Putting, 3000)
			Expect(notes.events).To(Equal([]string{
				"shot FAIRWAY",
				"cue good",
				"state flight->result",
				"camera putting",
				"state result->putting",
			}))
		})

		It("putts from ready and records the putt", func() {
			Expect(s.Dispatch(session.TogglePutting{On: true})).To(Succeed())
			Expect(s.State()).To(Equal(session.Putting))
			Expect(s.Camera()).To(Equal(session.CameraPutting))

			notes.reset()
			Expect(s.Dispatch(session.Swing{Velocity: mgl64.Vec3{0, 0, -3}})).To(Succeed())
			Expect(s.State()).To(Equal(session.Putting))
			Expect(notes.events).To(BeEmpty())

			for i := 0; i < 1000 && len(notes.shots) == 0; i++ {
				s.Tick(frame)
			}
			Expect(notes.shots).To(HaveLen(1))
			Expect(notes.shots[0].Carry).To(BeZero())
			Expect(notes.shots[0].Distance).To(BeNumerically(">", 0))

			// still on the green, ready for the next putt
			Expect(s.State()).To(Equal(session.Putting))
			Expect(notes.events).To(ContainElements("state putting->result", "state result->putting"))
		})

		It("returns to ready when switched off", func() {
			Expect(s.Dispatch(session.TogglePutting{On: true})).To(Succeed())
			Expect(s.Dispatch(session.Swing{Velocity: mgl64.Vec3{0, 0, -3}})).To(Succeed())
			s.Tick(frame)
			notes.reset()

			Expect(s.Dispatch(session.TogglePutting{On: false})).To(Succeed())
			Expect(s.State()).To(Equal(session.Ready))
			Expect(s.Putting()).To(BeFalse())
			Expect(st.AtRest()).To(BeTrue())
			Expect(notes.shots).To(BeEmpty())
		})

		It("ignores switching off outside putting", func() {
			Expect(s.Dispatch(session.TogglePutting{On: false})).To(Succeed())
			Expect(s.State()).To(Equal(session.Ready))
			Expect(notes.events).To(BeEmpty())
		})
	})

	Describe("commands", func() {
		BeforeEach(ready)

		It("equips balls and applies their multipliers", func() {
			err := s.Dispatch(session.EquipBall{ID: "moonrock"})
			Expect(errors.Is(err, session.ErrUnknownBall)).To(BeTrue())

			Expect(s.Dispatch(session.EquipBall{ID: "premium"})).To(Succeed())
			Expect(s.Dispatch(session.Swing{Velocity: mgl64.Vec3{0, 10, -20}, Spin: mgl64.Vec3{10, 0, 0}})).To(Succeed())
			body := st.Body()
			Expect(body.Velocity.ApproxEqual(mgl64.Vec3{0, 11.5, -23})).To(BeTrue())
			Expect(body.Spin.ApproxEqual(mgl64.Vec3{15, 0, 0})).To(BeTrue())
		})

		It("switches gravity in god mode", func() {
			Expect(s.Dispatch(session.GodMode{Enabled: true})).To(Succeed())
			Expect(st.Gravity()).To(Equal(session.DefaultGodGravity))
			Expect(s.Dispatch(session.GodMode{Enabled: false})).To(Succeed())
			Expect(st.Gravity()).To(Equal(physics.DefaultGravity))
		})

		It("sets wind and ignores unknown environment kinds", func() {
			Expect(s.Dispatch(session.SetEnvironment{Kind: session.EnvWind, Value: 5, Direction: mgl64.Vec3{0, 3, -2}})).To(Succeed())
			Expect(st.Wind().ApproxEqual(mgl64.Vec3{0, 0, -5})).To(BeTrue())

			Expect(s.Dispatch(session.SetEnvironment{Kind: "fog", Value: 1})).To(Succeed())
			Expect(s.Dispatch(session.SetEnvironment{Kind: session.EnvGravity, Value: -2})).NotTo(Succeed())
			Expect(notes.events).To(BeEmpty())
		})

		It("changes camera mode on request", func() {
			Expect(s.Dispatch(session.SetCameraMode{Mode: session.CameraTop})).To(Succeed())
			Expect(notes.events).To(Equal([]string{"camera top"}))

			err := s.Dispatch(session.SetCameraMode{Mode: "drone"})
			Expect(errors.Is(err, session.ErrUnknownCameraMode)).To(BeTrue())
			Expect(s.Camera()).To(Equal(session.CameraTop))
		})

		It("starts a new hole in loading", func() {
			Expect(s.Dispatch(drive)).To(Succeed())
			s.Tick(frame)

			Expect(s.Dispatch(session.NewHole{})).To(Succeed())
			Expect(s.State()).To(Equal(session.Loading))
			Expect(st.Body().Position).To(Equal(st.Start()))

			Expect(s.Dispatch(session.PlayerReady{})).To(Succeed())
			Expect(s.State()).To(Equal(session.Ready))
		})
	})

	Describe("degraded mode", func() {
		It("turns a swing straight into an empty result", func() {
			s.AttachPhysics(nil, errors.New("no backend"))
			runUntil(s, session.Ready, 1000)
			notes.reset()

			Expect(s.Dispatch(drive)).To(Succeed())
			s.Tick(frame)
			Expect(s.State()).To(Equal(session.Result))
			Expect(notes.shots).To(HaveLen(1))
			Expect(notes.shots[0].Distance).To(BeZero())
		})
	})
})
