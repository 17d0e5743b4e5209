package session

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/san-kum/golfsim/internal/dynamo"
	"github.com/san-kum/golfsim/internal/physics"
	"github.com/san-kum/golfsim/internal/shot"
	"github.com/san-kum/golfsim/internal/terrain"
)

const (
	DefaultFailsafeTimeout = 5.0
	DefaultMaxFlightTime   = 30.0
	DefaultGodGravity      = 3.0
)

type Options struct {
	Logger   *zap.Logger
	Notifier Notifier
	Balls    map[string]Ball
	// Ball is the initially equipped ball id.
	Ball string
	// FailsafeTimeout is how many seconds of ticks Loading may last.
	FailsafeTimeout float64
	// MaxFlightTime ends a shot that never settles.
	MaxFlightTime float64
	GodGravity    float64
	Clock         func() time.Time
}

// Session is the mode state machine. It owns the stepper and must be driven
// from a single goroutine.
type Session struct {
	log    *zap.Logger
	notify Notifier
	opts   Options

	state    State
	stepper  *physics.Stepper
	degraded bool

	physicsReady bool
	playerReady  bool
	putting      bool
	godMode      bool
	baseGravity  float64

	loadingFor float64
	flightTime float64

	balls    map[string]Ball
	ball     string
	camera   CameraMode
	recorder *shot.Recorder
}

func New(opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Notifier == nil {
		opts.Notifier = NopNotifier{}
	}
	if len(opts.Balls) == 0 {
		opts.Balls = DefaultBalls()
	}
	if opts.Ball == "" {
		opts.Ball = DefaultBall
	}
	if opts.FailsafeTimeout <= 0 {
		opts.FailsafeTimeout = DefaultFailsafeTimeout
	}
	if opts.MaxFlightTime <= 0 {
		opts.MaxFlightTime = DefaultMaxFlightTime
	}
	if opts.GodGravity <= 0 {
		opts.GodGravity = DefaultGodGravity
	}

	ball := opts.Ball
	if _, ok := opts.Balls[ball]; !ok {
		ids := make([]string, 0, len(opts.Balls))
		for id := range opts.Balls {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		opts.Logger.Warn("unknown ball, falling back", zap.String("ball", ball), zap.String("using", ids[0]))
		ball = ids[0]
	}

	return &Session{
		log:         opts.Logger,
		notify:      opts.Notifier,
		opts:        opts,
		state:       Loading,
		baseGravity: physics.DefaultGravity,
		balls:       opts.Balls,
		ball:        ball,
		camera:      CameraTee,
		recorder:    shot.NewRecorder(opts.Clock),
	}
}

// AttachPhysics hands the session its stepper once the backend is up. A
// non-nil err puts the session in degraded mode: simulation becomes a
// no-op and only the failsafe leaves Loading.
func (s *Session) AttachPhysics(st *physics.Stepper, err error) {
	if err != nil || st == nil {
		if err == nil {
			err = fmt.Errorf("no stepper")
		}
		s.degraded = true
		s.log.Warn("physics unavailable, running degraded", zap.Error(err))
		return
	}
	s.stepper = st
	s.baseGravity = st.Gravity()
	s.physicsReady = true
	s.degraded = false
	if s.godMode {
		_ = s.applyGravity()
	}
	s.log.Debug("physics attached")
	s.maybeInitComplete()
}

func (s *Session) State() State              { return s.state }
func (s *Session) Putting() bool             { return s.putting }
func (s *Session) Degraded() bool            { return s.degraded }
func (s *Session) Camera() CameraMode        { return s.camera }
func (s *Session) GodMode() bool             { return s.godMode }
func (s *Session) FlightTime() float64       { return s.flightTime }
func (s *Session) Stepper() *physics.Stepper { return s.stepper }
func (s *Session) Ball() Ball                { return s.balls[s.ball] }
func (s *Session) Balls() map[string]Ball    { return s.balls }
func (s *Session) Recorder() *shot.Recorder  { return s.recorder }
func (s *Session) PhysicsReady() bool        { return s.physicsReady }
func (s *Session) simulating() bool          { return s.state == Flight || s.state == Putting }
func (s *Session) ballMoving() bool          { return s.stepper != nil && !s.stepper.AtRest() }

func (s *Session) withStepper(f func(*physics.Stepper)) {
	if s.stepper != nil {
		f(s.stepper)
	}
}

// Dispatch applies cmd immediately.
func (s *Session) Dispatch(cmd Command) error {
	var err error
	switch c := cmd.(type) {
	case PlayerReady:
		s.playerReady = true
		s.maybeInitComplete()
	case Swing:
		err = s.swing(c)
	case Mulligan:
		err = s.fire(EventMulligan)
	case NewHole:
		err = s.fire(EventNewHole)
	case SetCameraMode:
		err = s.setCamera(c.Mode)
	case SetEnvironment:
		err = s.setEnvironment(c)
	case TogglePutting:
		err = s.togglePutting(c.On)
	case EquipBall:
		err = s.equip(c.ID)
	case GodMode:
		s.godMode = c.Enabled
		err = s.applyGravity()
	default:
		err = fmt.Errorf("session: unsupported command %T", cmd)
	}
	if err != nil {
		s.log.Debug("command rejected",
			zap.String("command", fmt.Sprintf("%T", cmd)),
			zap.Stringer("state", s.state),
			zap.Error(err))
	}
	return err
}

// Tick processes one frame of dt seconds. Like Stepper.Step it panics on a
// dt that is not positive and finite, in every state.
func (s *Session) Tick(dt float64) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		panic(&dynamo.SimulationError{
			Time:    s.flightTime,
			Wrapped: fmt.Errorf("%w: frame dt %v", dynamo.ErrInvalidTimestep, dt),
		})
	}
	switch {
	case s.state == Loading:
		s.loadingFor += dt
		if s.loadingFor >= s.opts.FailsafeTimeout {
			s.log.Warn("initialization timed out, forcing ready",
				zap.Float64("waited", s.loadingFor),
				zap.Bool("physics_ready", s.physicsReady),
				zap.Bool("player_ready", s.playerReady))
			_ = s.fire(EventFailsafe)
		}
	case s.simulating() && s.recorder.Launched():
		if s.stepper != nil {
			s.stepper.Step(dt)
		}
		s.flightTime += dt
		if s.stopped() {
			_ = s.fire(EventStopped)
		}
	}
}

func (s *Session) stopped() bool {
	if s.stepper == nil || s.degraded {
		return true
	}
	return s.stepper.Finished() || s.flightTime >= s.opts.MaxFlightTime
}

func (s *Session) maybeInitComplete() {
	if s.state == Loading && s.physicsReady && s.playerReady {
		_ = s.fire(EventInitComplete)
	}
}

func (s *Session) swing(c Swing) error {
	if !dynamo.IsFinite(c.Velocity) || !dynamo.IsFinite(c.Spin) {
		return fmt.Errorf("%w: velocity %v spin %v", dynamo.ErrInvalidInput, c.Velocity, c.Spin)
	}
	if _, ok := Next(s.state, EventSwing); !ok {
		return s.invalid(EventSwing)
	}
	if s.state == Putting && s.ballMoving() {
		return fmt.Errorf("%w: putt already rolling", ErrInvalidTransition)
	}

	ball := s.Ball()
	velocity := c.Velocity.Mul(ball.SpeedMult)
	spin := c.Spin.Mul(ball.SpinMult)

	if s.state == Result {
		s.resetBall()
	}
	if err := s.fire(EventSwing); err != nil {
		return err
	}
	s.launch(velocity, spin)
	if s.state == Swinging {
		return s.fire(EventLaunch)
	}
	return nil
}

func (s *Session) launch(velocity, spin mgl64.Vec3) {
	pos := mgl64.Vec3{}
	if s.stepper != nil {
		pos = s.stepper.Body().Position
		// inputs were checked in swing
		_ = s.stepper.SetInitialShot(velocity, spin)
	}
	s.flightTime = 0
	s.recorder.Launch(pos, velocity, s.ball)
	s.log.Info("ball launched",
		zap.Float64("speed", velocity.Len()),
		zap.Float64("launch_angle", shot.LaunchAngle(velocity)),
		zap.String("ball", s.ball))
}

func (s *Session) togglePutting(on bool) error {
	if !on {
		s.putting = false
		if s.state != Putting {
			return nil
		}
		s.withStepper((*physics.Stepper).Halt)
		s.recorder = shot.NewRecorder(s.opts.Clock)
		return s.fire(EventPuttingOff)
	}

	switch s.state {
	case Putting:
		s.putting = true
		return nil
	case Swinging, Flight:
		s.putting = true
		return nil
	}
	if _, ok := Next(s.state, EventPuttingOn); !ok {
		return s.invalid(EventPuttingOn)
	}
	s.putting = true
	return s.fire(EventPuttingOn)
}

func (s *Session) setCamera(mode CameraMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCameraMode, mode)
	}
	s.changeCamera(mode)
	return nil
}

func (s *Session) changeCamera(mode CameraMode) {
	s.camera = mode
	s.notify.CameraModeChanged(mode)
}

func (s *Session) setEnvironment(c SetEnvironment) error {
	switch c.Kind {
	case EnvWind:
		if !dynamo.IsFinite(c.Direction) || math.IsNaN(c.Value) || math.IsInf(c.Value, 0) {
			return fmt.Errorf("%w: wind %v along %v", dynamo.ErrInvalidInput, c.Value, c.Direction)
		}
		dir := mgl64.Vec3{c.Direction.X(), 0, c.Direction.Z()}
		if dir.Len() == 0 {
			dir = mgl64.Vec3{1, 0, 0}
		}
		wind := dir.Normalize().Mul(c.Value)
		if s.stepper == nil {
			return nil
		}
		return s.stepper.SetWind(wind)
	case EnvGravity:
		if math.IsNaN(c.Value) || math.IsInf(c.Value, 0) || c.Value < 0 {
			return fmt.Errorf("%w: gravity %v", dynamo.ErrParameterBounds, c.Value)
		}
		s.baseGravity = c.Value
		return s.applyGravity()
	default:
		s.log.Debug("ignoring environment update", zap.String("kind", c.Kind))
		return nil
	}
}

func (s *Session) applyGravity() error {
	if s.stepper == nil {
		return nil
	}
	g := s.baseGravity
	if s.godMode {
		g = s.opts.GodGravity
	}
	return s.stepper.SetGravity(g)
}

func (s *Session) equip(id string) error {
	if _, ok := s.balls[id]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownBall, id)
	}
	s.ball = id
	s.log.Info("ball equipped", zap.String("ball", id))
	return nil
}

func (s *Session) resetBall() {
	s.withStepper((*physics.Stepper).ResetBall)
	s.flightTime = 0
	s.recorder = shot.NewRecorder(s.opts.Clock)
}

func (s *Session) invalid(ev Event) error {
	return fmt.Errorf("%w: %s in %s", ErrInvalidTransition, ev, s.state)
}

// fire runs one transition: look up, apply entry effects, then announce.
func (s *Session) fire(ev Event) error {
	from := s.state
	to, ok := Next(from, ev)
	if !ok {
		return s.invalid(ev)
	}
	if to == from && !ev.forced() {
		return nil
	}

	s.state = to
	s.log.Info("state transition",
		zap.Stringer("state", to),
		zap.Stringer("from", from),
		zap.Stringer("event", ev))

	var follow bool
	switch to {
	case Loading:
		s.resetBall()
		s.loadingFor = 0
		s.playerReady = false
		s.putting = false
	case Ready:
		if ev == EventMulligan {
			s.resetBall()
			s.putting = false
		}
		s.changeCamera(CameraTee)
		s.notify.AudioCue(terrain.CueReady)
	case Flight:
		s.changeCamera(CameraFollow)
		s.notify.AudioCue(terrain.CueImpact)
	case Putting:
		s.changeCamera(CameraPutting)
	case Result:
		s.record()
		follow = s.putting
	}
	s.notify.StateChanged(from, to)

	if follow {
		return s.fire(EventPuttingOn)
	}
	return nil
}

func (s *Session) record() {
	var (
		rest    mgl64.Vec3
		outcome = terrain.Fairway
		flight  map[string]float64
	)
	if s.stepper != nil {
		s.stepper.Halt()
		rest = s.stepper.Body().Position
		outcome = s.stepper.Outcome()
		flight = s.stepper.Metrics()
	} else {
		rest = s.recorder.Start()
	}

	res := s.recorder.Finish(rest, outcome, flight)
	s.log.Info("shot recorded",
		zap.String("id", res.ID.String()),
		zap.Float64("distance", res.Distance),
		zap.Stringer("outcome", res.Outcome),
		zap.Float64("flight_time", s.flightTime))
	s.notify.ShotRecorded(res)
	if cue := terrain.CueFor(outcome); cue != terrain.CueNone {
		s.notify.AudioCue(cue)
	}
}
