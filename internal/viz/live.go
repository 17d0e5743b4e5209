package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/golfsim/internal/session"
	"github.com/san-kum/golfsim/internal/shot"
)

const (
	canvasWidth  = 60
	canvasHeight = 16
	speedHistory = 40
)

var (
	cameraCycle = []session.CameraMode{
		session.CameraTee, session.CameraFollow, session.CameraTop, session.CameraPutting, session.CameraFree,
	}
	windSteps = []float64{0, 3, 6, 10}
)

// Preset is a named swing selectable from the keyboard.
type Preset struct {
	Name        string
	Description string
	Swing       session.Swing
}

type frameMsg time.Time

// SessionModel runs a session inside a bubbletea program. It ticks the
// session on every frame, so the program goroutine owns the session.
type SessionModel struct {
	session    *session.Session
	feed       *Feed
	path       *shot.Trajectory
	commands   <-chan session.Command
	presets    []Preset
	frameRate  float64
	maxFrameDt float64

	selected int
	wind     int
	last     time.Time
	canvas   *Canvas
	speeds   []float64
	err      error
}

// NewSessionModel wires s to the terminal. commands, when not nil, is drained
// every frame so a relay can drive the same session. path may be nil. feed
// should be one of the session's notifiers.
func NewSessionModel(s *session.Session, feed *Feed, path *shot.Trajectory, commands <-chan session.Command, presets []Preset, frameRate, maxFrameDt float64) *SessionModel {
	if frameRate <= 0 {
		frameRate = session.DefaultFrameRate
	}
	if maxFrameDt <= 0 {
		maxFrameDt = session.DefaultMaxFrameDt
	}
	if feed == nil {
		feed = NewFeed()
	}
	return &SessionModel{
		session:    s,
		feed:       feed,
		path:       path,
		commands:   commands,
		presets:    presets,
		frameRate:  frameRate,
		maxFrameDt: maxFrameDt,
		canvas:     NewCanvas(canvasWidth, canvasHeight),
	}
}

func (m *SessionModel) tick() tea.Cmd {
	return tea.Tick(time.Duration(float64(time.Second)/m.frameRate), func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m *SessionModel) Init() tea.Cmd { return m.tick() }

func (m *SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.key(msg.String())
	case frameMsg:
		m.frame(time.Time(msg))
		return m, m.tick()
	}
	return m, nil
}

func (m *SessionModel) key(k string) tea.Cmd {
	switch k {
	case "q", "ctrl+c":
		return tea.Quit
	case " ":
		if len(m.presets) > 0 {
			m.dispatch(m.presets[m.selected].Swing)
		}
	case "enter":
		m.dispatch(session.PlayerReady{})
	case "r":
		m.dispatch(session.Mulligan{})
	case "n":
		m.dispatch(session.NewHole{})
	case "p":
		m.dispatch(session.TogglePutting{On: !m.session.Putting()})
	case "c":
		m.dispatch(session.SetCameraMode{Mode: nextCamera(m.session.Camera())})
	case "w":
		m.wind = (m.wind + 1) % len(windSteps)
		m.dispatch(session.SetEnvironment{Kind: session.EnvWind, Value: windSteps[m.wind], Direction: mgl64.Vec3{1, 0, 0}})
	case "g":
		m.dispatch(session.GodMode{Enabled: !m.session.GodMode()})
	case "b":
		m.dispatch(session.EquipBall{ID: nextBall(m.session)})
	default:
		if len(k) == 1 && k[0] >= '1' && k[0] <= '9' {
			if i := int(k[0] - '1'); i < len(m.presets) {
				m.selected = i
			}
		}
	}
	return nil
}

func (m *SessionModel) dispatch(cmd session.Command) {
	m.err = m.session.Dispatch(cmd)
}

func (m *SessionModel) frame(now time.Time) {
	if m.commands != nil {
	drain:
		for {
			select {
			case cmd, ok := <-m.commands:
				if !ok {
					m.commands = nil
					break drain
				}
				m.dispatch(cmd)
			default:
				break drain
			}
		}
	}

	dt := 1 / m.frameRate
	if !m.last.IsZero() {
		dt = min(now.Sub(m.last).Seconds(), m.maxFrameDt)
	}
	m.last = now
	if dt > 0 {
		m.session.Tick(dt)
	}

	if st := m.session.Stepper(); st != nil {
		m.speeds = append(m.speeds, st.Body().Speed())
		if len(m.speeds) > speedHistory {
			m.speeds = m.speeds[len(m.speeds)-speedHistory:]
		}
	}
}

func nextCamera(cur session.CameraMode) session.CameraMode {
	for i, c := range cameraCycle {
		if c == cur {
			return cameraCycle[(i+1)%len(cameraCycle)]
		}
	}
	return cameraCycle[0]
}

func nextBall(s *session.Session) string {
	ids := make([]string, 0, len(s.Balls()))
	for id := range s.Balls() {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	cur := s.Ball().ID
	for i, id := range ids {
		if id == cur {
			return ids[(i+1)%len(ids)]
		}
	}
	return ids[0]
}

func (m *SessionModel) View() string {
	var samples []shot.Sample
	if m.path != nil {
		samples = m.path.Samples()
	}
	DrawSideView(m.canvas, samples)

	var s strings.Builder
	s.WriteString(Title.Render("GOLFSIM") + "  " + StateBadge(m.session.State()) + "\n\n")
	if m.session.Degraded() {
		s.WriteString(Warning.Render("physics unavailable") + "\n\n")
	}

	ball := m.session.Ball()
	s.WriteString(row("Ball", ball.Name) + "\n")
	s.WriteString(row("Camera", string(m.session.Camera())) + "\n")
	s.WriteString(row("Wind", fmt.Sprintf("%.0f m/s", windSteps[m.wind])) + "\n")
	if m.session.GodMode() {
		s.WriteString(row("Gravity", "low") + "\n")
	}
	if m.session.Putting() {
		s.WriteString(row("Putting", "on") + "\n")
	}
	if st := m.session.Stepper(); st != nil {
		b := st.Body()
		s.WriteString(row("Height", fmt.Sprintf("%.1f m", b.Position.Y())) + "\n")
		s.WriteString(row("Speed", fmt.Sprintf("%.1f m/s", b.Speed())) + "\n")
		s.WriteString(row("Terrain", st.Terrain().String()) + "\n")
	}
	s.WriteString(MetricLabel.Render("Flight") + ProgressBar(m.session.FlightTime()/session.DefaultMaxFlightTime, 16) + "\n")
	s.WriteString(MetricLabel.Render("") + Sparkline(m.speeds, 16) + "\n")

	s.WriteString("\n" + Separator(30) + "\n")
	for i, p := range m.presets {
		line := fmt.Sprintf("%d %-6s %s", i+1, p.Name, p.Description)
		if i == m.selected {
			s.WriteString(MetricValue.Render("> "+line) + "\n")
		} else {
			s.WriteString(Subtle.Render("  "+line) + "\n")
		}
	}
	if m.err != nil {
		s.WriteString("\n" + Warning.Render(m.err.Error()) + "\n")
	}

	left := lipgloss.JoinVertical(lipgloss.Left, Panel.Render(m.canvas.String()), m.events())
	main := lipgloss.JoinHorizontal(lipgloss.Top, left, Panel.Render(s.String()))

	if r, ok := m.feed.Last(); ok && m.session.State() != session.Flight {
		var flight map[string]float64
		if st := m.session.Stepper(); st != nil {
			flight = st.Metrics()
		}
		main = lipgloss.JoinVertical(lipgloss.Left, main, ResultCard(r, flight))
	}

	hints := KeyHint.Render("enter:ready  space:swing  1-6:club  r:mulligan  p:putt  c:camera  w:wind  g:god  b:ball  n:new hole  q:quit")
	return main + "\n" + hints + "\n"
}

func (m *SessionModel) events() string {
	return Subtle.Render(strings.Join(m.feed.Events(), "\n"))
}
