package relay

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/golfsim/internal/session"
	"github.com/san-kum/golfsim/internal/shot"
	"github.com/san-kum/golfsim/internal/terrain"
)

var ErrUnknownAction = errors.New("relay: unknown action")

// Action is what the remote app sends.
type Action struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

const (
	ActionReady      = "READY"
	ActionSwing      = "SWING"
	ActionRemote     = "REMOTE"
	ActionEnvControl = "ENV_CONTROL"
	ActionGodMode    = "GOD_MODE"
	ActionEquipItem  = "EQUIP_ITEM"
	ActionPutting    = "PUTTING"
)

type remotePayload struct {
	Command string `json:"command"`
	Mode    string `json:"mode"`
}

type envPayload struct {
	Type      string     `json:"type"`
	Value     float64    `json:"value"`
	Direction mgl64.Vec3 `json:"direction"`
}

type equipPayload struct {
	ItemID   string `json:"itemId"`
	ItemName string `json:"itemName"`
}

type godPayload struct {
	Enabled *bool `json:"enabled"`
}

// ParseAction decodes one remote action into a session command.
func ParseAction(data []byte) (session.Command, error) {
	var a Action
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode action: %w", err)
	}
	return a.Command()
}

func (a Action) Command() (session.Command, error) {
	switch strings.ToUpper(a.Type) {
	case ActionReady:
		return session.PlayerReady{}, nil

	case ActionSwing:
		var s session.Swing
		if err := a.decode(&s); err != nil {
			return nil, err
		}
		return s, nil

	case ActionRemote:
		var p remotePayload
		if err := a.decode(&p); err != nil {
			return nil, err
		}
		switch p.Command {
		case "mulligan":
			return session.Mulligan{}, nil
		case "new_hole":
			return session.NewHole{}, nil
		case "camera":
			mode, err := session.ParseCameraMode(p.Mode)
			if err != nil {
				return nil, err
			}
			return session.SetCameraMode{Mode: mode}, nil
		}
		return nil, fmt.Errorf("%w: remote command %q", ErrUnknownAction, p.Command)

	case ActionEnvControl:
		var p envPayload
		if err := a.decode(&p); err != nil {
			return nil, err
		}
		return session.SetEnvironment{Kind: p.Type, Value: p.Value, Direction: p.Direction}, nil

	case ActionGodMode:
		var p godPayload
		if err := a.decode(&p); err != nil {
			return nil, err
		}
		// the app sends GOD_MODE without a payload to switch it on
		return session.GodMode{Enabled: p.Enabled == nil || *p.Enabled}, nil

	case ActionEquipItem:
		var p equipPayload
		if err := a.decode(&p); err != nil {
			return nil, err
		}
		return session.EquipBall{ID: p.ItemID}, nil

	case ActionPutting:
		var p session.TogglePutting
		if err := a.decode(&p); err != nil {
			return nil, err
		}
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
}

func (a Action) decode(v any) error {
	if len(a.Payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(a.Payload, v); err != nil {
		return fmt.Errorf("decode %s payload: %w", a.Type, err)
	}
	return nil
}

// Message is what the relay pushes to clients.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

const (
	MsgStateChanged      = "state_changed"
	MsgShotResult        = "shot_result"
	MsgCameraModeChanged = "camera_mode_changed"
	MsgAudioCue          = "audio_cue"
	MsgError             = "error"
)

type StateChange struct {
	From session.State `json:"from"`
	To   session.State `json:"to"`
}

type ShotResult struct {
	shot.Result
}

type CameraChange struct {
	Mode session.CameraMode `json:"mode"`
}

type AudioCue struct {
	Cue terrain.Cue `json:"cue"`
}

type ErrorReply struct {
	Message string `json:"message"`
}
