package feed

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/moonlander/internal/games/lander"
)

// FrameMsg is one binary message on the spectator feed.
// Terrain is only present when the client has not seen TerrainVersion yet.
type FrameMsg struct {
	Tick           uint64        `msgpack:"tick"`
	T              float64       `msgpack:"t"`
	Remaining      float64       `msgpack:"rem"`
	State          string        `msgpack:"st"`
	Paused         bool          `msgpack:"pa,omitempty"`
	Reason         string        `msgpack:"r,omitempty"`
	TerrainVersion uint64        `msgpack:"tv"`
	Terrain        []float64     `msgpack:"ter,omitempty"`
	Players        []PlayerMsg   `msgpack:"p"`
	Asteroids      []AsteroidMsg `msgpack:"a"`
	Events         []EventMsg    `msgpack:"ev,omitempty"`
}

// PlayerMsg is a lander on the wire.
type PlayerMsg struct {
	Team    string  `msgpack:"team"`
	Flag    string  `msgpack:"flag,omitempty"`
	X       float64 `msgpack:"x"`
	Y       float64 `msgpack:"y"`
	VX      float64 `msgpack:"vx"`
	VY      float64 `msgpack:"vy"`
	Heading float64 `msgpack:"h"`
	Fuel    float64 `msgpack:"f"`
	Main    bool    `msgpack:"m,omitempty"`
	Left    bool    `msgpack:"l,omitempty"`
	Right   bool    `msgpack:"rt,omitempty"`
	State   string  `msgpack:"st"`
	Reason  string  `msgpack:"r,omitempty"`
	Score   int     `msgpack:"s"`
}

// AsteroidMsg is an asteroid on the wire.
type AsteroidMsg struct {
	ID      string  `msgpack:"id"`
	X       float64 `msgpack:"x"`
	Y       float64 `msgpack:"y"`
	Heading float64 `msgpack:"h"`
	Size    float64 `msgpack:"sz"`
}

// EventMsg is a flattened lander.Event.
type EventMsg struct {
	Kind   string `msgpack:"k"`
	Team   string `msgpack:"team,omitempty"`
	Detail string `msgpack:"d,omitempty"`
}

// Event kinds.
const (
	KindLanded     = "landed"
	KindCrashed    = "crashed"
	KindCollision  = "collision"
	KindSpawned    = "spawned"
	KindImpact     = "impact"
	KindFault      = "fault"
	KindEnding     = "ending"
	KindTerminated = "terminated"
)

// NewFrameMsg converts a step and its frame. withTerrain controls whether the
// height profile is attached.
func NewFrameMsg(step lander.StepResult, frame lander.Frame, withTerrain bool) FrameMsg {
	msg := FrameMsg{
		Tick:           frame.Tick,
		T:              frame.T,
		Remaining:      frame.Remaining,
		State:          frame.State.String(),
		Paused:         frame.Paused,
		Reason:         frame.Reason,
		TerrainVersion: frame.Terrain.Version(),
		Players:        make([]PlayerMsg, 0, len(frame.Players)),
		Asteroids:      make([]AsteroidMsg, 0, len(frame.Asteroids)),
	}
	if withTerrain {
		msg.Terrain = frame.Terrain.Heights()
	}
	for _, p := range frame.Players {
		msg.Players = append(msg.Players, PlayerMsg{
			Team:    p.Team,
			Flag:    p.Flag,
			X:       p.Position.X,
			Y:       p.Position.Y,
			VX:      p.Velocity.X,
			VY:      p.Velocity.Y,
			Heading: p.Heading,
			Fuel:    p.Fuel,
			Main:    p.Thrusters.Main,
			Left:    p.Thrusters.Left,
			Right:   p.Thrusters.Right,
			State:   p.State.String(),
			Reason:  p.CrashReason,
			Score:   p.Score,
		})
	}
	for _, a := range frame.Asteroids {
		msg.Asteroids = append(msg.Asteroids, AsteroidMsg{
			ID:      a.ID,
			X:       a.Position.X,
			Y:       a.Position.Y,
			Heading: a.Heading,
			Size:    a.Size,
		})
	}
	for _, e := range step.Events {
		msg.Events = append(msg.Events, eventMsg(e))
	}
	return msg
}

func eventMsg(e lander.Event) EventMsg {
	switch e := e.(type) {
	case lander.PlayerLanded:
		return EventMsg{Kind: KindLanded, Team: e.Team, Detail: fmt.Sprintf("score %d", e.Score)}
	case lander.PlayerCrashed:
		return EventMsg{Kind: KindCrashed, Team: e.Team, Detail: e.Reason}
	case lander.PlayerCollision:
		return EventMsg{Kind: KindCollision, Team: e.A, Detail: e.B}
	case lander.AsteroidSpawned:
		return EventMsg{Kind: KindSpawned, Detail: e.ID}
	case lander.AsteroidImpact:
		return EventMsg{Kind: KindImpact, Detail: fmt.Sprintf("%.0f", e.X)}
	case lander.BotFaulted:
		return EventMsg{Kind: KindFault, Team: e.Fault.Team, Detail: e.Fault.Err.Error()}
	case lander.MatchEnding:
		return EventMsg{Kind: KindEnding, Detail: e.Reason}
	case lander.MatchTerminated:
		return EventMsg{Kind: KindTerminated}
	default:
		return EventMsg{Kind: fmt.Sprintf("%T", e)}
	}
}

// Encode msgpack-encodes a frame message.
func Encode(msg FrameMsg) ([]byte, error) {
	data, err := msgpack.Marshal(&msg)
	if err != nil {
		return nil, fmt.Errorf("feed: cannot encode frame %d: %w", msg.Tick, err)
	}
	return data, nil
}

// Decode is the inverse of Encode, for clients written in Go.
func Decode(data []byte) (FrameMsg, error) {
	var msg FrameMsg
	if err := msgpack.Unmarshal(data, &msg); err != nil {
		return FrameMsg{}, fmt.Errorf("feed: cannot decode frame: %w", err)
	}
	return msg, nil
}
