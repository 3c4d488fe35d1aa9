// Package lander implements the moon lander simulation: terrain, lander
// physics, collisions, landing adjudication, asteroids and the sandboxed
// per-tick bot protocol, sequenced by Match.
//
// A Match has no locks and must be driven from a single goroutine.
package lander

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/moonlander/internal/config"
	"github.com/vovakirdan/moonlander/internal/core"
)

// MatchState is the lifecycle of a match.
type MatchState int

const (
	StateRunning MatchState = iota
	StateEnding
	StateTerminated
)

// String returns the lowercase state name.
func (s MatchState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateEnding:
		return "ending"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// End reasons.
const (
	ReasonTimeLimit   = "time limit reached"
	ReasonAllInactive = "all players landed or crashed"
	ReasonBotFault    = "bot fault"
)

var (
	ErrUnknownTeam   = errors.New("lander: unknown team")
	ErrDuplicateTeam = errors.New("lander: duplicate team")
	ErrEmptyTeam     = errors.New("lander: empty team name")
)

// Clock is the wall-clock source of a match.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// MatchOptions configures a new match.
type MatchOptions struct {
	Seed       int64  // 0 derives a seed from the current time
	ManualTeam string // Team steered through SetThrusters instead of a bot
	Logger     *log.Logger
	Clock      Clock
	Recorders  []ResultRecorder
	Terrain    *Terrain // Replaces generated terrain when set
}

// StepResult is what changed during one Update.
type StepResult struct {
	Tick           uint64
	T              float64
	State          MatchState
	TerrainVersion uint64
	Events         []Event
}

// Match owns every player, the terrain and the asteroid field, and advances
// them in a fixed order on each Update.
type Match struct {
	id        string
	cfg       config.LanderConfig
	seed      int64
	logger    *log.Logger
	clock     Clock
	recorders []ResultRecorder

	terrain   *Terrain
	view      TerrainView
	asteroids *AsteroidField
	judge     LandingJudge
	ramp      config.HazardRamp
	sandbox   *Sandbox

	players    []*Player
	byTeam     map[string]*Player
	bots       map[string]Bot
	manualTeam string

	state       MatchState
	tick        uint64
	t           float64
	start       time.Time
	paused      bool
	pausedAt    time.Time
	pausedTotal time.Duration
	exitAt      time.Time
	reason      string
	result      *MatchResult
	err         error
}

// NewMatch creates a running match with one lander per bot, plus one for
// opts.ManualTeam when no bot claims that team.
func NewMatch(cfg config.LanderConfig, bots []Bot, opts MatchOptions) (*Match, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("lander: invalid config: %w", err)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	clock := opts.Clock
	if clock == nil {
		clock = systemClock{}
	}

	id := uuid.NewString()
	m := &Match{
		id:         id,
		cfg:        cfg,
		seed:       seed,
		logger:     logger.With("match", id[:8]),
		clock:      clock,
		recorders:  opts.Recorders,
		judge:      NewLandingJudge(cfg),
		ramp:       config.NewHazardRamp(cfg),
		byTeam:     make(map[string]*Player),
		bots:       make(map[string]Bot),
		manualTeam: opts.ManualTeam,
	}
	m.sandbox = NewSandbox(cfg.Match, m.logger)

	teams := make([]string, 0, len(bots)+1)
	for _, b := range bots {
		team := b.Team()
		if team == "" {
			return nil, ErrEmptyTeam
		}
		if _, dup := m.bots[team]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTeam, team)
		}
		m.bots[team] = b
		teams = append(teams, team)
	}
	if opts.ManualTeam != "" {
		if _, ok := m.bots[opts.ManualTeam]; !ok {
			teams = append(teams, opts.ManualTeam)
		}
	}

	// Terrain is generated before spawning so the same seed always gives
	// the same surface regardless of roster size.
	if opts.Terrain != nil {
		m.terrain = opts.Terrain
	} else {
		m.terrain = NewTerrain(cfg.World, rng)
	}
	m.view = m.terrain.View()
	m.asteroids = NewAsteroidField(cfg, rng)

	width := float64(cfg.World.Width)
	for i, team := range teams {
		p := &Player{
			Team:     team,
			Position: core.V((float64(i)+0.5)*width/float64(len(teams)), cfg.World.Height-cfg.Physics.SpawnAltitude),
			Velocity: core.V(cfg.Physics.SpawnVX, cfg.Physics.SpawnVY),
			Fuel:     cfg.Fuel.Capacity,
		}
		if f, ok := m.bots[team].(Flagged); ok {
			p.Flag = f.Flag()
		}
		m.players = append(m.players, p)
		m.byTeam[team] = p
	}

	m.logger.Info("match created", "teams", len(teams), "seed", seed)
	return m, nil
}

// ID returns the match identifier.
func (m *Match) ID() string { return m.id }

// Seed returns the RNG seed the match was built with.
func (m *Match) Seed() int64 { return m.seed }

// Config returns the configuration the match runs with.
func (m *Match) Config() config.LanderConfig { return m.cfg }

// State returns the lifecycle state.
func (m *Match) State() MatchState { return m.state }

// Tick returns the number of simulated ticks.
func (m *Match) Tick() uint64 { return m.tick }

// T returns the elapsed match time in seconds as of the last tick.
func (m *Match) T() float64 { return m.t }

// Remaining returns the seconds left before the time limit.
func (m *Match) Remaining() float64 {
	return max(m.cfg.Match.TimeLimit-m.t, 0)
}

// Paused reports whether the match is paused.
func (m *Match) Paused() bool { return m.paused }

// ManualTeam returns the manually steered team, if any.
func (m *Match) ManualTeam() string { return m.manualTeam }

// Err returns the fault that stopped the match in unsafe mode.
func (m *Match) Err() error { return m.err }

// Result returns the finalized result once the match is ending.
func (m *Match) Result() (MatchResult, bool) {
	if m.result == nil {
		return MatchResult{}, false
	}
	return *m.result, true
}

// Teams returns the team names in spawn order.
func (m *Match) Teams() []string {
	out := make([]string, len(m.players))
	for i, p := range m.players {
		out[i] = p.Team
	}
	return out
}

// Player returns a copy of one team's lander.
func (m *Match) Player(team string) (PlayerInfo, bool) {
	p, ok := m.byTeam[team]
	if !ok {
		return PlayerInfo{}, false
	}
	return p.Info(), true
}

// Players returns copies of every lander in spawn order.
func (m *Match) Players() []PlayerInfo {
	out := make([]PlayerInfo, len(m.players))
	for i, p := range m.players {
		out[i] = p.Info()
	}
	return out
}

// Terrain returns a read-only view of the current terrain.
func (m *Match) Terrain() TerrainView {
	m.refreshView()
	return m.view
}

// Asteroids returns copies of the live asteroids.
func (m *Match) Asteroids() []AsteroidInfo {
	return m.asteroids.Live()
}

// InjectAsteroid adds a scripted asteroid.
func (m *Match) InjectAsteroid(a Asteroid) {
	m.asteroids.Inject(a)
}

// SetPaused pauses or resumes the match. Paused wall time does not count
// towards the time limit.
func (m *Match) SetPaused(paused bool) {
	if paused == m.paused {
		return
	}
	now := m.clock.Now()
	if paused {
		m.pausedAt = now
	} else if !m.start.IsZero() {
		m.pausedTotal += now.Sub(m.pausedAt)
	}
	m.paused = paused
	m.logger.Debug("pause toggled", "paused", paused)
}

// SetThrusters replaces a team's thruster flags directly. It is the control
// path for the manual team.
func (m *Match) SetThrusters(team string, ins Instructions) error {
	p, ok := m.byTeam[team]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTeam, team)
	}
	if p.Active() {
		p.Apply(ins)
	}
	return nil
}

// ReplaceBot swaps the decision provider for a team. The new bot starts with
// no state from the old one.
func (m *Match) ReplaceBot(team string, bot Bot) error {
	p, ok := m.byTeam[team]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTeam, team)
	}
	m.bots[team] = bot
	if f, ok := bot.(Flagged); ok {
		p.Flag = f.Flag()
	}
	m.logger.Info("bot replaced", "team", team)
	return nil
}

// Update advances the match by one tick of dt wall time.
//
// While running, each tick calls the bots, integrates the landers, judges
// landings, resolves collisions and updates asteroids, then checks whether
// the match is over. In unsafe mode a bot fault terminates the match at
// once and is returned from this and every later call.
func (m *Match) Update(dt time.Duration) (StepResult, error) {
	if m.err != nil {
		return m.stepResult(nil), m.err
	}

	now := m.clock.Now()
	switch m.state {
	case StateTerminated:
		return m.stepResult(nil), nil
	case StateEnding:
		if now.Before(m.exitAt) {
			return m.stepResult(nil), nil
		}
		m.state = StateTerminated
		m.logger.Info("match terminated")
		return m.stepResult([]Event{MatchTerminated{}}), nil
	}
	if m.paused {
		return m.stepResult(nil), nil
	}

	if m.start.IsZero() {
		m.start = now
	}
	m.tick++
	m.t = m.elapsed(now)
	step := dt.Seconds() * m.cfg.Physics.Speedup

	events, err := m.callBots(step)
	if err != nil {
		m.err = err
		m.logger.Error("match halted by bot fault", "err", err)
		reason := ReasonBotFault
		var fault *BotFault
		if errors.As(err, &fault) {
			reason = fmt.Sprintf("%s: %s", ReasonBotFault, fault.Team)
		}
		res := m.finalize(now, reason)
		m.state = StateTerminated
		events = append(events, MatchEnding{Reason: reason, Result: res}, MatchTerminated{})
		return m.stepResult(events), err
	}

	width := float64(m.cfg.World.Width)
	for _, p := range m.players {
		p.Integrate(step, width, m.cfg.Physics, m.cfg.Fuel)
	}

	events = append(events, m.judgeLandings()...)

	if m.cfg.Collisions.Players {
		events = append(events, resolveCollisions(m.active(), m.cfg.Collisions.Radius)...)
	}

	events = append(events, m.asteroids.Update(m.t, step, m.players, m.terrain, m.cfg.Collisions.Asteroids)...)

	m.logEvents(events)

	if reason := m.endReason(); reason != "" {
		events = append(events, m.end(now, reason))
	}
	return m.stepResult(events), nil
}

func (m *Match) elapsed(now time.Time) float64 {
	return (now.Sub(m.start) - m.pausedTotal).Seconds() * m.cfg.Physics.Speedup
}

func (m *Match) active() []*Player {
	out := make([]*Player, 0, len(m.players))
	for _, p := range m.players {
		if p.Active() {
			out = append(out, p)
		}
	}
	return out
}

func (m *Match) refreshView() {
	if m.view.Version() != m.terrain.Version() {
		m.view = m.terrain.View()
	}
}

// callBots collects instructions from every flying, bot-driven lander.
func (m *Match) callBots(dt float64) ([]Event, error) {
	m.refreshView()
	live := m.asteroids.Live()

	var events []Event
	for _, p := range m.players {
		if !p.Active() || p.Team == m.manualTeam {
			continue
		}
		bot, ok := m.bots[p.Team]
		if !ok {
			continue
		}

		out := m.sandbox.Invoke(bot, m.snapshot(p, dt, live), m.tick)
		if out.Fault != nil {
			events = append(events, BotFaulted{Fault: out.Fault})
			if !m.sandbox.SafeMode {
				return events, out.Fault
			}
			continue
		}
		if out.Instructions != nil {
			p.Apply(*out.Instructions)
		}
	}
	return events, nil
}

func (m *Match) snapshot(me *Player, dt float64, live []AsteroidInfo) *Snapshot {
	others := make(map[string]PlayerInfo, len(m.players)-1)
	for _, p := range m.players {
		if p != me {
			others[p.Team] = p.Info()
		}
	}
	return &Snapshot{
		T:         m.t,
		DT:        dt,
		Remaining: m.Remaining(),
		Me:        me.Info(),
		Terrain:   m.view,
		Players:   others,
		Asteroids: append([]AsteroidInfo(nil), live...),
	}
}

func (m *Match) judgeLandings() []Event {
	var events []Event
	remaining := m.ramp.Remaining(m.t)
	for _, p := range m.players {
		if !p.Active() {
			continue
		}
		v := m.judge.Evaluate(p, m.terrain, remaining)
		if !v.Contact {
			continue
		}
		if v.Landed() {
			p.land(v.Ground, m.cfg.Landing.AvatarHeight, v.Score)
			events = append(events, PlayerLanded{Team: p.Team, Score: v.Score, SiteWidth: v.SiteWidth})
		} else {
			p.crash(v.Reason())
			events = append(events, PlayerCrashed{Team: p.Team, Reason: p.CrashReason})
		}
	}
	return events
}

func (m *Match) logEvents(events []Event) {
	for _, e := range events {
		switch ev := e.(type) {
		case PlayerLanded:
			m.logger.Info("landed", "team", ev.Team, "score", ev.Score)
		case PlayerCrashed:
			m.logger.Info("crashed", "team", ev.Team, "reason", ev.Reason)
		case AsteroidImpact:
			m.logger.Debug("asteroid impact", "x", ev.X, "radius", ev.Radius)
		}
	}
}

func (m *Match) endReason() string {
	if m.t > m.cfg.Match.TimeLimit {
		return ReasonTimeLimit
	}
	for _, p := range m.players {
		if p.Active() {
			return ""
		}
	}
	return ReasonAllInactive
}

// end moves the match to StateEnding and finalizes it.
func (m *Match) end(now time.Time, reason string) Event {
	m.state = StateEnding
	m.exitAt = now.Add(time.Duration(m.cfg.Match.ExitDelay * float64(time.Second)))
	res := m.finalize(now, reason)
	return MatchEnding{Reason: reason, Result: res}
}

// finalize ranks the teams, stores the result and notifies the recorders.
func (m *Match) finalize(now time.Time, reason string) MatchResult {
	m.reason = reason
	res := MatchResult{
		MatchID:   m.id,
		Seed:      m.seed,
		StartedAt: m.start,
		EndedAt:   now,
		Elapsed:   m.t,
		Reason:    reason,
	}
	for _, p := range m.players {
		res.Teams = append(res.Teams, TeamResult{
			Team:   p.Team,
			State:  p.State,
			Score:  p.Score,
			Reason: p.CrashReason,
			Fuel:   p.Fuel,
		})
	}
	rankTeams(res.Teams)
	m.result = &res

	m.logger.Info("match ending", "reason", reason, "t", fmt.Sprintf("%.1f", m.t))
	for i, t := range res.Teams {
		m.logger.Info(fmt.Sprintf("%d. %s: %d", i+1, t.Team, t.Score), "state", t.State)
	}

	for _, rec := range m.recorders {
		if err := rec.SaveMatchResult(res); err != nil {
			m.logger.Error("failed to record match", "err", err)
		}
	}
	return res
}

func (m *Match) stepResult(events []Event) StepResult {
	return StepResult{
		Tick:           m.tick,
		T:              m.t,
		State:          m.state,
		TerrainVersion: m.terrain.Version(),
		Events:         events,
	}
}

// Frame returns the full render state.
func (m *Match) Frame() Frame {
	return Frame{
		Tick:      m.tick,
		T:         m.t,
		Remaining: m.Remaining(),
		Hazard:    m.ramp.Level(m.t),
		State:     m.state,
		Paused:    m.paused,
		Reason:    m.reason,
		Terrain:   m.Terrain(),
		Players:   m.Players(),
		Asteroids: m.Asteroids(),
	}
}
