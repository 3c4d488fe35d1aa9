package lander

// Event is something that happened during a tick. Renderers and tests
// resynchronise from the events in each StepResult.
type Event interface {
	event()
}

// PlayerLanded is emitted on a clean touchdown.
type PlayerLanded struct {
	Team      string
	Score     int
	SiteWidth int
}

// PlayerCrashed is emitted when a lander is destroyed.
type PlayerCrashed struct {
	Team   string
	Reason string
}

// PlayerCollision is emitted for every pair that exchanged momentum.
type PlayerCollision struct {
	A, B string
}

// AsteroidSpawned is emitted when the field adds an asteroid.
type AsteroidSpawned struct {
	ID string
}

// AsteroidImpact is emitted when an asteroid reaches the ground.
type AsteroidImpact struct {
	ID     string
	X      float64
	Radius float64
}

// BotFaulted is emitted for every failed decision call.
type BotFaulted struct {
	Fault *BotFault
}

// MatchEnding is emitted once, on the transition to StateEnding.
type MatchEnding struct {
	Reason string
	Result MatchResult
}

// MatchTerminated is emitted once, on the transition to StateTerminated.
type MatchTerminated struct{}

func (PlayerLanded) event()    {}
func (PlayerCrashed) event()   {}
func (PlayerCollision) event() {}
func (AsteroidSpawned) event() {}
func (AsteroidImpact) event()  {}
func (BotFaulted) event()      {}
func (MatchEnding) event()     {}
func (MatchTerminated) event() {}
