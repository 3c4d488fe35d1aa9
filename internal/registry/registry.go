// Package registry provides a global registry for bot factories.
// Bots register themselves in init() functions, allowing the launcher
// to assemble a roster from "kind:team" specs without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/vovakirdan/moonlander/internal/games/lander"
)

// ErrUnknownBot is returned when a bot kind is not registered.
var ErrUnknownBot = errors.New("registry: unknown bot")

// BotInfo contains metadata about a registered bot kind.
type BotInfo struct {
	Kind        string
	Description string
}

// Factory creates a new bot that flies for the given team.
type Factory func(team string) lander.Bot

var (
	factories    = make(map[string]Factory)
	descriptions = make(map[string]string)
	mu           sync.RWMutex
)

// Register adds a bot factory to the registry.
// Typically called from a bot package's init() function.
// Panics if a bot with the same kind is already registered.
func Register(kind, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[kind]; exists {
		panic(fmt.Sprintf("registry: bot %q already registered", kind))
	}

	factories[kind] = f
	descriptions[kind] = description
}

// List returns information about all registered bots, sorted by kind.
func List() []BotInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]BotInfo, 0, len(factories))
	for kind := range factories {
		result = append(result, BotInfo{
			Kind:        kind,
			Description: descriptions[kind],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Kind < result[j].Kind
	})

	return result
}

// Create instantiates a new bot of the given kind for team.
func Create(kind, team string) (lander.Bot, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[kind]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownBot, kind)
	}

	return f(team), nil
}

// Exists checks if a bot with the given kind is registered.
func Exists(kind string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[kind]
	return ok
}

// ParseSpec splits a "kind:team" roster entry. A bare kind flies under its
// own name.
func ParseSpec(spec string) (kind, team string, err error) {
	kind, team, found := strings.Cut(strings.TrimSpace(spec), ":")
	if !found {
		team = kind
	}
	if kind == "" || team == "" {
		return "", "", fmt.Errorf("registry: malformed bot spec %q, expected kind:team", spec)
	}
	return kind, team, nil
}

// Roster creates one bot per spec.
func Roster(specs []string) ([]lander.Bot, error) {
	bots := make([]lander.Bot, 0, len(specs))
	for _, spec := range specs {
		kind, team, err := ParseSpec(spec)
		if err != nil {
			return nil, err
		}
		b, err := Create(kind, team)
		if err != nil {
			return nil, err
		}
		bots = append(bots, b)
	}
	return bots, nil
}
