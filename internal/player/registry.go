package player

import (
	"sort"
	"sync"

	"github.com/hersh/startris/internal/game"
)

// Player is one participant and the statistics of their finished games.
type Player struct {
	ID      string
	Name    string
	Playing bool

	// live game
	Score int
	Lines int
	Level int
	State string

	// finished games in this process
	Games     int
	Best      int
	BestLines int
	History   []Result
}

// Result is the outcome of one finished game.
type Result struct {
	Score int
	Lines int
	Level int
}

// Registry tracks players and their games. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	players map[string]*Player
	order   []string
}

func NewRegistry() *Registry {
	return &Registry{
		players: make(map[string]*Player),
	}
}

func (r *Registry) Add(id, name string) Player {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[id]
	if !ok {
		p = &Player{ID: id}
		r.players[id] = p
		r.order = append(r.order, id)
	}
	p.Name = name
	return *p
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.players[id]; !ok {
		return
	}
	delete(r.players, id)
	for i, pid := range r.order {
		if pid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Get returns a copy of the player and whether it exists.
func (r *Registry) Get(id string) (Player, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.players[id]
	if !ok {
		return Player{}, false
	}
	return p.copy(), true
}

// Update records the live state of a player's current game.
func (r *Registry) Update(id string, score, lines, level int, state string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.players[id]; ok {
		p.Playing = state == game.StateRunning.String() || state == game.StatePaused.String()
		p.Score = score
		p.Lines = lines
		p.Level = level
		p.State = state
	}
}

// RecordGame stores a finished game and updates the player's best.
func (r *Registry) RecordGame(id string, res Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[id]
	if !ok {
		return
	}
	p.Playing = false
	p.Games++
	p.History = append(p.History, res)
	if res.Score > p.Best {
		p.Best = res.Score
	}
	if res.Lines > p.BestLines {
		p.BestLines = res.Lines
	}
}

// All returns copies of every player in join order.
func (r *Registry) All() []Player {
	r.mu.RLock()
	defer r.mu.RUnlock()

	players := make([]Player, 0, len(r.order))
	for _, id := range r.order {
		players = append(players, r.players[id].copy())
	}
	return players
}

// Ranking returns players ordered by best score, highest first.
func (r *Registry) Ranking() []Player {
	players := r.All()
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Best > players[j].Best
	})
	return players
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}

func (r *Registry) CountPlaying() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, p := range r.players {
		if p.Playing {
			count++
		}
	}
	return count
}

func (p *Player) copy() Player {
	c := *p
	c.History = append([]Result(nil), p.History...)
	return c
}
