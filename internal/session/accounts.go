// Package session implements the bitmato game service: accounts,
// matchmaking, matches and the line-protocol sessions that drive them.
package session

import (
	"fmt"
	"sync"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/bitmato-studio/bitmato-chess/internal/errors"
)

// Player is a logged-in user. Every login gets a fresh ID.
type Player struct {
	ID    string
	Name  string
	Guest bool
}

// Accounts is an in-memory account store. The first login with a name
// registers it; later logins must present the same password.
type Accounts struct {
	mu      sync.Mutex
	hashes  map[string][]byte  // name -> bcrypt hash
	players map[string]*Player // id -> online player
	cost    int
}

// NewAccounts creates an empty store hashing with the given bcrypt cost.
// A cost of 0 selects bcrypt.DefaultCost.
func NewAccounts(cost int) *Accounts {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Accounts{
		hashes:  make(map[string][]byte),
		players: make(map[string]*Player),
		cost:    cost,
	}
}

// Login authenticates or registers name and returns the online player.
// An empty name logs in as a guest with a generated name.
func (a *Accounts) Login(name, password string) (*Player, error) {
	p := &Player{ID: uuid.NewString(), Name: name}

	if name == "" {
		p.Name = petname.Generate(2, "-")
		p.Guest = true
	} else {
		if password == "" {
			return nil, fmt.Errorf("password required: %w", errors.ErrAuth)
		}
		if err := a.checkOrRegister(name, password); err != nil {
			return nil, err
		}
	}

	a.mu.Lock()
	a.players[p.ID] = p
	a.mu.Unlock()
	return p, nil
}

func (a *Accounts) checkOrRegister(name, password string) error {
	a.mu.Lock()
	hash, known := a.hashes[name]
	a.mu.Unlock()

	if known {
		if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
			return fmt.Errorf("user %q: wrong password: %w", name, errors.ErrAuth)
		}
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return fmt.Errorf("user %q: %v: %w", name, err, errors.ErrAuth)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if existing, raced := a.hashes[name]; raced {
		// Someone registered the name while we were hashing.
		if bcrypt.CompareHashAndPassword(existing, []byte(password)) != nil {
			return fmt.Errorf("user %q: wrong password: %w", name, errors.ErrAuth)
		}
		return nil
	}
	a.hashes[name] = hash
	return nil
}

// Player returns the online player with the given id.
func (a *Accounts) Player(id string) (*Player, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, ok := a.players[id]
	return p, ok
}

// Logout forgets an online player. The registration is kept.
func (a *Accounts) Logout(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.players, id)
}

// Online returns the number of logged-in players.
func (a *Accounts) Online() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.players)
}

// Registered returns the number of registered names.
func (a *Accounts) Registered() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.hashes)
}
