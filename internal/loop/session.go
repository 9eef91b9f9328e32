package loop

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/input"
	gamecfg "github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/scores"
)

// Phase is the session controller's lifecycle state.
type Phase int

const (
	PhaseIdle    Phase = iota // Waiting for Start
	PhasePlaying              // Frames advance the simulation
	PhaseEnded                // Frozen, end overlay shown
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhaseEnded:
		return "ended"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Session affordance keys.
const (
	KeyPlayAgain input.Key = "r"
	KeyClear     input.Key = "c"
	KeyNewGame   input.Key = "n"
	KeyQuit      input.Key = "q"
)

const storeTimeout = 2 * time.Second

// SessionOptions configures a session controller.
type SessionOptions struct {
	Layout   gamecfg.Layout
	Settings config.Settings
	Player   string       // Score history owner; empty disables the scoreboard
	Store    scores.Store // Nil disables persistence
	Effects  audio.Effects
	Rand     *rand.Rand
	Logger   *log.Logger
}

// EndScreen is what the end overlay shows.
type EndScreen struct {
	Message string
	Score   int
	Rank    int // 1-based, 0 when unknown
	Total   int // Entries in the player's history
	Top     []scores.Entry
	Cleared bool // History was cleared from this screen
}

// Session drives one player's games: it owns the state, the timers and the
// input wiring, and moves between idle, playing and ended.
type Session struct {
	opts   SessionOptions
	shoot  input.Key
	log    *log.Logger
	state  *State
	timers *Scheduler
	bus    input.Bus

	phase         Phase
	end           *EndScreen
	controlsReady bool
	quit          bool
	version       int // Bumped on every change the end overlay depends on

	countdown TimerID
	ramp      TimerID
}

// NewSession creates an idle session whose clock starts at now.
func NewSession(opts SessionOptions, now time.Time) *Session {
	if opts.Layout.Width == 0 {
		opts.Layout = gamecfg.DefaultLayout()
	}
	opts.Settings, _ = opts.Settings.Normalize()
	if opts.Effects == nil {
		opts.Effects = audio.Nop{}
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(now.UnixNano()))
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session{
		opts:   opts,
		shoot:  opts.Settings.Shoot(),
		log:    logger,
		state:  NewState(opts.Layout, opts.Settings.GameTime, opts.Rand),
		timers: NewScheduler(now),
	}
	s.bus.Subscribe(s.handleAffordance)
	return s
}

// State returns the live session state. Callers must treat it as read-only.
func (s *Session) State() *State { return s.state }

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase { return s.phase }

// End returns the end overlay contents, or nil while not ended.
func (s *Session) End() *EndScreen { return s.end }

// Quit reports whether the player asked to leave.
func (s *Session) Quit() bool { return s.quit }

// Version changes whenever the phase or end overlay changes.
func (s *Session) Version() int { return s.version }

// Player returns the score history owner.
func (s *Session) Player() string { return s.opts.Player }

// Timers exposes the session scheduler.
func (s *Session) Timers() *Scheduler { return s.timers }

// SetupControls subscribes the movement and shoot handler. Calling it again
// is a no-op, so every key still produces exactly one reaction.
func (s *Session) SetupControls() {
	if s.controlsReady {
		return
	}
	s.controlsReady = true
	s.bus.Subscribe(s.handleControl)
}

// ControlHandlers returns the number of subscribed input handlers.
func (s *Session) ControlHandlers() int {
	return s.bus.Len()
}

// Dispatch delivers an input event to the subscribed handlers.
func (s *Session) Dispatch(ev input.Event) {
	s.bus.Publish(ev)
}

// Start begins the first game. Only valid while idle.
func (s *Session) Start() {
	if s.phase != PhaseIdle {
		return
	}
	s.SetupControls()
	s.state.Reset(s.opts.Rand)
	s.play()
}

// Restart begins a new game from the end overlay. Only valid once ended.
func (s *Session) Restart() {
	if s.phase != PhaseEnded {
		return
	}
	s.teardown()
	s.state.Reset(s.opts.Rand)
	s.play()
}

// NewGame abandons whatever is happening and begins a fresh game. Available
// in every phase.
func (s *Session) NewGame() {
	s.teardown()
	s.SetupControls()
	s.state.Reset(s.opts.Rand)
	s.play()
}

// ClearScoreboard deletes the player's history. Only valid once ended.
func (s *Session) ClearScoreboard() {
	if s.phase != PhaseEnded || s.end == nil {
		return
	}
	if s.opts.Store != nil && s.opts.Player != "" {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := s.opts.Store.Clear(ctx, s.opts.Player); err != nil {
			s.log.Error("clear score history", "player", s.opts.Player, "err", err)
			return
		}
	}
	s.log.Info("score history cleared", "player", s.opts.Player)
	s.end.Cleared = true
	s.end.Top = nil
	s.end.Rank = 0
	s.end.Total = 0
	s.version++
}

// Frame runs due timers and, while playing, advances the simulation by one
// tick. A tick that ends the game moves the session to ended.
func (s *Session) Frame(now time.Time) {
	s.timers.Advance(now)
	if s.phase != PhasePlaying {
		return
	}
	Step(s.state, s.env())
	if s.state.Over || s.state.Won {
		s.finish()
	}
}

func (s *Session) env() Env {
	return Env{Rand: s.opts.Rand, Effects: s.opts.Effects, Timers: s.timers}
}

// play enters the playing phase and arms the countdown and difficulty ramp.
func (s *Session) play() {
	s.phase = PhasePlaying
	s.end = nil
	s.version++
	s.opts.Effects.StartMusic()

	s.countdown = s.timers.Every(gamecfg.CountdownInterval, func() {
		if s.state.Countdown() {
			s.timers.Cancel(s.countdown)
		}
	})
	s.ramp = s.timers.Every(gamecfg.BoostInterval, func() {
		if s.state.Boost() {
			s.timers.Cancel(s.ramp)
		}
	})
	s.log.Debug("game started", "player", s.opts.Player, "seconds", s.state.GameTime)
}

// teardown cancels every timer the session owns. Safe to call repeatedly.
func (s *Session) teardown() {
	s.timers.CancelAll()
	s.countdown = 0
	s.ramp = 0
}

// finish freezes the session, records the score and builds the end overlay.
func (s *Session) finish() {
	s.phase = PhaseEnded
	s.timers.Cancel(s.countdown)
	s.timers.Cancel(s.ramp)
	s.state.Ship.Stop()

	st := s.state
	end := &EndScreen{Message: EndMessage(st), Score: st.Score}
	s.record(end)
	s.end = end
	s.version++
	s.log.Info("game over", "player", s.opts.Player, "score", st.Score,
		"won", st.Won, "lives", st.Lives, "timeLeft", st.TimeLeft)
}

// record appends the finished game to the player's history and fills in the
// scoreboard. Store failures are logged and leave the scoreboard empty.
func (s *Session) record(end *EndScreen) {
	if s.opts.Store == nil || s.opts.Player == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	entry := scores.Entry{Player: s.opts.Player, Score: end.Score, PlayedAt: time.Now()}
	if err := s.opts.Store.Append(ctx, entry); err != nil {
		s.log.Error("save score", "player", s.opts.Player, "err", err)
		return
	}
	history, err := s.opts.Store.History(ctx, s.opts.Player)
	if err != nil {
		s.log.Error("load score history", "player", s.opts.Player, "err", err)
		return
	}
	end.Rank = scores.Rank(history, end.Score)
	end.Total = len(history)
	end.Top = scores.Top(history, gamecfg.TopScoresShown)
}

// EndMessage picks the end overlay headline for a finished state.
func EndMessage(st *State) string {
	switch {
	case st.Won:
		return "Champion!"
	case st.Lives <= 0:
		return "You Lost!"
	case st.Score < gamecfg.GoodScore:
		return fmt.Sprintf("You can do better: %d", st.Score)
	default:
		return "Winner!"
	}
}

// handleControl maps movement keys onto ship velocity and fires bullets.
func (s *Session) handleControl(ev input.Event) {
	ship := s.state.Ship
	v, fire := input.Handle(ev, input.Velocity{DX: ship.DX, DY: ship.DY}, ship.Speed, s.shoot)
	if s.phase != PhasePlaying {
		return
	}
	ship.DX, ship.DY = v.DX, v.DY
	if fire {
		FireBullet(s.state, s.timers)
	}
}

// handleAffordance handles the session buttons: play again, clear, new game
// and quit. The shoot key never doubles as a button.
func (s *Session) handleAffordance(ev input.Event) {
	if ev.Action != input.Press || (ev.Key == s.shoot && s.phase == PhasePlaying) {
		return
	}
	switch ev.Key {
	case KeyQuit, input.KeyCtrlC:
		s.quit = true
	case KeyNewGame:
		s.NewGame()
	case KeyPlayAgain:
		s.Restart()
	case KeyClear:
		s.ClearScoreboard()
	}
}
