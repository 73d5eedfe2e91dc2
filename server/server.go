package server

import (
	"context"
	"io"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bridgelab/bridge-rl/bridge"
	"github.com/bridgelab/bridge-rl/env"
	"github.com/bridgelab/bridge-rl/rl"
)

// Server exposes environment episodes over HTTP so out-of-process agents
// can drive them. Each episode is a sequential or simultaneous environment
// instance keyed by a generated id.
type Server struct {
	Addr   string
	server *http.Server
	logger zerolog.Logger

	lock     sync.Mutex
	episodes map[string]*episode
}

type episode struct {
	id           string
	sequential   *env.Env
	simultaneous *env.SimultaneousEnv

	// mu serializes all access to the environment and observations of this
	// episode; the registry lock only guards the map. Environments are not
	// safe for concurrent use.
	mu           sync.Mutex
	observations map[bridge.Seat]rl.Observation
}

func NewServer(addr string, logger zerolog.Logger) *Server {
	s := &Server{
		Addr:     addr,
		logger:   logger,
		episodes: make(map[string]*episode),
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.POST("/episodes", s.handleCreate)
	r.GET("/episodes/:id", s.handleGet)
	r.GET("/episodes/:id/observation/:seat", s.handleObservation)
	r.POST("/episodes/:id/step", s.handleStep)
	r.DELETE("/episodes/:id", s.handleDelete)
	s.server = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	return s
}

// Start runs the listener until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.Addr).Msg("listening")
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.server.Shutdown(context.Background())
		return nil
	}
}

type createRequest struct {
	Variant string `json:"variant"`

	Seed          int64   `json:"seed"`
	Dealer        int     `json:"dealer"`
	DealerPolicy  string  `json:"dealer_policy"`
	Scoring       string  `json:"scoring"`
	Vulnerable    bool    `json:"vulnerable"`
	IllegalPolicy string  `json:"illegal_policy"`
	Penalty       float64 `json:"penalty"`
}

func (req *createRequest) config() *env.Config {
	cfg := env.DefaultConfig()
	if req.Seed != 0 {
		cfg.Seed = req.Seed
	}
	if req.Dealer >= 0 && req.Dealer < bridge.NumSeats {
		cfg.Dealer = bridge.Seat(req.Dealer)
	}
	switch req.DealerPolicy {
	case "fixed":
		cfg.DealerPolicy = env.DealerFixed
	case "random":
		cfg.DealerPolicy = env.DealerRandom
	}
	if req.Scoring == "duplicate" {
		cfg.Scoring = bridge.ScoreDuplicate
	}
	cfg.Vulnerable = req.Vulnerable
	if req.IllegalPolicy == "penalize" {
		cfg.IllegalPolicy = env.IllegalPenalize
	}
	if req.Penalty != 0 {
		cfg.Penalty = req.Penalty
	}
	return cfg
}

func (s *Server) handleCreate(c *gin.Context) {
	req := createRequest{Dealer: -1}
	// an empty body means all defaults
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to unmarshal request"})
		return
	}

	ep := &episode{id: uuid.New().String()}
	var (
		obs map[bridge.Seat]rl.Observation
		err error
	)
	switch req.Variant {
	case "", "sequential":
		ep.sequential = env.NewEnv(req.config())
		obs, _, err = ep.sequential.Reset()
	case "simultaneous":
		ep.simultaneous = env.NewSimultaneousEnv(req.config())
		obs, _, err = ep.simultaneous.Reset()
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown variant " + req.Variant})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ep.observations = obs
	// snapshot the state before the episode becomes visible to other requests
	state := s.stateOf(ep)

	s.lock.Lock()
	s.episodes[ep.id] = ep
	s.lock.Unlock()

	s.logger.Info().Str("episode", ep.id).Str("variant", req.Variant).Msg("episode created")
	c.JSON(http.StatusCreated, state)
}

func (s *Server) lookup(id string) (*episode, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	ep, ok := s.episodes[id]
	return ep, ok
}

func (ep *episode) activeSeat() bridge.Seat {
	if ep.sequential != nil {
		return ep.sequential.ActiveSeat()
	}
	return ep.simultaneous.ActiveSeat()
}

func (ep *episode) legalActions() []int {
	if ep.sequential != nil {
		return ep.sequential.LegalActions()
	}
	return ep.simultaneous.LegalActions()
}

func (ep *episode) done() bool {
	if ep.sequential != nil {
		return ep.sequential.Done()
	}
	return ep.simultaneous.Done()
}

func (ep *episode) game() *bridge.Game {
	if ep.sequential != nil {
		return ep.sequential.Game()
	}
	return ep.simultaneous.Game()
}

// stateOf reads episode state; callers must hold ep.mu once the episode is
// published in the registry.
func (s *Server) stateOf(ep *episode) gin.H {
	g := ep.game()
	state := gin.H{
		"id":            ep.id,
		"phase":         g.Phase().String(),
		"active_seat":   int(ep.activeSeat()),
		"legal_actions": ep.legalActions(),
		"done":          ep.done(),
	}
	if contract, ok := g.Contract(); ok {
		state["contract"] = contract.String()
	}
	if g.PassedOut() {
		state["passed_out"] = true
	}
	return state
}

func (s *Server) handleGet(c *gin.Context) {
	ep, ok := s.lookup(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such episode"})
		return
	}
	ep.mu.Lock()
	state := s.stateOf(ep)
	ep.mu.Unlock()
	c.JSON(http.StatusOK, state)
}

func (s *Server) handleObservation(c *gin.Context) {
	ep, ok := s.lookup(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such episode"})
		return
	}
	seat, ok := parseSeat(c.Param("seat"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown seat"})
		return
	}
	ep.mu.Lock()
	obs := ep.observations[seat]
	ep.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{
		"seat":        int(seat),
		"observation": obs,
	})
}

func parseSeat(s string) (bridge.Seat, bool) {
	switch s {
	case "0", "N":
		return bridge.North, true
	case "1", "E":
		return bridge.East, true
	case "2", "S":
		return bridge.South, true
	case "3", "W":
		return bridge.West, true
	}
	return 0, false
}

type stepRequest struct {
	// Action drives the sequential variant.
	Action *int `json:"action,omitempty"`
	// Actions drives the simultaneous variant, keyed by seat number.
	Actions map[int]int `json:"actions,omitempty"`
}

func (s *Server) handleStep(c *gin.Context) {
	ep, ok := s.lookup(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such episode"})
		return
	}
	var req stepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to unmarshal request"})
		return
	}

	ep.mu.Lock()
	defer ep.mu.Unlock()

	var (
		res *rl.StepResult
		err error
	)
	switch {
	case ep.sequential != nil && req.Action != nil:
		res, err = ep.sequential.Step(*req.Action)
	case ep.simultaneous != nil && req.Actions != nil:
		actions := make(map[bridge.Seat]int, len(req.Actions))
		for seat, action := range req.Actions {
			actions[bridge.Seat(seat)] = action
		}
		res, err = ep.simultaneous.Step(actions)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "step request does not match the episode variant"})
		return
	}
	if err != nil {
		s.logger.Debug().Str("episode", ep.id).Err(err).Msg("step rejected")
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	ep.observations = res.Observations

	rewards := make(map[int]float64, len(res.Rewards))
	for seat, r := range res.Rewards {
		rewards[int(seat)] = r
	}
	c.JSON(http.StatusOK, gin.H{
		"state":   s.stateOf(ep),
		"rewards": rewards,
		"done":    res.Done,
		"info":    res.Info,
	})
}

func (s *Server) handleDelete(c *gin.Context) {
	id := c.Param("id")
	s.lock.Lock()
	_, ok := s.episodes[id]
	delete(s.episodes, id)
	s.lock.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such episode"})
		return
	}
	s.logger.Info().Str("episode", id).Msg("episode deleted")
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
