package api

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bitchess/bitchess/board"
	"github.com/bitchess/bitchess/engine"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const rateLimitRate = 10 // req/sec

// Config wires the HTTP layer to the engine.
type Config struct {
	Logger       zerolog.Logger
	DefaultDepth int
	// MaxPlies bounds requests that ask the server to play out the game.
	MaxPlies int
	// RateLimit caps /evaluate requests per second and client. Zero disables it.
	RateLimit     int
	DevMode       bool
	EngineOptions []engine.Option
}

// Handler serves move searches. Each request borrows its own Searcher.
type Handler struct {
	log          zerolog.Logger
	defaultDepth int
	searchers    sync.Pool
}

func NewHandler(cfg Config) *Handler {
	depth := cfg.DefaultDepth
	if depth <= 0 {
		depth = engine.DefaultDepth
	}
	opts := append([]engine.Option{engine.WithLogger(cfg.Logger)}, cfg.EngineOptions...)
	if cfg.MaxPlies > 0 {
		opts = append(opts, engine.WithMaxPlies(cfg.MaxPlies))
	}
	h := &Handler{log: cfg.Logger, defaultDepth: depth}
	h.searchers.New = func() any { return engine.NewSearcher(opts...) }
	return h
}

func NewFiberApp(cfg Config) *fiber.App {
	h := NewHandler(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	})

	// Global middleware (order matters)
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	}))
	app.Use(requestLogger(cfg.Logger))

	app.Get("/health", h.Health)

	routes := []fiber.Handler{contentTypeValidator}
	if cfg.RateLimit > 0 {
		maxReq := cfg.RateLimit
		if cfg.DevMode {
			maxReq *= 2
		}
		routes = append(routes, limiter.New(limiter.Config{
			Max:        maxReq,
			Expiration: 1 * time.Second,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(ErrorResponse{
					Error:   "rate limit exceeded",
					Code:    ErrRateLimitExceeded,
					Details: fmt.Sprintf("%d requests per second allowed", maxReq),
				})
			},
		}))
	}
	routes = append(routes, parseEvaluateRequest, h.Evaluate)
	app.Post("/evaluate", routes...)

	return app
}

// requestLogger emits one structured line per request.
func requestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
		log.Info().
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
		return err
	}
}

// customErrorHandler provides consistent error responses
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	response := ErrorResponse{
		Error: "internal server error",
		Code:  ErrInternalError,
	}

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		response.Error = e.Message

		switch code {
		case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
			response.Code = ErrNotFound
		case fiber.StatusBadRequest:
			response.Code = ErrInvalidRequest
		case fiber.StatusTooManyRequests:
			response.Code = ErrRateLimitExceeded
		}
	}

	return c.Status(code).JSON(response)
}

// Health check endpoint
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// Evaluate answers with the best move for the requested position, or
// "checkmate" when the side to move has none. JSON is returned when the
// client asks for it, plain text otherwise.
func (h *Handler) Evaluate(c *fiber.Ctx) error {
	req, ok := c.Locals(validatedBodyKey).(*EvaluateRequest)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "validation data missing",
			Code:  ErrInternalError,
		})
	}

	p, err := board.ParseFEN(req.FEN)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid FEN",
			Code:    ErrInvalidFEN,
			Details: err.Error(),
		})
	}

	depth := h.defaultDepth
	if req.Depth != nil {
		depth = *req.Depth
	}

	s := h.searchers.Get().(*engine.Searcher)
	defer h.searchers.Put(s)
	s.Reset()

	var (
		res    engine.Result
		played []string
	)
	if req.Play {
		res, err = s.Play(c.UserContext(), p, depth, func(_ int, r engine.Result) {
			played = append(played, r.String())
		})
	} else {
		res, err = s.BestMove(c.UserContext(), p, depth)
	}
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Error:   "search aborted",
			Code:    ErrSearchAborted,
			Details: err.Error(),
		})
	}

	h.log.Debug().
		Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
		Str("fen", req.FEN).
		Str("move", res.String()).
		Object("stats", res.Stats).
		Msg("evaluated")

	if !wantsJSON(c) {
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.SendString(squares(res))
	}
	resp := EvaluateResponse{
		Move:      res.String(),
		Score:     res.Score,
		Depth:     res.Depth,
		Nodes:     res.Stats.Nodes,
		ElapsedMs: res.Stats.Elapsed.Milliseconds(),
		Moves:     played,
	}
	if req.Play {
		resp.FEN = p.ToFEN()
	}
	return c.JSON(resp)
}

// squares renders the move as source and destination only. The plain-text
// reply never carries a promotion letter; JSON clients get the full form.
func squares(r engine.Result) string {
	s := r.String()
	if !r.Move.IsNull() && len(s) > 4 {
		return s[:4]
	}
	return s
}

func wantsJSON(c *fiber.Ctx) bool {
	return strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMEApplicationJSON)
}
