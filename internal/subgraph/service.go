// Package subgraph implements the three caller-facing operations: metadata
// search, schema fetch and query forwarding. Each issues exactly one
// gateway call.
package subgraph

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/qraqula/graphmcp/internal/failure"
	"github.com/qraqula/graphmcp/internal/graphql"
	"github.com/qraqula/graphmcp/internal/metrics"
	"github.com/qraqula/graphmcp/internal/schema"
	"github.com/qraqula/graphmcp/internal/sdl"
	"github.com/qraqula/graphmcp/internal/search"
)

// Operation names, shared by logs and metrics.
const (
	OpSearch = "search"
	OpSchema = "schema"
	OpQuery  = "query"
)

type Service struct {
	exec        graphql.Executor
	networkID   string
	searchLimit int
	log         *zap.Logger
	metrics     *metrics.Metrics
}

type Option func(*Service)

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.log = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithSearchLimit caps how many hits the metadata search asks for.
func WithSearchLimit(n int) Option {
	return func(s *Service) { s.searchLimit = n }
}

// NewService builds a Service. networkSubgraphID is the subgraph that
// indexes metadata about every other subgraph.
func NewService(exec graphql.Executor, networkSubgraphID string, opts ...Option) *Service {
	s := &Service{
		exec:        exec,
		networkID:   networkSubgraphID,
		searchLimit: search.DefaultLimit,
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search runs a full-text metadata search and returns the active hits in
// the order the index ranked them.
func (s *Service) Search(ctx context.Context, text string) ([]search.Result, error) {
	var results []search.Result
	err := s.run(ctx, OpSearch, s.networkID, func(ctx context.Context, log *zap.Logger) error {
		var err error
		results, err = search.Run(ctx, s.exec, s.networkID, text, s.searchLimit)
		if err == nil {
			log.Debug("search projected", zap.String("text", text), zap.Int("results", len(results)))
		}
		return err
	})
	return results, err
}

// Schema introspects subgraphID. With asText it returns the SDL document,
// otherwise the raw __schema JSON.
func (s *Service) Schema(ctx context.Context, subgraphID string, asText bool) (string, error) {
	var out string
	err := s.run(ctx, OpSchema, subgraphID, func(ctx context.Context, log *zap.Logger) error {
		raw, err := schema.Fetch(ctx, s.exec, subgraphID)
		if err != nil {
			return err
		}
		if !asText {
			out = string(raw)
			return nil
		}

		parsed, err := schema.Parse(raw)
		if err != nil {
			return err
		}
		doc, err := sdl.Document(parsed)
		if err != nil {
			return fmt.Errorf("render schema: %w", err)
		}
		if err := sdl.Check(doc); err != nil {
			log.Warn("rendered schema failed to parse", zap.Error(err))
		} else if err := sdl.Validate(doc); err != nil {
			log.Debug("rendered schema failed validation", zap.Error(err))
		}
		log.Debug("schema rendered", zap.Int("types", parsed.Types.Len()), zap.Int("bytes", len(doc)))
		out = doc
		return nil
	})
	return out, err
}

// Query forwards query and variables to subgraphID unchanged and returns
// the response body exactly as received. GraphQL errors inside a 200 body
// are the caller's to interpret.
func (s *Service) Query(ctx context.Context, subgraphID, query string, variables map[string]any) ([]byte, error) {
	var body []byte
	err := s.run(ctx, OpQuery, subgraphID, func(ctx context.Context, _ *zap.Logger) error {
		result, err := s.exec.Execute(ctx, subgraphID, graphql.Request{Query: query, Variables: variables})
		if err != nil {
			return err
		}
		body = result.Body
		return nil
	})
	return body, err
}

func (s *Service) run(ctx context.Context, op, subgraphID string, fn func(context.Context, *zap.Logger) error) error {
	log := s.log.With(
		zap.String("operation", op),
		zap.String("subgraph", subgraphID),
		zap.String("request_id", uuid.NewString()),
	)
	start := time.Now()
	log.Debug("operation started")

	err := fn(ctx, log)
	elapsed := time.Since(start)
	s.metrics.Observe(op, err, elapsed)

	if err != nil {
		log.Warn("operation failed",
			zap.String("kind", failure.Kind(err)),
			zap.Duration("duration", elapsed),
			zap.Error(err),
		)
		return err
	}
	log.Debug("operation finished", zap.Duration("duration", elapsed))
	return nil
}
