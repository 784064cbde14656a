package ranking

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/shokumu/internal/config"
	"github.com/hyperjump/shokumu/internal/corpus"
	"github.com/hyperjump/shokumu/internal/embedding"
	"github.com/hyperjump/shokumu/internal/lexical"
	"github.com/hyperjump/shokumu/internal/models"
	"github.com/hyperjump/shokumu/internal/semantic"
	"github.com/hyperjump/shokumu/internal/textproc"
)

// State is the lifecycle of the default-corpus indices.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Engine ranks job postings against free text. The default corpus and its
// lexical and semantic indices are process-wide singletons, built once behind
// a mutex and shared read-only across concurrent calls; live-mode indices are
// call-local. A failed initialization is memoized: the engine stays in
// StateFailed and returns models.ErrEngineFailed until Reset is called.
type Engine struct {
	cfg      *config.Config
	embedder embedding.Embedder
	logger   *zap.Logger

	mu        sync.Mutex
	state     State
	failCause error
	stale     bool
	corpus    *corpus.Corpus
	lexIndex  *lexical.Index // nil when the lexical signal is degraded
	semIndex  *semantic.Index
}

// NewEngine creates a ranking engine. Indices are built lazily on first use
// of the default corpus; call Warmup to build them eagerly.
func NewEngine(cfg *config.Config, embedder embedding.Embedder, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{cfg: cfg, embedder: embedder, logger: logger}
}

// State returns the default-corpus lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Reset re-arms a failed or stale engine so the next call reinitializes.
// Deliberate operation: initialization cost is a multi-minute encode, so the
// engine never retries on its own.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = StateUninitialized
	e.failCause = nil
	e.stale = false
	e.corpus = nil
	e.lexIndex = nil
	e.semIndex = nil
}

// MarkStale flags the default corpus as changed on disk. The current indices
// keep serving until the next initialization check; positions from the old
// snapshot are invalidated by the reload.
func (e *Engine) MarkStale() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateReady {
		e.stale = true
	}
}

// Warmup eagerly builds the default-corpus indices. Safe to call
// concurrently; only one caller builds.
func (e *Engine) Warmup(ctx context.Context) error {
	_, _, _, err := e.defaultIndices(ctx)
	return err
}

// Rank scores the corpus against the request query and returns the top-N
// results sorted descending by hybrid score. With req.Live set, ranking runs
// end-to-end against the supplied postings: fresh indices, no persistence,
// and no contact with the default corpus or its cache.
//
// A matcher failure degrades that signal to zero scores rather than aborting;
// an empty result list means no candidate cleared the similarity floor.
func (e *Engine) Rank(ctx context.Context, req *models.RankRequest) (*models.RankResponse, error) {
	start := time.Now()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var (
		c     *corpus.Corpus
		lexIx *lexical.Index
		semIx *semantic.Index
		err   error
	)
	if req.IsLive() {
		c, lexIx, semIx = e.liveIndices(ctx, req.Live)
	} else {
		c, lexIx, semIx, err = e.defaultIndices(ctx)
		if err != nil {
			return nil, err
		}
	}

	queryCtx, cancel := context.WithTimeout(ctx, time.Duration(e.cfg.Ranking.QueryTimeoutSeconds)*time.Second)
	defer cancel()

	topK := e.cfg.Ranking.TopKCandidates
	floor := e.cfg.Ranking.SimilarityFloor

	var lexCands []lexical.Candidate
	if lexIx != nil {
		lexCands = lexIx.Score(req.Query, topK, floor)
	}
	var semCands []semantic.Candidate
	if semIx != nil {
		semCands, err = semIx.Score(queryCtx, e.embedder, req.Query, topK, floor)
		if err != nil {
			e.logger.Warn("semantic scoring failed, degrading signal", zap.Error(err))
			semCands = nil
		}
	}

	fused := Fuse(lexCands, semCands, e.cfg.Ranking.LexicalWeight, e.cfg.Ranking.SemanticWeight)
	results := e.annotate(c, req.Query, fused, req.IsLive())
	results = Deduplicate(results, e.cfg.Ranking.DedupThreshold)

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].HybridScore > results[j].HybridScore
	})
	if len(results) > req.TopN {
		results = results[:req.TopN]
	}

	return &models.RankResponse{
		Results:   results,
		Total:     len(results),
		QueryTime: time.Since(start).Milliseconds(),
		Query:     req.Query,
		Live:      req.IsLive(),
	}, nil
}

// defaultIndices returns the memoized default corpus and indices, building
// them on first use or after a staleness flag. The mutex is held across the
// build so concurrent first callers neither race nor observe a partial index.
// The build is bounded by the warm-up timeout whether it was triggered by
// Warmup or lazily by a first Rank call.
func (e *Engine) defaultIndices(ctx context.Context) (*corpus.Corpus, *lexical.Index, *semantic.Index, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch {
	case e.state == StateFailed:
		return nil, nil, nil, fmt.Errorf("%w: %v", models.ErrEngineFailed, e.failCause)
	case e.state == StateReady && !e.stale:
		return e.corpus, e.lexIndex, e.semIndex, nil
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(e.cfg.Ranking.WarmupTimeoutSeconds)*time.Second)
	defer cancel()

	e.state = StateLoading
	e.stale = false

	c, err := corpus.Load(e.cfg.Corpus.SourcePath)
	if err != nil {
		e.state = StateFailed
		e.failCause = err
		e.logger.Error("default corpus load failed", zap.String("source", e.cfg.Corpus.SourcePath), zap.Error(err))
		return nil, nil, nil, err
	}
	e.logger.Info("default corpus loaded",
		zap.String("source", c.SourcePath()),
		zap.Int("postings", c.Len()),
		zap.Time("source_mtime", c.ModTime()),
	)

	lexIx, err := lexical.Fit(c.LexicalTexts(), lexical.DefaultOptions())
	if err != nil {
		// Recoverable: ranking proceeds on the semantic signal alone.
		e.logger.Warn("lexical index build failed, degrading signal", zap.Error(err))
		lexIx = nil
	}

	semIx := e.buildSemanticIndex(ctx, c)

	e.state = StateReady
	e.corpus = c
	e.lexIndex = lexIx
	e.semIndex = semIx
	return c, lexIx, semIx, nil
}

// buildSemanticIndex reuses the persisted cache artifact when it validates
// against the corpus source; otherwise it re-encodes the full corpus and
// rewrites the artifact. Returns nil when the semantic signal is degraded.
func (e *Engine) buildSemanticIndex(ctx context.Context, c *corpus.Corpus) *semantic.Index {
	cachePath := e.cfg.Corpus.CachePath

	if err := semantic.ValidateCache(cachePath, c.ModTime(), c.Len()); err == nil {
		switch ix, loadErr := semantic.LoadCache(cachePath); {
		case loadErr != nil || ix.Rows() != c.Len():
			e.logger.Warn("embedding cache unreadable, recomputing", zap.String("path", cachePath), zap.Error(loadErr))
		case ix.Dimensions() != e.embedder.Dimensions():
			// The artifact was written under a different embedding config;
			// serving it would fail every query's dimension check.
			e.logger.Info("embedding cache dimension mismatch, recomputing",
				zap.String("path", cachePath),
				zap.Int("cache_dimensions", ix.Dimensions()),
				zap.Int("embedder_dimensions", e.embedder.Dimensions()))
		default:
			e.logger.Info("embedding cache reused", zap.String("path", cachePath), zap.Int("rows", ix.Rows()))
			return ix
		}
	} else {
		e.logger.Info("embedding cache invalid, recomputing", zap.String("path", cachePath), zap.Error(err))
	}

	encodeStart := time.Now()
	ix, err := semantic.Build(ctx, e.embedder, c.EmbeddingTexts(), e.cfg.Embedding.EncodeWorkers)
	if err != nil {
		e.logger.Warn("semantic index build failed, degrading signal", zap.Error(err))
		return nil
	}
	e.logger.Info("corpus encoded",
		zap.Int("rows", ix.Rows()),
		zap.Duration("elapsed", time.Since(encodeStart)),
	)
	if err := ix.SaveCache(cachePath); err != nil {
		// The in-memory index still serves; only restart warm-up is lost.
		e.logger.Warn("embedding cache write failed", zap.String("path", cachePath), zap.Error(err))
	}
	return ix
}

// liveIndices builds call-local indices for an ad-hoc posting list. Encode
// cost is paid on every live call by design; the set is small.
func (e *Engine) liveIndices(ctx context.Context, live []models.ExternalPosting) (*corpus.Corpus, *lexical.Index, *semantic.Index) {
	c := corpus.FromExternal(live)

	lexIx, err := lexical.Fit(c.LexicalTexts(), lexical.DefaultOptions())
	if err != nil {
		e.logger.Warn("live lexical index build failed, degrading signal", zap.Error(err))
		lexIx = nil
	}
	semIx, err := semantic.Build(ctx, e.embedder, c.EmbeddingTexts(), 1)
	if err != nil {
		e.logger.Warn("live semantic index build failed, degrading signal", zap.Error(err))
		semIx = nil
	}
	return c, lexIx, semIx
}

// annotate resolves fused candidates against the corpus snapshot and attaches
// skill annotations. Positions outside the corpus bounds are dropped with a
// warning; the corpus may have shrunk between index build and scoring.
func (e *Engine) annotate(c *corpus.Corpus, query string, fused []Fused, live bool) []models.MatchResult {
	querySkills := textproc.ExtractSkills(query)
	results := make([]models.MatchResult, 0, len(fused))
	for _, f := range fused {
		posting, ok := c.At(f.Position)
		if !ok {
			e.logger.Warn("candidate position out of corpus bounds, dropping",
				zap.Int("position", f.Position), zap.Int("corpus_size", c.Len()))
			continue
		}
		postingSkills := textproc.ExtractSkills(posting.Title + " " + posting.Description)
		missing := textproc.SortedSkills(textproc.DiffSkills(postingSkills, querySkills))
		if limit := e.cfg.Ranking.MissingSkillPreview; len(missing) > limit {
			missing = missing[:limit]
		}

		r := models.MatchResult{
			Position:      f.Position,
			Title:         posting.Title,
			Description:   posting.Description,
			LexicalScore:  displayScore(f.LexicalScore),
			SemanticScore: displayScore(f.SemanticScore),
			HybridScore:   displayScore(f.HybridScore),
			MatchedSkills: textproc.SortedSkills(textproc.IntersectSkills(querySkills, postingSkills)),
			MissingSkills: missing,
		}
		if live {
			r.Company = posting.Company
			r.Location = posting.Location
			r.ApplyLink = posting.ApplyLink
			r.Thumbnail = posting.Thumbnail
			r.Via = posting.Via
			r.SourceID = posting.SourceID
		}
		results = append(results, r)
	}
	return results
}
