package models

import "errors"

// Sentinel errors for the ranking engine. Callers match them with errors.Is;
// wrapped messages carry the detail.
var (
	// ErrCorpusLoad means the default corpus source is missing or malformed.
	// Fatal at startup: the engine cannot rank against a corpus it cannot load.
	ErrCorpusLoad = errors.New("corpus load failed")

	// ErrIndexBuild means a lexical or semantic index could not be built.
	// Recoverable: the affected signal degrades to all-zero scores.
	ErrIndexBuild = errors.New("index build failed")

	// ErrCacheInvalid means the persisted embedding cache failed validation
	// and a full recompute is required. Never surfaced to callers.
	ErrCacheInvalid = errors.New("embedding cache invalid")

	// ErrEngineFailed means default-corpus initialization failed earlier and
	// the failure is memoized; call Reset to re-arm.
	ErrEngineFailed = errors.New("engine initialization failed")

	// ErrEmptyQuery means the rank request carried no query text.
	ErrEmptyQuery = errors.New("empty query")
)
