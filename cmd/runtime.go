package cmd

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mates/internal/catalog"
	"github.com/abhisek/mates/internal/evaluate"
	"github.com/abhisek/mates/internal/gamification"
	"github.com/abhisek/mates/internal/llm"
	"github.com/abhisek/mates/internal/logging"
	"github.com/abhisek/mates/internal/problemgen"
	"github.com/abhisek/mates/internal/session"
	"github.com/abhisek/mates/internal/store"
)

// practiceRuntime bundles everything a front-end needs to run a practice session.
type practiceRuntime struct {
	store     *store.Store
	provider  llm.Provider // nil when offline
	generator *problemgen.LLMGenerator
	tracker   *gamification.Tracker
	session   *session.Service
}

// openRuntime opens the store, loads progress and builds the generator and
// evaluator. A missing model provider is not an error: the session runs
// on local exercises and fallback evaluations.
func openRuntime(cmd *cobra.Command) (*practiceRuntime, error) {
	ctx := cmd.Context()

	cat, err := loadCatalog(cmd)
	if err != nil {
		return nil, err
	}

	st, err := openStore(cmd)
	if err != nil {
		return nil, err
	}

	tracker := gamification.NewTracker(st.KV())
	if err := tracker.Load(ctx); err != nil {
		st.Close()
		return nil, err
	}

	var provider llm.Provider
	if offline, _ := cmd.Flags().GetBool("offline"); !offline {
		provider, err = llm.NewProviderFromEnv(ctx, st.EventRepo())
		switch {
		case errors.Is(err, llm.ErrNoProvider):
			logging.Logger.Info("no LLM provider configured, running offline")
		case err != nil:
			logging.Logger.WithError(err).Warn("LLM provider unavailable, running offline")
			provider = nil
		}
	}

	seed := uint64(time.Now().UnixNano())
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))
	gen := problemgen.New(provider, cat, rng, problemgen.DefaultConfig())
	eval := evaluate.NewService(provider, evaluate.DefaultConfig())

	return &practiceRuntime{
		store:     st,
		provider:  provider,
		generator: gen,
		tracker:   tracker,
		session:   session.NewService(gen, eval, tracker, st.EventRepo()),
	}, nil
}

func (r *practiceRuntime) Close() error {
	return r.store.Close()
}

// loadCatalog returns the catalog from --catalog or MATES_CATALOG, or the
// embedded default.
func loadCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" {
		path = os.Getenv("MATES_CATALOG")
	}
	if path == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}
