package main

import (
	"errors"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/appsworld/go-cppdecl"
	"github.com/appsworld/go-cppdecl/pkg/simplify"
	"github.com/appsworld/go-cppdecl/types"
)

// result is one processed input line or type name. The exported fields are
// the JSON report.
type result struct {
	Input      string `json:"input"`
	Parsed     string `json:"parsed,omitempty"`
	Simplified string `json:"simplified,omitempty"`
	Ambiguous  bool   `json:"ambiguous,omitempty"`
	Error      string `json:"error,omitempty"`
	Offset     *int   `json:"offset,omitempty"`
	Count      int    `json:"count,omitempty"`

	decl       types.MaybeAmbiguousDecl
	simplified types.MaybeAmbiguousDecl
	// junk is set when the error is trailing text after a valid decl.
	junk bool
}

func (r *result) ok() bool { return r.Error == "" }

// changed reports whether simplification did anything.
func (r *result) changed() bool {
	return r.ok() && !r.decl.Equal(&r.simplified)
}

// processor parses and simplifies inputs, caching results by input text.
// It is not safe for concurrent use.
type processor struct {
	flags      simplify.Flags
	simplifier *simplify.Simplifier
	cache      *lru.Cache[string, *result]
	log        *slog.Logger
}

func newProcessor(cfg *Config, log *slog.Logger) (*processor, error) {
	flags, err := cfg.Flags()
	if err != nil {
		return nil, err
	}
	cache, err := lru.New[string, *result](cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	return &processor{
		flags:      flags,
		simplifier: simplify.New(flags, simplify.WithTraits(cfg.SimplifyTraits()), simplify.WithLogger(log)),
		cache:      cache,
		log:        log,
	}, nil
}

// process returns a shared result for repeated inputs. Callers must not
// modify it.
func (p *processor) process(input string) *result {
	if r, ok := p.cache.Get(input); ok {
		return r
	}
	r := p.run(input)
	p.cache.Add(input, r)
	return r
}

func (p *processor) run(input string) *result {
	r := &result{Input: input}
	d, err := cppdecl.Parse(input, cppdecl.WithLogger(p.log))
	if err != nil {
		r.Error = err.Error()
		var perr *cppdecl.ParseError
		if errors.As(err, &perr) {
			r.Error = perr.Message
			off := perr.Offset
			r.Offset = &off
		}
		r.junk = errors.Is(err, cppdecl.ErrUnparsedJunk)
		if r.junk {
			// Still show what was parsed before the junk.
			r.decl, _, _ = cppdecl.ParseDecl(input, cppdecl.WithLogger(p.log))
		}
		p.log.Debug("parse failed", "input", input, "error", err)
		return r
	}

	r.decl = d
	r.simplified = d.Clone()
	p.simplifier.Simplify(&r.simplified)
	r.Parsed = d.ToCode(0)
	r.Simplified = r.simplified.ToCode(0)
	r.Ambiguous = d.IsAmbiguous()
	return r
}
