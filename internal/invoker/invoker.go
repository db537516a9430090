// Package invoker drives one scan engine through its lifecycle: construct,
// configure, run, hand back for result retrieval.
package invoker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/hakim/reconscan/internal/engine"
	"github.com/hakim/reconscan/internal/option"
	"github.com/hakim/reconscan/internal/wordlist"
)

var (
	// ErrEngineConstruction marks a scan that could not start because no
	// engine instance could be built.
	ErrEngineConstruction = errors.New("creating scanner")
	// ErrWordlist marks a scan aborted because its wordlist could not be read.
	ErrWordlist = errors.New("could not open or find wordlist")
)

// Invoker builds engines through its factories. Log may be nil.
type Invoker struct {
	NewURIScanner    func() (engine.URIScanner, error)
	NewDomainScanner func() (engine.DomainScanner, error)
	Log              logrus.FieldLogger
}

// ResolveMethod interprets a stored request method. Anything other than POST
// falls back to GET.
func ResolveMethod(raw string) engine.Method {
	if strings.ToUpper(raw) == "POST" {
		return engine.MethodPost
	}
	return engine.MethodGet
}

// ScanURI runs a URI scan to completion and returns the engine holding its
// result.
func (inv *Invoker) ScanURI(ctx context.Context, opt option.URIOption) (engine.URIScanner, error) {
	if inv.NewURIScanner == nil {
		return nil, fmt.Errorf("%w: no URI engine registered", ErrEngineConstruction)
	}
	s, err := inv.NewURIScanner()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEngineConstruction, err)
	}
	words, err := loadWords(opt.UseWordlist, opt.WordlistPath)
	if err != nil {
		return nil, err
	}

	s.SetBaseURI(opt.BaseURI)
	for _, w := range words {
		s.AddWord(w)
	}
	if opt.RequestMethod != "" {
		s.SetMethod(ResolveMethod(opt.RequestMethod))
	}
	s.SetTimeout(opt.Timeout)

	inv.log().WithFields(logrus.Fields{
		"target":     opt.BaseURI,
		"candidates": len(words),
		"timeout":    opt.Timeout,
	}).Debug("starting URI scan")

	s.Run(ctx)
	return s, nil
}

// ScanDomain runs a subdomain scan to completion and returns the engine
// holding its result.
func (inv *Invoker) ScanDomain(ctx context.Context, opt option.DomainOption) (engine.DomainScanner, error) {
	if inv.NewDomainScanner == nil {
		return nil, fmt.Errorf("%w: no domain engine registered", ErrEngineConstruction)
	}
	s, err := inv.NewDomainScanner()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEngineConstruction, err)
	}
	words, err := loadWords(opt.UseWordlist, opt.WordlistPath)
	if err != nil {
		return nil, err
	}

	s.SetBaseDomain(opt.BaseDomain)
	for _, w := range words {
		s.AddWord(w)
	}
	s.SetTimeout(opt.Timeout)

	inv.log().WithFields(logrus.Fields{
		"target":     opt.BaseDomain,
		"candidates": len(words),
		"timeout":    opt.Timeout,
	}).Debug("starting domain scan")

	s.Run(ctx)
	return s, nil
}

func (inv *Invoker) log() logrus.FieldLogger {
	if inv.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return l
	}
	return inv.Log
}

func loadWords(use bool, path string) ([]string, error) {
	if !use {
		return nil, nil
	}
	words, err := wordlist.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWordlist, err)
	}
	return words, nil
}
