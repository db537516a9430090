package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hakim/reconscan/internal/engine"
	"github.com/hakim/reconscan/internal/invoker"
	"github.com/hakim/reconscan/internal/option"
	"github.com/hakim/reconscan/internal/pipeline"
	"github.com/hakim/reconscan/internal/resolver"
	"github.com/hakim/reconscan/internal/storage"
)

func runScan(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	con := newConsole(out, cfg.Output.NoColor)
	con.Start(appInfo(), time.Now())

	if scanFlags.uri == "" && scanFlags.domain == "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Error: Scan mode not specified.")
		return nil
	}

	timeout := time.Duration(0)
	if scanFlags.timeout != "" {
		var err error
		timeout, err = option.ParseTimeout(scanFlags.timeout)
		if err != nil {
			log.WithFields(logrus.Fields{"timeout": scanFlags.timeout, "err": err}).Fatal("Timeout passed validation but could not be parsed")
		}
	}

	deps := pipeline.Deps{
		Console: con,
		Notify:  &pipeline.Notifier{WebhookURL: cfg.Notify.WebhookURL},
		Scope: pipeline.Scope{
			AllowedHosts: cfg.Scope.AllowedHosts,
			AllowedCIDRs: cfg.Scope.AllowedCIDRs,
		},
		Log: log,
	}

	if store := openHistory(); store != nil {
		defer store.Close()
		// Fatal exits skip defers.
		logrus.RegisterExitHandler(func() { _ = store.Close() })
		deps.Store = store
	}

	ctx := context.Background()
	settings := cfg.EngineSettings()

	if scanFlags.uri != "" {
		deps.Invoker = &invoker.Invoker{
			NewURIScanner: func() (engine.URIScanner, error) {
				return engine.NewHTTPScanner(settings)
			},
			Log: log,
		}
		opt := option.NewURIOption(option.URIParams{
			Target:       scanFlags.uri,
			WordlistPath: scanFlags.word,
			Method:       scanFlags.method,
			Timeout:      timeout,
			SavePath:     scanFlags.save,
		})
		if _, err := pipeline.New(deps).RunURI(ctx, opt); err != nil {
			log.WithFields(logrus.Fields{"target": opt.BaseURI, "err": err}).Fatal("URI scan failed")
		}
		return nil
	}

	res, resErr := resolver.New(cfg.Resolver.Servers, cfg.ResolverTimeout())
	if resErr != nil {
		log.WithError(resErr).Warn("no usable nameserver; domain lookups will fail")
	} else {
		log.WithField("servers", res.Servers()).Debug("resolver ready")
		deps.Lookup = res
	}
	deps.Invoker = &invoker.Invoker{
		NewDomainScanner: func() (engine.DomainScanner, error) {
			if resErr != nil {
				return nil, resErr
			}
			return engine.NewDNSScanner(settings, res)
		},
		Log: log,
	}
	opt := option.NewDomainOption(option.DomainParams{
		Target:       scanFlags.domain,
		WordlistPath: scanFlags.word,
		Timeout:      timeout,
		SavePath:     scanFlags.save,
	})
	if _, err := pipeline.New(deps).RunDomain(ctx, opt); err != nil {
		log.WithFields(logrus.Fields{"target": opt.BaseDomain, "err": err}).Fatal("Domain scan failed")
	}
	return nil
}

// openHistory opens the run history database, or returns nil when history is
// disabled or unavailable.
func openHistory() *storage.Store {
	if !cfg.History.Enabled {
		return nil
	}
	store, err := openHistoryStore()
	if err != nil {
		log.WithError(err).Warn("history disabled")
		return nil
	}
	log.WithField("path", store.Path()).Debug("history database opened")
	return store
}

