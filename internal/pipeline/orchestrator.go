package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hakim/reconscan/internal/classify"
	"github.com/hakim/reconscan/internal/engine"
	"github.com/hakim/reconscan/internal/invoker"
	"github.com/hakim/reconscan/internal/models"
	"github.com/hakim/reconscan/internal/option"
	"github.com/hakim/reconscan/internal/report"
)

// ErrReportWrite marks a run whose requested report file could not be written.
var ErrReportWrite = errors.New("unable to write report file")

// StoreInterface is the minimal history contract required by the orchestrator.
// Using an interface keeps the package testable without a real database.
type StoreInterface interface {
	SaveRun(rec *models.ScanRecord) error
	UpdateRunStatus(id string, status models.RunStatus) error
	FinishRun(id, outcome string, found []string, scanTime time.Duration) error
	FailRun(id string, cause error) error
}

// Deps are the collaborators of one run. Invoker and Console are required;
// everything else is optional.
type Deps struct {
	Invoker *invoker.Invoker
	Console *report.Console
	// Lookup resolves the base domain for the domain report.
	Lookup engine.Lookuper
	Store  StoreInterface
	Notify *Notifier
	Scope  Scope
	Log    logrus.FieldLogger
}

// RunResult summarises what happened after a run returns.
type RunResult struct {
	ScanID   string
	Mode     models.ScanMode
	Target   string
	Status   engine.Status
	Findings int // 2xx responses in URI mode, resolved hosts in domain mode
	ScanTime time.Duration
	SavePath string
}

// Orchestrator drives one scan from option to report.
type Orchestrator struct {
	deps Deps
	log  logrus.FieldLogger
}

// New returns an Orchestrator over d.
func New(d Deps) *Orchestrator {
	log := d.Log
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Orchestrator{deps: d, log: log}
}

// RunURI scans opt.BaseURI, prints the report and, when opt.SavePath is set,
// persists it. A Timeout or Error outcome is reported, not returned.
func (o *Orchestrator) RunURI(ctx context.Context, opt option.URIOption) (*RunResult, error) {
	if err := o.deps.Scope.CheckURI(opt.BaseURI); err != nil {
		return nil, err
	}

	con := o.deps.Console
	con.URIOptions(opt)
	con.Scanning()

	rec := newRecord(models.ModeURI, opt.BaseURI, opt.WordlistPath, opt.SavePath)
	rec.Method = invoker.ResolveMethod(opt.RequestMethod).String()
	o.begin(rec)

	scanner, err := o.deps.Invoker.ScanURI(ctx, opt)
	if err != nil {
		o.fail(rec, err)
		return nil, err
	}

	res := scanner.Result()
	con.Outcome(res.Status)
	con.URIReport(res)

	if opt.SavePath != "" {
		if err := report.WriteURIReport(opt.SavePath, opt, scanner.Result()); err != nil {
			err = fmt.Errorf("%w: %w", ErrReportWrite, err)
			o.fail(rec, err)
			return nil, err
		}
		o.log.WithField("path", opt.SavePath).Info("report saved")
	}

	var found []string
	for _, r := range res.Responses {
		if classify.FromHTTPStatus(r.Status) == classify.Success {
			found = append(found, r.URI)
		}
	}

	return o.finish(ctx, rec, res.Status, found, res.ScanTime), nil
}

// RunDomain enumerates subdomains of opt.BaseDomain, prints the report and,
// when opt.SavePath is set, persists it. The base domain is looked up once
// for the console and again for the file.
func (o *Orchestrator) RunDomain(ctx context.Context, opt option.DomainOption) (*RunResult, error) {
	if err := o.deps.Scope.CheckHost(opt.BaseDomain); err != nil {
		return nil, err
	}

	con := o.deps.Console
	con.DomainOptions(opt)
	con.Scanning()

	rec := newRecord(models.ModeDomain, opt.BaseDomain, opt.WordlistPath, opt.SavePath)
	o.begin(rec)

	scanner, err := o.deps.Invoker.ScanDomain(ctx, opt)
	if err != nil {
		o.fail(rec, err)
		return nil, err
	}

	res := scanner.Result()
	con.Outcome(res.Status)
	con.DomainReport(ctx, opt.BaseDomain, res, o.deps.Lookup)

	if opt.SavePath != "" {
		if err := report.WriteDomainReport(ctx, opt.SavePath, opt, scanner.Result(), o.deps.Lookup); err != nil {
			err = fmt.Errorf("%w: %w", ErrReportWrite, err)
			o.fail(rec, err)
			return nil, err
		}
		o.log.WithField("path", opt.SavePath).Info("report saved")
	}

	found := make([]string, 0, len(res.Hosts))
	for _, h := range res.Hosts {
		found = append(found, h.Name)
	}

	return o.finish(ctx, rec, res.Status, found, res.ScanTime), nil
}

func newRecord(mode models.ScanMode, target, wordlist, savePath string) *models.ScanRecord {
	rec := models.NewScanRecord(mode, target)
	rec.Wordlist = wordlist
	rec.SavePath = savePath
	return rec
}

// begin records the run as pending, then moves it to running. History
// failures only warn.
func (o *Orchestrator) begin(rec *models.ScanRecord) {
	o.log.WithFields(logrus.Fields{"id": rec.ID, "mode": rec.Mode, "target": rec.Target}).Debug("run started")
	if o.deps.Store == nil {
		return
	}
	if err := o.deps.Store.SaveRun(rec); err != nil {
		o.log.WithError(err).Warn("could not record run in history")
		return
	}
	if err := o.deps.Store.UpdateRunStatus(rec.ID, models.StatusRunning); err != nil {
		o.log.WithError(err).Warn("could not mark run running in history")
	}
}

func (o *Orchestrator) fail(rec *models.ScanRecord, cause error) {
	if o.deps.Store == nil {
		return
	}
	if err := o.deps.Store.FailRun(rec.ID, cause); err != nil {
		o.log.WithError(err).Warn("could not mark run failed in history")
	}
}

func (o *Orchestrator) finish(ctx context.Context, rec *models.ScanRecord, st engine.Status, found []string, scanTime time.Duration) *RunResult {
	result := &RunResult{
		ScanID:   rec.ID,
		Mode:     rec.Mode,
		Target:   rec.Target,
		Status:   st,
		Findings: len(found),
		ScanTime: scanTime,
		SavePath: rec.SavePath,
	}

	if o.deps.Store != nil {
		if err := o.deps.Store.FinishRun(rec.ID, st.String(), found, scanTime); err != nil {
			o.log.WithError(err).Warn("could not update run in history")
		}
	}

	if err := o.deps.Notify.SendCompletion(ctx, result); err != nil {
		o.log.WithError(err).Warn("completion webhook failed")
	}

	o.log.WithFields(logrus.Fields{
		"id":       result.ScanID,
		"status":   st,
		"findings": len(found),
		"elapsed":  scanTime.Round(time.Millisecond),
	}).Debug("run finished")

	return result
}
