package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/hakim/reconscan/internal/classify"
	"github.com/hakim/reconscan/internal/engine"
	"github.com/hakim/reconscan/internal/option"
)

// AppInfo identifies the running binary in banners.
type AppInfo struct {
	Name        string
	Version     string
	Released    string
	OS          string
	Description string
	Author      string
}

// Console renders scan progress and results for a terminal.
type Console struct {
	w        io.Writer
	settings Settings
	palette  map[classify.Category]*color.Color
}

// NewConsole returns a Console writing to w. With noColor set every line is
// written without ANSI escapes.
func NewConsole(w io.Writer, s Settings, noColor bool) *Console {
	palette := map[classify.Category]*color.Color{
		classify.Success:             color.New(color.FgGreen),
		classify.Warning:             color.New(color.FgYellow),
		classify.Failure:             color.New(color.FgRed),
		classify.ClientOrServerError: color.New(color.FgRed),
	}
	for _, c := range palette {
		if noColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
	}
	return &Console{w: w, settings: s, palette: palette}
}

func (c *Console) paint(cat classify.Category, s string) string {
	if col, ok := c.palette[cat]; ok {
		return col.Sprint(s)
	}
	return s
}

func (c *Console) banner(title string) {
	fmt.Fprintln(c.w, Banner(title, c.settings.Fill, c.settings.Width))
}

// Description prints the app summary shown when no arguments are given.
func (c *Console) Description(info AppInfo) {
	fmt.Fprintf(c.w, "%s %s (%s) %s\n", info.Name, info.Version, info.Released, info.OS)
	fmt.Fprintln(c.w, info.Description)
	fmt.Fprintln(c.w, info.Author)
	fmt.Fprintln(c.w)
	fmt.Fprintf(c.w, "'%s --help' for more information.\n", info.Name)
	fmt.Fprintln(c.w)
}

// Start prints the name/version line and the scan start time.
func (c *Console) Start(info AppInfo, started time.Time) {
	fmt.Fprintf(c.w, "%s %s %s\n", info.Name, info.Version, info.OS)
	fmt.Fprintln(c.w)
	fmt.Fprintf(c.w, "Scan started at %s\n", started.Format("2006-01-02 15:04:05.000000 -07:00"))
	fmt.Fprintln(c.w)
}

// URIOptions prints the URI scan configuration summary.
func (c *Console) URIOptions(opt option.URIOption) {
	c.banner("URI Scan Options")
	fmt.Fprintf(c.w, "%sBase URI: %s\n", c.settings.indent(1), opt.BaseURI)
	if opt.UseWordlist {
		fmt.Fprintf(c.w, "%sWord list: %s\n", c.settings.indent(1), opt.WordlistPath)
	}
	c.banner("")
}

// DomainOptions prints the domain scan configuration summary.
func (c *Console) DomainOptions(opt option.DomainOption) {
	c.banner("Domain Scan Options")
	fmt.Fprintf(c.w, "%sBase Domain Name: %s\n", c.settings.indent(1), opt.BaseDomain)
	if opt.UseWordlist {
		fmt.Fprintf(c.w, "%sWord list: %s\n", c.settings.indent(1), opt.WordlistPath)
	}
	c.banner("")
}

// Scanning prints the progress marker. The outcome word completes the line.
func (c *Console) Scanning() {
	fmt.Fprintln(c.w)
	fmt.Fprint(c.w, "Scanning...")
}

// Outcome finishes the progress line with the run status.
func (c *Console) Outcome(st engine.Status) {
	word := "Error"
	switch st {
	case engine.StatusDone:
		word = "Done"
	case engine.StatusTimeout:
		word = "Timed out"
	}
	fmt.Fprintln(c.w, c.paint(classify.FromScanStatus(st), word))
	fmt.Fprintln(c.w)
}

// URIReport prints one line per probed URI.
func (c *Console) URIReport(res engine.URIResult) {
	c.banner("Scan Reports")
	for _, r := range res.Responses {
		fmt.Fprintf(c.w, "%s%s %s\n", c.settings.indent(1), r.URI, c.paint(classify.FromHTTPStatus(r.Status), r.Status))
	}
	c.banner("")
	c.scanTime(res.ScanTime)
}

// DomainReport prints the base domain with its own addresses, looked up
// through lookup, followed by every discovered host.
func (c *Console) DomainReport(ctx context.Context, base string, res engine.DomainResult, lookup engine.Lookuper) {
	c.banner("Scan Reports")
	fmt.Fprintln(c.w, base)
	ips, err := lookupBase(ctx, lookup, base)
	if err != nil {
		fmt.Fprintf(c.w, "%v %s\n", err, base)
	}
	for _, ip := range ips {
		fmt.Fprintf(c.w, "%s%s\n", c.settings.indent(1), ip)
	}
	fmt.Fprintln(c.w)
	for _, h := range res.Hosts {
		fmt.Fprintf(c.w, "%s%s\n", c.settings.indent(2), h.Name)
		for _, ip := range h.IPs {
			fmt.Fprintf(c.w, "%s%s\n", c.settings.indent(3), ip)
		}
	}
	c.banner("")
	c.scanTime(res.ScanTime)
}

func (c *Console) scanTime(d time.Duration) {
	fmt.Fprintf(c.w, "Scan Time: %s\n", d)
}
