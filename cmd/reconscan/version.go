package main

import (
	"runtime"

	"github.com/hakim/reconscan/internal/report"
)

const (
	appName     = "reconscan"
	appReleased = "2026/10/19"
	appAuthor   = "hakim <https://github.com/hakim>"
	appSummary  = "Web path and subdomain scanner"
)

// appVersion is overridden at build time with -ldflags "-X main.appVersion=...".
var appVersion = "1.0.0"

func appInfo() report.AppInfo {
	return report.AppInfo{
		Name:        appName,
		Version:     appVersion,
		Released:    appReleased,
		OS:          runtime.GOOS,
		Description: appSummary,
		Author:      appAuthor,
	}
}
