package option

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var (
	uriPattern    = regexp.MustCompile(`https?://[\w!\?/\+\-_~=;\.,\*&@#\$%\(\)'\[\]]+`)
	domainPattern = regexp.MustCompile(`[\w\-._]+\.[A-Za-z]+`)
)

// ValidMethods lists the request methods accepted on the command line.
var ValidMethods = []string{"GET", "POST"}

// ValidateURI checks the -u value.
func ValidateURI(v string) error {
	if !uriPattern.MatchString(v) {
		return errors.New("please specify uri")
	}
	return nil
}

// ValidateDomain checks the -d value.
func ValidateDomain(v string) error {
	if !domainPattern.MatchString(v) {
		return errors.New("please specify domain name")
	}
	return nil
}

// ValidateTimeout requires a positive integer millisecond count. A single
// leading '+' is accepted.
func ValidateTimeout(v string) error {
	n, err := strconv.ParseUint(unsigned(v), 10, 64)
	if err != nil || n == 0 {
		return fmt.Errorf("invalid timeout value %q", v)
	}
	return nil
}

// unsigned strips one leading '+' so "+5" parses like "5".
func unsigned(v string) string {
	if strings.HasPrefix(v, "+") {
		return v[1:]
	}
	return v
}

// ValidateFilePath requires the path to exist.
func ValidateFilePath(v string) error {
	if _, err := os.Stat(v); err != nil {
		return fmt.Errorf("file %s does not exist", v)
	}
	return nil
}

// ValidateMethod accepts GET or POST in any case.
func ValidateMethod(v string) error {
	upper := strings.ToUpper(v)
	for _, m := range ValidMethods {
		if upper == m {
			return nil
		}
	}
	return fmt.Errorf("invalid request method %q", v)
}
