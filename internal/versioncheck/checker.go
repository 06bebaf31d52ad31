// Package versioncheck compares the running client with the version the
// survey service reports.
package versioncheck

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/abhisek/dqi/internal/surveyapi"
)

// DevVersion is the version of a binary built without -ldflags.
const DevVersion = "(devel)"

var (
	ErrDevBuild       = errors.New("development build has no version to compare")
	ErrInvalidVersion = errors.New("invalid semantic version")
)

// BannerSource returns the service banner.
type BannerSource interface {
	Ping(ctx context.Context) (*surveyapi.Banner, error)
}

// Checker compares client and service versions.
type Checker struct {
	src BannerSource
}

// NewChecker creates a Checker over src.
func NewChecker(src BannerSource) *Checker {
	return &Checker{src: src}
}

type CheckInput struct {
	Version string
}

type CheckResult struct {
	Message        string
	ClientVersion  string
	ServiceVersion string

	// Compatible is true when both share a major version.
	Compatible bool

	// UpdateAvailable is true when the service is newer than the client.
	UpdateAvailable bool
}

// Check pings the service and compares versions. The banner is returned
// with ErrDevBuild for development builds.
func (c *Checker) Check(ctx context.Context, input *CheckInput) (*CheckResult, error) {
	banner, err := c.src.Ping(ctx)
	if err != nil {
		return nil, fmt.Errorf("ping service: %w", err)
	}

	res := &CheckResult{
		Message:        banner.Message,
		ClientVersion:  input.Version,
		ServiceVersion: banner.Version,
	}
	if input.Version == DevVersion || input.Version == "" {
		return res, ErrDevBuild
	}

	client, err := Canonical(input.Version)
	if err != nil {
		return res, err
	}
	service, err := Canonical(banner.Version)
	if err != nil {
		return res, err
	}

	res.Compatible = semver.Major(client) == semver.Major(service)
	res.UpdateAvailable = semver.Compare(client, service) < 0
	return res, nil
}

// Canonical normalizes v to the "vMAJOR.MINOR.PATCH" form semver expects,
// accepting a missing "v" prefix.
func Canonical(v string) (string, error) {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", fmt.Errorf("%w: %q", ErrInvalidVersion, v)
	}
	return semver.Canonical(v), nil
}
