//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/sh"
)

const binary = "consort"

// Installs the application.
func Install() error {
	version, err := gitVersion()
	if err != nil {
		return err
	}
	return sh.Run("go", "install", "-ldflags", "-X main.version="+version)
}

// Creates an executable for the given platform. Possible platforms are "linux-amd64" and "linux-arm64".
func Build(platform string) error {
	envMap, err := env(platform)
	if err != nil {
		return err
	}
	version, err := gitVersion()
	if err != nil {
		return err
	}
	return sh.RunWith(envMap, "go", "build", "-o", binary+"-"+platform, "-ldflags", "-X main.version="+version)
}

// Runs the test suite.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

func gitVersion() (string, error) {
	return sh.Output("git", "describe", "--always", "--long", "--dirty")
}

func env(platform string) (map[string]string, error) {
	switch platform {
	case "linux-amd64":
		return map[string]string{
			"GOOS":   "linux",
			"GOARCH": "amd64",
		}, nil
	case "linux-arm64":
		return map[string]string{
			"GOOS":   "linux",
			"GOARCH": "arm64",
		}, nil
	}

	return nil, fmt.Errorf("Platform '%s' not supported", platform)
}
