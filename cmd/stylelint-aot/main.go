package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/openkraft/stylelint-aot/internal/adapters/inbound/cli"
	"github.com/openkraft/stylelint-aot/internal/domain"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		var cfgErr *domain.ConfigurationError
		if errors.As(err, &cfgErr) {
			os.Exit(domain.ExitCodeConfig)
		}
		os.Exit(1)
	}
}
