// Command rxselect matches a regular expression against a subject and prints
// the selected capture groups as JSON or YAML.
//
//	rxselect match '(?i)^(first)_(second)_(?<third>third)$' first_second_third -g third
//	rxselect all b abba --groups=
//	rxselect replace '^(\w+)$' '<$1>' word -g 1
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
