// Command dilint-vet runs the dilint analyzer as a vet tool:
//
//	go vet -vettool=$(which dilint-vet) ./...
package main

import (
	"github.com/pthm/dilint/internal/analyzer"
	"golang.org/x/tools/go/analysis/singlechecker"
)

func main() {
	singlechecker.Main(analyzer.Analyzer)
}
