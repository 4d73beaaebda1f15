package core

import (
	"embed"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed seeds/*.yaml
var seedFS embed.FS

// seedOf parses seeds/<name>.yaml once. Every call returns a fresh copy so
// callers may mutate it.
func seedOf[T any](name string) func() []T {
	parsed := sync.OnceValue(func() []T {
		raw, err := seedFS.ReadFile("seeds/" + name + ".yaml")
		if err != nil {
			panic(fmt.Sprintf("seed %s: %v", name, err))
		}
		var out []T
		if err := yaml.Unmarshal(raw, &out); err != nil {
			panic(fmt.Sprintf("seed %s: %v", name, err))
		}
		return out
	})
	return func() []T { return slices.Clone(parsed()) }
}

var (
	seedEmployees        = seedOf[Employee](CollectionEmployees)
	seedJobOpenings      = seedOf[JobOpening](CollectionJobOpenings)
	seedTrainingPrograms = seedOf[TrainingProgram](CollectionTrainingPrograms)
	seedLedger           = seedOf[AccountingEntry](CollectionGeneralLedger)
	seedPayables         = seedOf[Invoice](CollectionAccountsPayable)
	seedReceivables      = seedOf[Invoice](CollectionAccountsReceivable)
	seedPayroll          = seedOf[PayrollEmployee](CollectionPayroll)
)
