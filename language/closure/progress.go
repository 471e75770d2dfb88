package closure

import (
	"github.com/pcj/mobyprogress"

	"github.com/stackb/closure-gazelle/pkg/progress"
)

func writeGenerateProgress(output mobyprogress.Output, packages int) {
	progress.Messagef(output, "walk", "generated rules in %d packages", packages)
}

func writeResolveProgress(output mobyprogress.Output, current, total int) {
	progress.Update(output, "resolve", "resolving dependencies", current, total, "rules")
}
