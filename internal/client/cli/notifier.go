package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gatekeeper/internal/client/dispatch"
)

// printNotifier prints outcomes as "[title] message".
type printNotifier struct{}

func (printNotifier) Notify(_ context.Context, o dispatch.Outcome) {
	printlnFn(fmt.Sprintf("[%s] %s", o.Title, o.Message))
}
