package compose

import (
	"strings"

	"github.com/poiesic/askit/core"
)

const listMainCap = 3

// composeList enumerates up to three main documents in rank order.
func (c *Composer) composeList(raw string, ranked []core.RankedResult) core.Response {
	n := listMainCap
	if len(ranked) < n {
		n = len(ranked)
	}

	a := c.newAnswer(raw)
	mains := make([]*core.Document, 0, n)
	parts := make([]string, 0, n)
	for _, r := range ranked[:n] {
		mains = append(mains, r.Document)
		parts = append(parts, a.cite(r.Document))
	}

	supporting := a.supports(remaining(ranked, mains...))

	return core.Response{
		Topic:      mains[0].Topic,
		Category:   mains[0].Category,
		Main:       strings.Join(parts, " "),
		Supporting: supporting,
		Citations:  a.citations,
	}
}
