package compose

import (
	"strings"

	"github.com/poiesic/askit/core"
	"github.com/poiesic/askit/index"
)

const (
	generalMainCap    = 3
	generalTopicCap   = 2
	similarThreshold  = 0.6
	contrastThreshold = 0.2
)

// composeGeneral picks up to three main documents with at most two distinct
// topics among them, then chains the facts with connectors chosen by the
// embedding similarity of each consecutive pair.
func (c *Composer) composeGeneral(raw string, ranked []core.RankedResult) core.Response {
	mains := selectDiverse(ranked, generalMainCap)

	a := c.newAnswer(raw)
	var sb strings.Builder
	sb.WriteString(a.cite(mains[0]))
	for i := 1; i < len(mains); i++ {
		sb.WriteString(" ")
		sb.WriteString(connectorFor(mains[i-1], mains[i]))
		sb.WriteString(" ")
		sb.WriteString(a.cite(mains[i]))
	}

	supporting := a.supports(remaining(ranked, mains...))

	return core.Response{
		Topic:      mains[0].Topic,
		Category:   mains[0].Category,
		Main:       sb.String(),
		Supporting: supporting,
		Citations:  a.citations,
	}
}

// selectDiverse walks the ranked list in order, skipping any document that
// would introduce a third distinct topic. A second pass fills the remaining
// slots with the skipped documents so a low-diversity corpus still produces
// a full answer.
func selectDiverse(ranked []core.RankedResult, limit int) []*core.Document {
	topics := make(map[string]struct{}, generalTopicCap)
	used := make(map[core.ID]struct{}, limit)
	var mains []*core.Document

	for _, r := range ranked {
		if len(mains) == limit {
			break
		}
		topic := strings.ToLower(r.Document.Topic)
		if _, seen := topics[topic]; !seen && len(topics) >= generalTopicCap {
			continue
		}
		topics[topic] = struct{}{}
		used[r.Document.Id] = struct{}{}
		mains = append(mains, r.Document)
	}

	for _, r := range ranked {
		if len(mains) == limit {
			break
		}
		if _, ok := used[r.Document.Id]; ok {
			continue
		}
		used[r.Document.Id] = struct{}{}
		mains = append(mains, r.Document)
	}

	return mains
}

func connectorFor(prev, next *core.Document) string {
	sim := index.Cosine(prev.Embedding, next.Embedding)
	switch {
	case sim >= similarThreshold:
		return "Similarly,"
	case sim <= contrastThreshold:
		return "On the other hand,"
	default:
		return "Additionally,"
	}
}
