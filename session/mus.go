package session

import (
	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"

	"github.com/poiesic/askit/core"
)

// SnapshotMUS serializes session snapshots for the persistence layer.
var SnapshotMUS = snapshotMUS{}

var _ mus.Serializer[Snapshot] = SnapshotMUS

var (
	historySliceMUS    = ord.NewSliceSer[core.HistoryEntry](core.HistoryEntryMUS)
	intentFrequencyMUS = ord.NewMapSer[core.Intent, int](core.IntentMUS, varint.Int)
)

type snapshotMUS struct{}

func (s snapshotMUS) Marshal(v Snapshot, bs []byte) (n int) {
	n = ord.String.Marshal(v.CurrentTopic, bs)
	n += ord.String.Marshal(v.LastTopic, bs[n:])
	n += ord.String.Marshal(v.CurrentCategory, bs[n:])
	n += raw.Float64.Marshal(v.Confidence, bs[n:])
	n += historySliceMUS.Marshal(v.History, bs[n:])
	n += intentFrequencyMUS.Marshal(v.IntentFrequency, bs[n:])
	return n
}

func (s snapshotMUS) Unmarshal(bs []byte) (v Snapshot, n int, err error) {
	var n1 int
	v.CurrentTopic, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v.LastTopic, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.CurrentCategory, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Confidence, n1, err = raw.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.History, n1, err = historySliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.IntentFrequency, n1, err = intentFrequencyMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (s snapshotMUS) Size(v Snapshot) (size int) {
	size = ord.String.Size(v.CurrentTopic)
	size += ord.String.Size(v.LastTopic)
	size += ord.String.Size(v.CurrentCategory)
	size += raw.Float64.Size(v.Confidence)
	size += historySliceMUS.Size(v.History)
	size += intentFrequencyMUS.Size(v.IntentFrequency)
	return size
}

func (s snapshotMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.Float64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = historySliceMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = intentFrequencyMUS.Skip(bs[n:])
	n += n1
	return
}
