package core

import (
	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the persisted core types. Timestamps are stored as
// Unix microseconds.
var (
	IDMUS           = idMUS{}
	IntentMUS       = intentMUS{}
	DocStatsMUS     = docStatsMUS{}
	HistoryEntryMUS = historyEntryMUS{}
	BookmarkMUS     = bookmarkMUS{}

	StringSliceMUS = ord.NewSliceSer[string](ord.String)
)

var (
	_ mus.Serializer[ID]           = IDMUS
	_ mus.Serializer[Intent]       = IntentMUS
	_ mus.Serializer[DocStats]     = DocStatsMUS
	_ mus.Serializer[HistoryEntry] = HistoryEntryMUS
	_ mus.Serializer[Bookmark]     = BookmarkMUS
)

type idMUS struct{}

func (s idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	num, n, err := varint.Uint64.Unmarshal(bs)
	return ID(num), n, err
}

func (s idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s idMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

type intentMUS struct{}

func (s intentMUS) Marshal(v Intent, bs []byte) (n int) {
	return varint.Int.Marshal(int(v), bs)
}

func (s intentMUS) Unmarshal(bs []byte) (v Intent, n int, err error) {
	num, n, err := varint.Int.Unmarshal(bs)
	return Intent(num), n, err
}

func (s intentMUS) Size(v Intent) (size int) {
	return varint.Int.Size(int(v))
}

func (s intentMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int.Skip(bs)
}

type docStatsMUS struct{}

func (s docStatsMUS) Marshal(v DocStats, bs []byte) (n int) {
	n = raw.Float64.Marshal(v.ViewCount, bs)
	n += varint.Int.Marshal(v.FeedbackScore, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.LastViewedAt, bs[n:])
	n += raw.Float64.Marshal(v.Weight, bs[n:])
	return n
}

func (s docStatsMUS) Unmarshal(bs []byte) (v DocStats, n int, err error) {
	var n1 int
	v.ViewCount, n, err = raw.Float64.Unmarshal(bs)
	if err != nil {
		return
	}
	v.FeedbackScore, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.LastViewedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Weight, n1, err = raw.Float64.Unmarshal(bs[n:])
	n += n1
	return
}

func (s docStatsMUS) Size(v DocStats) (size int) {
	size = raw.Float64.Size(v.ViewCount)
	size += varint.Int.Size(v.FeedbackScore)
	size += raw.TimeUnixMicro.Size(v.LastViewedAt)
	size += raw.Float64.Size(v.Weight)
	return size
}

func (s docStatsMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = raw.Float64.Skip(bs)
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.Float64.Skip(bs[n:])
	n += n1
	return
}

type historyEntryMUS struct{}

func (s historyEntryMUS) Marshal(v HistoryEntry, bs []byte) (n int) {
	n = ord.String.Marshal(v.Query, bs)
	n += ord.String.Marshal(v.Topic, bs[n:])
	n += IntentMUS.Marshal(v.Intent, bs[n:])
	n += StringSliceMUS.Marshal(v.Entities, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.Timestamp, bs[n:])
	return n
}

func (s historyEntryMUS) Unmarshal(bs []byte) (v HistoryEntry, n int, err error) {
	var n1 int
	v.Query, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Topic, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Intent, n1, err = IntentMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Entities, n1, err = StringSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Timestamp, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s historyEntryMUS) Size(v HistoryEntry) (size int) {
	size = ord.String.Size(v.Query)
	size += ord.String.Size(v.Topic)
	size += IntentMUS.Size(v.Intent)
	size += StringSliceMUS.Size(v.Entities)
	size += raw.TimeUnixMicro.Size(v.Timestamp)
	return size
}

func (s historyEntryMUS) Skip(bs []byte) (n int, err error) {
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
	n1, err = IntentMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = StringSliceMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}

type bookmarkMUS struct{}

func (s bookmarkMUS) Marshal(v Bookmark, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Text, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.SavedAt, bs[n:])
	return n
}

func (s bookmarkMUS) Unmarshal(bs []byte) (v Bookmark, n int, err error) {
	var n1 int
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SavedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s bookmarkMUS) Size(v Bookmark) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Text)
	size += raw.TimeUnixMicro.Size(v.SavedAt)
	return size
}

func (s bookmarkMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}
