package review

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"tunetrace/internal/artiststore"
)

// unlistedPriority sorts channels missing from the export after all listed
// ones.
const unlistedPriority = 1 << 30

// PriorityIndex maps channel URLs to their 1-based row position in the
// verifier's review export.
type PriorityIndex map[string]int

// LoadPriorityIndex reads the review export CSV. A missing file yields an
// empty index, not an error.
func LoadPriorityIndex(path string) (PriorityIndex, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return PriorityIndex{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open review export: %w", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read review export: %w", err)
	}
	if len(rows) == 0 {
		return PriorityIndex{}, nil
	}

	urlColumn := -1
	for i, name := range rows[0] {
		if name == "channel_url" {
			urlColumn = i
			break
		}
	}
	if urlColumn < 0 {
		return nil, errors.New("review export has no channel_url column")
	}

	index := make(PriorityIndex, len(rows)-1)
	for i, row := range rows[1:] {
		if urlColumn >= len(row) || row[urlColumn] == "" {
			continue
		}
		if _, ok := index[row[urlColumn]]; !ok {
			index[row[urlColumn]] = i + 1
		}
	}
	return index, nil
}

func (p PriorityIndex) rank(channelURL string) int {
	if rank, ok := p[channelURL]; ok {
		return rank
	}
	return unlistedPriority
}

// Queue orders records awaiting a manual verdict.
type Queue struct {
	store    *artiststore.Store
	priority PriorityIndex
}

// NewQueue constructs a queue over the store, ordered by the given priority
// index. A nil index sorts purely by name.
func NewQueue(store *artiststore.Store, priority PriorityIndex) *Queue {
	if priority == nil {
		priority = PriorityIndex{}
	}
	return &Queue{store: store, priority: priority}
}

// Next returns up to limit records awaiting review, ordered by (priority
// index, name). A non-positive limit returns all of them.
func (q *Queue) Next(ctx context.Context, limit int) ([]*artiststore.Artist, error) {
	artists, err := q.store.NeedingReview(ctx)
	if err != nil {
		return nil, err
	}

	// NeedingReview returns name order already; a stable sort on priority
	// keeps name as the tie-break.
	sort.SliceStable(artists, func(i, j int) bool {
		return q.priority.rank(artists[i].ChannelURL) < q.priority.rank(artists[j].ChannelURL)
	})

	if limit > 0 && len(artists) > limit {
		artists = artists[:limit]
	}
	return artists, nil
}

// SetDecision records the reviewer's verdict for one record.
func (q *Queue) SetDecision(ctx context.Context, id int64, verdict artiststore.Verdict) error {
	return q.store.SetManualVerification(ctx, id, verdict)
}
