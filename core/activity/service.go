package activity

import (
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

var ErrNotFound = errors.New("activity not found")

// Feed limits. Both dashboards share the same underlying collection, so the
// smaller limit effectively governs once both have written to it.
const (
	HeadmasterLimit = 8
	TeacherLimit    = 12
)

var NowFunc = time.Now // mockable

// Activity is one "recent activity" feed entry.
type Activity struct {
	ID   string `json:"id"`
	Icon string `json:"icon"`
	Text string `json:"text"`
	Time string `json:"time"`
}

// Service maintains the capped activity feed, newest first. The limit is
// fixed per surface (headmaster vs teacher dashboard) at construction.
type Service struct {
	store core.Store
	limit int
}

func NewService(store core.Store, limit int) *Service {
	return &Service{store: store, limit: limit}
}

func (svc *Service) collection() []Activity {
	var acts []Activity
	svc.store.Read(core.KeyActivities, &acts)
	return acts
}

func (svc *Service) QueryAll() ([]Activity, error) {
	return svc.collection(), nil
}

// Record prepends a feed entry and truncates the feed to the limit.
func (svc *Service) Record(icon, text string) (Activity, error) {
	now := NowFunc()
	act := Activity{
		ID:   strconv.FormatInt(now.UnixNano()/int64(time.Millisecond), 10),
		Icon: icon,
		Text: text,
		Time: now.Format("1/2/2006, 3:04:05 PM"),
	}

	acts := append([]Activity{act}, svc.collection()...)
	if len(acts) > svc.limit {
		acts = acts[:svc.limit]
	}
	if !svc.store.Write(core.KeyActivities, acts) {
		return Activity{}, core.ErrStorageFailure
	}
	return act, nil
}

func (svc *Service) Remove(id string) error {
	acts := svc.collection()
	kept := acts[:0]
	for _, a := range acts {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(acts) {
		return ErrNotFound
	}
	if !svc.store.Write(core.KeyActivities, kept) {
		return core.ErrStorageFailure
	}
	return nil
}

// Clear replaces the feed with an empty one; there is no undo.
func (svc *Service) Clear() error {
	if !svc.store.Write(core.KeyActivities, []Activity{}) {
		return core.ErrStorageFailure
	}
	return nil
}
