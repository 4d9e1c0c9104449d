package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/entities"
	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/kinship"
	"github.com/BipinThapa/lineage-explorer-genesis/internal/domain/ports"
)

// Relation is the kinship between two members as seen from From.
type Relation struct {
	From  string        `json:"from"`
	To    string        `json:"to"`
	Label kinship.Label `json:"label"`
	Text  string        `json:"text"`
	Tier  kinship.Tier  `json:"tier"`
}

// NodeLabel is one roster member labelled relative to a focused member.
// The focused member itself carries no label.
type NodeLabel struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Focused bool          `json:"focused,omitempty"`
	Label   kinship.Label `json:"label,omitempty"`
	Text    string        `json:"text,omitempty"`
	Tier    kinship.Tier  `json:"tier,omitempty"`
}

// snapshot pairs an engine with the roster it was built from.
type snapshot struct {
	revision int64
	engine   *kinship.Engine
	members  []entities.FamilyMember
}

// KinshipService answers kinship queries against the stored roster. It keeps
// one engine per store revision and rebuilds it when the revision moves.
type KinshipService struct {
	relationalDB ports.RelationalDB
	recorder     ports.KinshipRecorder
	logger       *slog.Logger
	vocab        *kinship.Vocabulary

	mu      sync.RWMutex
	current *snapshot
	group   singleflight.Group
}

// KinshipOption configures a KinshipService.
type KinshipOption func(*KinshipService)

// WithRecorder sets the recorder that receives query and build measurements.
func WithRecorder(r ports.KinshipRecorder) KinshipOption {
	return func(s *KinshipService) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) KinshipOption {
	return func(s *KinshipService) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithVocabulary sets the vocabulary used to render labels.
func WithVocabulary(v *kinship.Vocabulary) KinshipOption {
	return func(s *KinshipService) {
		if v != nil {
			s.vocab = v
		}
	}
}

// NewKinshipService creates a new KinshipService.
func NewKinshipService(relationalDB ports.RelationalDB, opts ...KinshipOption) *KinshipService {
	s := &KinshipService{
		relationalDB: relationalDB,
		recorder:     ports.NopRecorder{},
		logger:       slog.Default(),
		vocab:        kinship.Nepali,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Vocabulary returns the vocabulary labels are rendered with.
func (s *KinshipService) Vocabulary() *kinship.Vocabulary {
	return s.vocab
}

// Engine returns an engine over the current roster, rebuilding it if the
// store changed since the last call. Concurrent rebuilds of the same
// revision share one load.
func (s *KinshipService) Engine(ctx context.Context) (*kinship.Engine, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.engine, nil
}

func (s *KinshipService) snapshot(ctx context.Context) (*snapshot, error) {
	rev, err := s.relationalDB.Revision(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading roster revision: %w", err)
	}

	s.mu.RLock()
	cur := s.current
	s.mu.RUnlock()
	if cur != nil && cur.revision == rev {
		return cur, nil
	}

	v, err, _ := s.group.Do(strconv.FormatInt(rev, 10), func() (any, error) {
		return s.rebuild(ctx, rev)
	})
	if err != nil {
		return nil, err
	}
	return v.(*snapshot), nil
}

func (s *KinshipService) rebuild(ctx context.Context, rev int64) (*snapshot, error) {
	start := time.Now()

	members, err := s.relationalDB.Roster(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading roster: %w", err)
	}

	snap := &snapshot{
		revision: rev,
		engine:   kinship.New(members, kinship.WithVocabulary(s.vocab)),
		members:  members,
	}
	elapsed := time.Since(start)

	s.mu.Lock()
	if s.current == nil || s.current.revision <= rev {
		s.current = snap
	}
	s.mu.Unlock()

	s.recorder.ObserveBuild(len(members), elapsed)
	s.logger.Debug("kinship engine rebuilt",
		"revision", rev,
		"members", len(members),
		"elapsed", elapsed,
	)

	return snap, nil
}

// Relationship resolves the kinship of toID as seen from fromID. Ids missing
// from the roster resolve to the unknown label rather than an error.
func (s *KinshipService) Relationship(ctx context.Context, fromID, toID string) (*Relation, error) {
	engine, err := s.Engine(ctx)
	if err != nil {
		return nil, err
	}

	res := s.resolve(engine, fromID, toID)
	return &Relation{
		From:  fromID,
		To:    toID,
		Label: res.Label,
		Text:  s.vocab.Text(res.Label),
		Tier:  res.Tier,
	}, nil
}

// Labels labels every roster member relative to focusID, in roster order.
func (s *KinshipService) Labels(ctx context.Context, focusID string) ([]NodeLabel, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range snap.members {
		if snap.members[i].ID == focusID {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrMemberNotFound, focusID)
	}

	labels := make([]NodeLabel, 0, len(snap.members))
	for i := range snap.members {
		m := &snap.members[i]
		node := NodeLabel{ID: m.ID, Name: m.Name}
		if m.ID == focusID {
			node.Focused = true
			labels = append(labels, node)
			continue
		}
		res := s.resolve(snap.engine, focusID, m.ID)
		node.Label = res.Label
		node.Text = s.vocab.Text(res.Label)
		node.Tier = res.Tier
		labels = append(labels, node)
	}

	s.logger.Debug("labelled roster", "focus", focusID, "members", len(labels))
	return labels, nil
}

func (s *KinshipService) resolve(engine *kinship.Engine, fromID, toID string) kinship.Result {
	start := time.Now()
	res := engine.Resolve(fromID, toID)
	s.recorder.ObserveQuery(string(res.Tier), time.Since(start))
	return res
}
