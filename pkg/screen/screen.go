package screen

import (
	"sync"
	"testing"

	"github.com/go-drift/probe/pkg/config"
	"github.com/go-drift/probe/pkg/instance"
	"github.com/go-drift/probe/pkg/query"
	"github.com/go-drift/probe/pkg/textmatch"
	"github.com/go-drift/probe/pkg/wait"
)

// Screen binds the query surface to a rendered tree snapshot. Queries
// are read-only; Update swaps in a new snapshot atomically, which is how
// hosts model re-renders (an element "appearing" for a Find query is an
// Update happening between polls).
type Screen struct {
	mu    sync.RWMutex
	tree  *instance.Tree
	clock wait.Clock
}

// Option configures a Screen at mount time.
type Option func(*Screen)

// WithClock pins the clock used by this screen's Find queries. Defaults
// to the package-level wait clock.
func WithClock(c wait.Clock) Option {
	return func(s *Screen) { s.clock = c }
}

var (
	mountedMu sync.Mutex
	mounted   []*Screen
)

// Render builds def into a snapshot and returns the bound screen.
// Unmounting is registered with t.Cleanup unless PROBE_SKIP_AUTO_CLEANUP
// is set.
func Render(t testing.TB, def instance.Def, opts ...Option) *Screen {
	t.Helper()
	s := Mount(def, opts...)
	if !config.SkipAutoCleanup() {
		t.Cleanup(s.Unmount)
	}
	return s
}

// Mount is Render without a testing handle, for hosts that drive
// lifecycle themselves. Mounted screens are tracked so Cleanup can
// unmount them all.
func Mount(def instance.Def, opts ...Option) *Screen {
	s := &Screen{tree: instance.Build(def)}
	for _, o := range opts {
		o(s)
	}
	mountedMu.Lock()
	mounted = append(mounted, s)
	mountedMu.Unlock()
	return s
}

// Cleanup unmounts every screen mounted since the last call. Hosts that
// disable automatic cleanup call this from their own post-test hook.
func Cleanup() {
	mountedMu.Lock()
	screens := mounted
	mounted = nil
	mountedMu.Unlock()
	for _, s := range screens {
		s.Unmount()
	}
}

// Update replaces the snapshot with a newly built tree, superseding the
// previous render pass.
func (s *Screen) Update(def instance.Def) {
	s.mu.Lock()
	s.tree = instance.Build(def)
	s.mu.Unlock()
}

// Unmount drops the snapshot. Subsequent queries see an empty tree.
func (s *Screen) Unmount() {
	s.mu.Lock()
	s.tree = nil
	s.mu.Unlock()
}

// Tree returns the current snapshot. May be nil after Unmount.
func (s *Screen) Tree() *instance.Tree {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree
}

// Root returns the root instance of the current snapshot.
func (s *Screen) Root() instance.Instance {
	return s.Tree().Root()
}

// --- Generic variants ---

// Get returns the single instance matched by f. It fails with
// NotFoundError when nothing matches and MultipleMatchesError when more
// than one instance does.
func (s *Screen) Get(f query.Finder) (instance.Instance, error) {
	return query.GetOne(s.Tree(), f)
}

// GetAll returns all instances matched by f, failing with NotFoundError
// when there are none.
func (s *Screen) GetAll(f query.Finder) ([]instance.Instance, error) {
	return query.GetAllOf(s.Tree(), f)
}

// Query returns the instance matched by f, a zero instance when nothing
// matches, and MultipleMatchesError when several do.
func (s *Screen) Query(f query.Finder) (instance.Instance, error) {
	return query.One(s.Tree(), f)
}

// QueryAll returns every instance matched by f, possibly none. It never
// fails.
func (s *Screen) QueryAll(f query.Finder) []instance.Instance {
	return query.All(s.Tree(), f)
}

// Find polls Get until it succeeds or the timeout elapses. The snapshot
// is re-read on every attempt, so an Update between polls is observed.
func (s *Screen) Find(f query.Finder, opts ...wait.Option) (instance.Instance, error) {
	var found instance.Instance
	err := wait.For(func() error {
		in, err := query.GetOne(s.Tree(), f)
		if err != nil {
			return err
		}
		found = in
		return nil
	}, s.waitOpts(opts)...)
	if err != nil {
		return instance.Instance{}, err
	}
	return found, nil
}

// FindAll polls GetAll until it succeeds or the timeout elapses.
func (s *Screen) FindAll(f query.Finder, opts ...wait.Option) ([]instance.Instance, error) {
	var found []instance.Instance
	err := wait.For(func() error {
		ins, err := query.GetAllOf(s.Tree(), f)
		if err != nil {
			return err
		}
		found = ins
		return nil
	}, s.waitOpts(opts)...)
	if err != nil {
		return nil, err
	}
	return found, nil
}

// waitOpts prepends the screen's pinned clock so per-call options can
// still override it.
func (s *Screen) waitOpts(opts []wait.Option) []wait.Option {
	if s.clock == nil {
		return opts
	}
	return append([]wait.Option{wait.WithClock(s.clock)}, opts...)
}

// FindOption adjusts one named Find call. Named async queries are
// parameterized by both match options (narrowing the underlying query)
// and wait options (tuning the polling); Match and Wait lift each kind.
type FindOption func(*findSettings)

type findSettings struct {
	match []query.MatchOption
	wait  []wait.Option
}

// Match applies query match options to the finder a named Find call
// builds.
func Match(opts ...query.MatchOption) FindOption {
	return func(fs *findSettings) { fs.match = append(fs.match, opts...) }
}

// Wait applies polling options to the async resolver of a named Find
// call.
func Wait(opts ...wait.Option) FindOption {
	return func(fs *findSettings) { fs.wait = append(fs.wait, opts...) }
}

func splitFindOptions(opts []FindOption) ([]query.MatchOption, []wait.Option) {
	var fs findSettings
	for _, o := range opts {
		o(&fs)
	}
	return fs.match, fs.wait
}

// --- Role ---

// GetByRole returns the single instance with the given role, narrowed
// by ro.
func (s *Screen) GetByRole(role textmatch.TextMatch, ro query.RoleOptions, opts ...query.MatchOption) (instance.Instance, error) {
	return s.Get(query.ByRole(role, ro, opts...))
}

// GetAllByRole returns all instances with the given role.
func (s *Screen) GetAllByRole(role textmatch.TextMatch, ro query.RoleOptions, opts ...query.MatchOption) ([]instance.Instance, error) {
	return s.GetAll(query.ByRole(role, ro, opts...))
}

// QueryByRole returns the instance with the given role, or a zero
// instance when none matches.
func (s *Screen) QueryByRole(role textmatch.TextMatch, ro query.RoleOptions, opts ...query.MatchOption) (instance.Instance, error) {
	return s.Query(query.ByRole(role, ro, opts...))
}

// QueryAllByRole returns every instance with the given role.
func (s *Screen) QueryAllByRole(role textmatch.TextMatch, ro query.RoleOptions, opts ...query.MatchOption) []instance.Instance {
	return s.QueryAll(query.ByRole(role, ro, opts...))
}

// FindByRole polls GetByRole until it succeeds or times out.
func (s *Screen) FindByRole(role textmatch.TextMatch, ro query.RoleOptions, opts ...FindOption) (instance.Instance, error) {
	m, w := splitFindOptions(opts)
	return s.Find(query.ByRole(role, ro, m...), w...)
}

// FindAllByRole polls GetAllByRole until it succeeds or times out.
func (s *Screen) FindAllByRole(role textmatch.TextMatch, ro query.RoleOptions, opts ...FindOption) ([]instance.Instance, error) {
	m, w := splitFindOptions(opts)
	return s.FindAll(query.ByRole(role, ro, m...), w...)
}

// --- Text ---

// GetByText returns the single text host whose joined content matches
// target.
func (s *Screen) GetByText(target textmatch.TextMatch, opts ...query.MatchOption) (instance.Instance, error) {
	return s.Get(query.ByText(target, opts...))
}

// GetAllByText returns all text hosts whose joined content matches
// target.
func (s *Screen) GetAllByText(target textmatch.TextMatch, opts ...query.MatchOption) ([]instance.Instance, error) {
	return s.GetAll(query.ByText(target, opts...))
}

// QueryByText returns the matching text host, or a zero instance.
func (s *Screen) QueryByText(target textmatch.TextMatch, opts ...query.MatchOption) (instance.Instance, error) {
	return s.Query(query.ByText(target, opts...))
}

// QueryAllByText returns every matching text host.
func (s *Screen) QueryAllByText(target textmatch.TextMatch, opts ...query.MatchOption) []instance.Instance {
	return s.QueryAll(query.ByText(target, opts...))
}

// FindByText polls GetByText until it succeeds or times out.
func (s *Screen) FindByText(target textmatch.TextMatch, opts ...FindOption) (instance.Instance, error) {
	m, w := splitFindOptions(opts)
	return s.Find(query.ByText(target, m...), w...)
}

// FindAllByText polls GetAllByText until it succeeds or times out.
func (s *Screen) FindAllByText(target textmatch.TextMatch, opts ...FindOption) ([]instance.Instance, error) {
	m, w := splitFindOptions(opts)
	return s.FindAll(query.ByText(target, m...), w...)
}

// --- Label text ---

func (s *Screen) GetByLabelText(target textmatch.TextMatch, opts ...query.MatchOption) (instance.Instance, error) {
	return s.Get(query.ByLabelText(target, opts...))
}

func (s *Screen) GetAllByLabelText(target textmatch.TextMatch, opts ...query.MatchOption) ([]instance.Instance, error) {
	return s.GetAll(query.ByLabelText(target, opts...))
}

func (s *Screen) QueryByLabelText(target textmatch.TextMatch, opts ...query.MatchOption) (instance.Instance, error) {
	return s.Query(query.ByLabelText(target, opts...))
}

func (s *Screen) QueryAllByLabelText(target textmatch.TextMatch, opts ...query.MatchOption) []instance.Instance {
	return s.QueryAll(query.ByLabelText(target, opts...))
}

func (s *Screen) FindByLabelText(target textmatch.TextMatch, opts ...FindOption) (instance.Instance, error) {
	m, w := splitFindOptions(opts)
	return s.Find(query.ByLabelText(target, m...), w...)
}

func (s *Screen) FindAllByLabelText(target textmatch.TextMatch, opts ...FindOption) ([]instance.Instance, error) {
	m, w := splitFindOptions(opts)
	return s.FindAll(query.ByLabelText(target, m...), w...)
}

// --- Placeholder text ---

func (s *Screen) GetByPlaceholderText(target textmatch.TextMatch, opts ...query.MatchOption) (instance.Instance, error) {
	return s.Get(query.ByPlaceholderText(target, opts...))
}

func (s *Screen) GetAllByPlaceholderText(target textmatch.TextMatch, opts ...query.MatchOption) ([]instance.Instance, error) {
	return s.GetAll(query.ByPlaceholderText(target, opts...))
}

func (s *Screen) QueryByPlaceholderText(target textmatch.TextMatch, opts ...query.MatchOption) (instance.Instance, error) {
	return s.Query(query.ByPlaceholderText(target, opts...))
}

func (s *Screen) QueryAllByPlaceholderText(target textmatch.TextMatch, opts ...query.MatchOption) []instance.Instance {
	return s.QueryAll(query.ByPlaceholderText(target, opts...))
}

func (s *Screen) FindByPlaceholderText(target textmatch.TextMatch, opts ...FindOption) (instance.Instance, error) {
	m, w := splitFindOptions(opts)
	return s.Find(query.ByPlaceholderText(target, m...), w...)
}

func (s *Screen) FindAllByPlaceholderText(target textmatch.TextMatch, opts ...FindOption) ([]instance.Instance, error) {
	m, w := splitFindOptions(opts)
	return s.FindAll(query.ByPlaceholderText(target, m...), w...)
}

// --- Display value ---

func (s *Screen) GetByDisplayValue(target textmatch.TextMatch, opts ...query.MatchOption) (instance.Instance, error) {
	return s.Get(query.ByDisplayValue(target, opts...))
}

func (s *Screen) GetAllByDisplayValue(target textmatch.TextMatch, opts ...query.MatchOption) ([]instance.Instance, error) {
	return s.GetAll(query.ByDisplayValue(target, opts...))
}

func (s *Screen) QueryByDisplayValue(target textmatch.TextMatch, opts ...query.MatchOption) (instance.Instance, error) {
	return s.Query(query.ByDisplayValue(target, opts...))
}

func (s *Screen) QueryAllByDisplayValue(target textmatch.TextMatch, opts ...query.MatchOption) []instance.Instance {
	return s.QueryAll(query.ByDisplayValue(target, opts...))
}

func (s *Screen) FindByDisplayValue(target textmatch.TextMatch, opts ...FindOption) (instance.Instance, error) {
	m, w := splitFindOptions(opts)
	return s.Find(query.ByDisplayValue(target, m...), w...)
}

func (s *Screen) FindAllByDisplayValue(target textmatch.TextMatch, opts ...FindOption) ([]instance.Instance, error) {
	m, w := splitFindOptions(opts)
	return s.FindAll(query.ByDisplayValue(target, m...), w...)
}

// --- Hint text ---

func (s *Screen) GetByHintText(target textmatch.TextMatch, opts ...query.MatchOption) (instance.Instance, error) {
	return s.Get(query.ByHintText(target, opts...))
}

func (s *Screen) GetAllByHintText(target textmatch.TextMatch, opts ...query.MatchOption) ([]instance.Instance, error) {
	return s.GetAll(query.ByHintText(target, opts...))
}

func (s *Screen) QueryByHintText(target textmatch.TextMatch, opts ...query.MatchOption) (instance.Instance, error) {
	return s.Query(query.ByHintText(target, opts...))
}

func (s *Screen) QueryAllByHintText(target textmatch.TextMatch, opts ...query.MatchOption) []instance.Instance {
	return s.QueryAll(query.ByHintText(target, opts...))
}

func (s *Screen) FindByHintText(target textmatch.TextMatch, opts ...FindOption) (instance.Instance, error) {
	m, w := splitFindOptions(opts)
	return s.Find(query.ByHintText(target, m...), w...)
}

func (s *Screen) FindAllByHintText(target textmatch.TextMatch, opts ...FindOption) ([]instance.Instance, error) {
	m, w := splitFindOptions(opts)
	return s.FindAll(query.ByHintText(target, m...), w...)
}

// --- Test ID ---

func (s *Screen) GetByTestID(target textmatch.TextMatch, opts ...query.MatchOption) (instance.Instance, error) {
	return s.Get(query.ByTestID(target, opts...))
}

func (s *Screen) GetAllByTestID(target textmatch.TextMatch, opts ...query.MatchOption) ([]instance.Instance, error) {
	return s.GetAll(query.ByTestID(target, opts...))
}

func (s *Screen) QueryByTestID(target textmatch.TextMatch, opts ...query.MatchOption) (instance.Instance, error) {
	return s.Query(query.ByTestID(target, opts...))
}

func (s *Screen) QueryAllByTestID(target textmatch.TextMatch, opts ...query.MatchOption) []instance.Instance {
	return s.QueryAll(query.ByTestID(target, opts...))
}

func (s *Screen) FindByTestID(target textmatch.TextMatch, opts ...FindOption) (instance.Instance, error) {
	m, w := splitFindOptions(opts)
	return s.Find(query.ByTestID(target, m...), w...)
}

func (s *Screen) FindAllByTestID(target textmatch.TextMatch, opts ...FindOption) ([]instance.Instance, error) {
	m, w := splitFindOptions(opts)
	return s.FindAll(query.ByTestID(target, m...), w...)
}
