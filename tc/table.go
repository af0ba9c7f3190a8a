package tc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shortlex/fpsemi/presentation"
	"github.com/shortlex/fpsemi/word"
)

// taskKind distinguishes the two kinds of work items tc's queue holds.
type taskKind int

const (
	taskExpand taskKind = iota
	taskScan
)

type tcTask struct {
	kind   taskKind
	coset  int
	relIdx int
}

// Table is a Todd-Coxeter coset table under construction. Coset 0 always
// denotes the class of the empty word; every other class is reached from it
// by generator application. The zero value is not usable; construct with
// NewFromPresentation or NewFromCayleyTable.
type Table struct {
	pres      *presentation.Presentation
	numGens   int
	relations []presentation.Relation

	table  [][]int
	parent []int

	activeCount       int
	maxCosets         int
	report            bool
	lastLookaheadSize int

	queue []tcTask

	started      bool
	done         bool
	standardized bool
}

// lookaheadRatio is the defined/live coset ratio that triggers a periodic
// full lookahead pass, per the tie-break "lookahead is triggered when the
// ratio (defined cosets / live cosets) exceeds a threshold (default 3)".
const lookaheadRatio = 3

// NewFromPresentation returns a Table that will enumerate the classes of p.
func NewFromPresentation(p *presentation.Presentation, opts ...Option) *Table {
	t := &Table{pres: p.Clone()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewFromCayleyTable builds an already-finished Table directly from a
// complete generator-transition table, as produced by fp.FroidurePin's
// enumeration. table[c][g] must be the class reached from class c by
// generator g, for every c and g; this is fp's "use_cayley_graph" handoff,
// for callers that hold a finished Froidure-Pin enumeration and want a
// Table without a Todd-Coxeter run (the fpsemi façade does not use it).
func NewFromCayleyTable(table [][]int) *Table {
	numGens := 0
	if len(table) > 0 {
		numGens = len(table[0])
	}
	t := &Table{
		numGens:     numGens,
		table:       table,
		parent:      make([]int, len(table)),
		activeCount: len(table),
		started:     true,
		done:        true,
	}
	for i := range t.parent {
		t.parent[i] = i
	}
	return t
}

// NrGenerators returns the size of the presentation's alphabet.
func (t *Table) NrGenerators() int { return t.numGens }

// Finished reports whether enumeration has reached a stable coset table.
func (t *Table) Finished() bool { return t.done }

// Started reports whether Step has been called at least once.
func (t *Table) Started() bool { return t.started }

// defineCoset allocates a new coset, initializes its union-find entry, and
// enqueues its expansion and relation-scan work. Returns ErrResourceExhausted
// if that would exceed WithMaxCosets.
func (t *Table) defineCoset() (int, error) {
	if t.maxCosets > 0 && len(t.table) >= t.maxCosets {
		return -1, fmt.Errorf("defineCoset: %w", ErrResourceExhausted)
	}
	id := len(t.table)
	row := make([]int, t.numGens)
	for g := range row {
		row[g] = -1
	}
	t.table = append(t.table, row)
	t.parent = append(t.parent, id)
	t.activeCount++

	t.queue = append(t.queue, tcTask{kind: taskExpand, coset: id})
	for r := range t.relations {
		t.queue = append(t.queue, tcTask{kind: taskScan, coset: id, relIdx: r})
	}
	if t.report {
		fmt.Printf("tc: coset %d defined (%d live)\n", id, t.activeCount)
	}
	return id, nil
}

// start seeds the table with coset 0 (the identity/empty-word class).
func (t *Table) start() error {
	t.started = true
	t.pres.Freeze()
	t.numGens = t.pres.AlphabetSize()
	t.relations = t.pres.Relations()
	_, err := t.defineCoset()
	return err
}

// trace follows w from coset start, lazily defining any missing generator
// transition it needs, and returns the (live) class it lands on.
func (t *Table) trace(start int, w word.Word) (int, error) {
	cur := t.find(start)
	for _, l := range w {
		g := int(l)
		next := t.table[cur][g]
		if next == -1 {
			id, err := t.defineCoset()
			if err != nil {
				return -1, err
			}
			t.table[cur][g] = id
			next = id
		}
		cur = t.find(next)
	}
	return cur, nil
}

// coincide merges a and b's classes, propagating the merge across every
// generator transition that pointed at the class that lost the merge, and
// recursively resolving any further coincidence that propagation reveals.
func (t *Table) coincide(a, b int) {
	type pair struct{ a, b int }
	queue := []pair{{a, b}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		winner, loser := t.union(p.a, p.b)
		if winner == -1 {
			continue
		}
		t.activeCount--
		if t.report {
			fmt.Printf("tc: coincidence %d = %d (%d live)\n", winner, loser, t.activeCount)
		}
		for g := 0; g < t.numGens; g++ {
			lg := t.table[loser][g]
			wg := t.table[winner][g]
			if lg == -1 {
				continue
			}
			if wg == -1 {
				t.table[winner][g] = lg
				continue
			}
			flg, fwg := t.find(lg), t.find(wg)
			if flg != fwg {
				queue = append(queue, pair{flg, fwg})
			}
		}
	}
}

func (t *Table) handleExpand(rawCoset int) error {
	c := t.find(rawCoset)
	for g := 0; g < t.numGens; g++ {
		if t.table[c][g] != -1 {
			continue
		}
		id, err := t.defineCoset()
		if err != nil {
			return err
		}
		c = t.find(c) // defineCoset cannot merge c, but stay defensive
		t.table[c][g] = id
	}
	return nil
}

func (t *Table) handleScan(rawCoset, relIdx int) error {
	c := t.find(rawCoset)
	rel := t.relations[relIdx]
	endU, err := t.trace(c, rel.U)
	if err != nil {
		return err
	}
	endV, err := t.trace(c, rel.V)
	if err != nil {
		return err
	}
	if t.find(endU) != t.find(endV) {
		t.coincide(endU, endV)
	}
	return nil
}

// maybeLookahead re-scans every relation from every live coset once the
// ratio of defined to live cosets has grown past lookaheadRatio, catching
// coincidences a long run of expansions between scans can leave undetected.
// It enqueues a batch of scan tasks rather than checking relations inline,
// so the lookahead work stays interruptible through the normal queue.
func (t *Table) maybeLookahead() {
	if t.activeCount == 0 || len(t.relations) == 0 {
		return
	}
	if len(t.table) == t.lastLookaheadSize {
		return
	}
	if float64(len(t.table))/float64(t.activeCount) <= lookaheadRatio {
		return
	}
	t.lastLookaheadSize = len(t.table)
	for c := 0; c < len(t.table); c++ {
		if t.find(c) != c {
			continue
		}
		for r := range t.relations {
			t.queue = append(t.queue, tcTask{kind: taskScan, coset: c, relIdx: r})
		}
	}
	if t.report {
		fmt.Printf("tc: lookahead queued at %d defined / %d live\n", len(t.table), t.activeCount)
	}
}

// Step performs one unit of enumeration work. On the first call it seeds
// coset 0; thereafter it pops one pending expansion or relation scan and
// processes it. It returns Finished once the work queue empties.
func (t *Table) Step(ctx context.Context) (Status, error) {
	if t.done {
		return Finished, nil
	}
	if err := ctx.Err(); err != nil {
		return Interrupted, fmt.Errorf("Step: %w: %w", ErrInterrupted, err)
	}
	if !t.started {
		if err := t.start(); err != nil {
			return Progressed, err
		}
		return Progressed, nil
	}
	if len(t.queue) == 0 {
		t.maybeLookahead()
		if len(t.queue) == 0 {
			t.done = true
			return Finished, nil
		}
	}

	task := t.queue[0]
	t.queue = t.queue[1:]
	var err error
	switch task.kind {
	case taskExpand:
		err = t.handleExpand(task.coset)
	case taskScan:
		err = t.handleScan(task.coset, task.relIdx)
	}
	if err != nil {
		return Progressed, err
	}
	t.maybeLookahead()
	return Progressed, nil
}

// Run steps until enumeration finishes or ctx is done.
func (t *Table) Run(ctx context.Context) error {
	for {
		status, err := t.Step(ctx)
		if err != nil {
			return err
		}
		if status != Progressed {
			return nil
		}
	}
}

// RunFor steps for at most d before returning, regardless of whether
// enumeration has finished. A deadline expiring is not itself an error;
// check Finished() afterward.
func (t *Table) RunFor(ctx context.Context, d time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()
	err := t.Run(ctx)
	if err != nil && (errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)) {
		return nil
	}
	return err
}

// NrClasses returns the number of live classes once enumeration has
// finished. Returns ErrUnfinished otherwise.
func (t *Table) NrClasses() (int, error) {
	if !t.done {
		return 0, ErrUnfinished
	}
	return t.activeCount, nil
}

// Lookup returns the canonical class id for a (possibly stale) coset id.
func (t *Table) Lookup(id int) int { return t.find(id) }

// WordToClass returns the class reached from the identity class by applying
// w's letters in order. Requires Finished().
func (t *Table) WordToClass(w word.Word) (int, error) {
	return t.Apply(0, w)
}

// Apply returns the class reached by applying w's letters in order
// starting from class c, rather than from the identity class — the
// generalisation WordToClass is built on, and what lets a coset class
// stand in for a semigroup element with its own multiplication (fpsemi
// uses this to wrap a finished Table as a fp.Element source). Requires
// Finished().
func (t *Table) Apply(c int, w word.Word) (int, error) {
	if !t.done {
		return 0, ErrUnfinished
	}
	cur := t.find(c)
	for _, l := range w {
		cur = t.find(t.table[cur][int(l)])
	}
	return cur, nil
}

// ClassToWord returns a shortest word, breaking length ties by generator
// index, that reaches class c from the identity class. Requires Finished().
func (t *Table) ClassToWord(c int) (word.Word, error) {
	if !t.done {
		return nil, ErrUnfinished
	}
	if c < 0 || c >= len(t.table) {
		return nil, fmt.Errorf("ClassToWord(%d): %w", c, ErrClassNotFound)
	}
	target := t.find(c)
	start := t.find(0)
	if start == target {
		return word.Word{}, nil
	}

	type parentInfo struct {
		prev, gen int
	}
	visited := map[int]bool{start: true}
	parent := map[int]parentInfo{}
	queue := []int{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == target {
			break
		}
		for g := 0; g < t.numGens; g++ {
			next := t.find(t.table[cur][g])
			if visited[next] {
				continue
			}
			visited[next] = true
			parent[next] = parentInfo{prev: cur, gen: g}
			queue = append(queue, next)
		}
	}

	if !visited[target] {
		return nil, fmt.Errorf("ClassToWord(%d): %w: unreachable from identity", c, ErrClassNotFound)
	}
	var letters []word.Letter
	for cur := target; cur != start; {
		info := parent[cur]
		letters = append(letters, word.Letter(info.gen))
		cur = info.prev
	}
	for i, j := 0, len(letters)-1; i < j; i, j = i+1, j-1 {
		letters[i], letters[j] = letters[j], letters[i]
	}
	return word.Word(letters), nil
}

// standardOrder returns the live class ids in breadth-first discovery order
// from the identity class, following generator transitions lowest-index
// first at each class. Requires Finished().
func (t *Table) standardOrder() []int {
	start := t.find(0)
	visited := map[int]bool{start: true}
	order := []int{start}
	queue := []int{start}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for g := 0; g < t.numGens; g++ {
			next := t.find(t.table[c][g])
			if visited[next] {
				continue
			}
			visited[next] = true
			order = append(order, next)
			queue = append(queue, next)
		}
	}
	return order
}

// Standardize renumbers live classes in breadth-first discovery order from
// the identity class (class 0 stays 0). This mirrors the standard
// Todd-Coxeter "standardization" pass: the resulting class numbering no
// longer depends on the order coincidences happened to be discovered in.
func (t *Table) Standardize() error {
	if !t.done {
		return ErrUnfinished
	}
	if t.standardized {
		return nil
	}

	order := t.standardOrder()
	oldToNew := make(map[int]int, len(order))
	for i, c := range order {
		oldToNew[c] = i
	}

	newTable := make([][]int, len(order))
	for idx, c := range order {
		row := make([]int, t.numGens)
		for g := 0; g < t.numGens; g++ {
			row[g] = oldToNew[t.find(t.table[c][g])]
		}
		newTable[idx] = row
	}

	t.table = newTable
	t.parent = make([]int, len(newTable))
	for i := range t.parent {
		t.parent[i] = i
	}
	t.activeCount = len(newTable)
	t.standardized = true
	return nil
}
