// Package scan implements the word-hit accumulation, chaining, and
// longest-path scoring described in spec.md §4.4 — the hardest
// subsystem in the pipeline. For one query sequence against one
// loaded lookup-table shard, it produces a Report per accepted
// (query, target) pair.
package scan

import (
	"sort"

	"github.com/solgenomics/unigene"
	"github.com/solgenomics/unigene/lookup"
)

// diagonalSlack widens a hit's diagonal bounds before reporting, per
// spec.md §3 ("Hit report").
const diagonalSlack = 5

// hit is the transient word-hit/chained-run record of spec.md §3:
// (target, diagonal, query-position, run-length).
type hit struct {
	target   int
	diagonal int
	pos      int // query start of the word/run, i-w convention (spec.md §9)
	length   int
}

// Report is one accepted (query, target) overlap, matching spec.md
// §3's "Hit report" and the text fields printed by spec.md §6.
type Report struct {
	Query, Target           int
	Score                   int
	PreDiscountScore        int
	QueryLen, TargetLen     int
	QueryStart, QueryEnd    int
	TargetStart, TargetEnd  int
	MinDiagonal, MaxDiagonal int
	RC                      bool
}

// Discount is the trailing/leading-overhang discount from spec.md §6:
// discount = min(q_start,t_start) + min(qlen-q_end-1, tlen-t_end-1).
func (r Report) Discount() int {
	left := r.QueryStart
	if r.TargetStart < left {
		left = r.TargetStart
	}
	rightQ := r.QueryLen - r.QueryEnd - 1
	rightT := r.TargetLen - r.TargetEnd - 1
	right := rightQ
	if rightT < right {
		right = rightT
	}
	return left + right
}

// Scanner scans one query sequence against one loaded shard.
type Scanner struct {
	Shard       *lookup.Shard
	WordSize    int
	ScoreThresh int
}

// New creates a Scanner bound to shard.
func New(shard *lookup.Shard, wordSize, scoreThresh int) *Scanner {
	return &Scanner{Shard: shard, WordSize: wordSize, ScoreThresh: scoreThresh}
}

// Scan runs spec.md §4.4 steps 1-5 against the query's forward strand,
// then again (step 6) against its reverse complement, returning every
// accepted report.
func (s *Scanner) Scan(query *unigene.Sequence, targetLens map[int]int) []Report {
	var reports []Report
	reports = append(reports, s.scanStrand(query, targetLens, false)...)

	rc := &unigene.Sequence{ID: query.ID, Name: query.Name, Bases: append([]byte(nil), query.Bases...)}
	unigene.ReverseComplement(rc.Bases)
	reports = append(reports, s.scanStrand(rc, targetLens, true)...)

	return reports
}

func (s *Scanner) scanStrand(query *unigene.Sequence, targetLens map[int]int, rc bool) []Report {
	if query.Len() < s.WordSize {
		return nil
	}

	// Step 1: word-hit accumulation with pre-censor.
	counts := make(map[int]int)
	type rawHit struct {
		target, diagonal, pos int
	}
	var raw []rawHit

	unigene.WordsOf(query.Bases, s.WordSize, func(pos int, code uint32) {
		for _, p := range s.Shard.Postings(code) {
			target := int(p.SeqID)
			if target <= query.ID {
				continue // symmetry: only targets with a larger id than the query, never self
			}
			raw = append(raw, rawHit{target: target, diagonal: int(p.SeqPos) - pos, pos: pos})
			counts[target]++
		}
	})

	threshold := s.ScoreThresh
	survives := make(map[int]bool, len(counts))
	for target, n := range counts {
		if n*2 >= threshold {
			survives[target] = true
		}
	}
	if len(survives) == 0 {
		return nil
	}

	// Step 2: hit emission + stable sort by (target, diagonal, pos).
	hits := make([]hit, 0, len(raw))
	for _, h := range raw {
		if !survives[h.target] {
			continue
		}
		hits = append(hits, hit{target: h.target, diagonal: h.diagonal, pos: h.pos, length: s.WordSize})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		a, b := hits[i], hits[j]
		if a.target != b.target {
			return a.target < b.target
		}
		if a.diagonal != b.diagonal {
			return a.diagonal < b.diagonal
		}
		return a.pos < b.pos
	})

	// Step 3: chaining — collapse maximal collinear runs.
	chained := chain(hits, s.WordSize)

	// Group chained hits by target, then run step 4/5 per target.
	var reports []Report
	start := 0
	for start < len(chained) {
		target := chained[start].target
		end := start
		for end < len(chained) && chained[end].target == target {
			end++
		}
		group := append([]hit(nil), chained[start:end]...)
		sort.SliceStable(group, func(i, j int) bool { return group[i].pos < group[j].pos })

		if rep, ok := longestPath(query.ID, target, group, s.WordSize, s.ScoreThresh); ok {
			rep.RC = rc
			rep.QueryLen = query.Len()
			if tl, ok := targetLens[target]; ok {
				rep.TargetLen = tl
			}
			rep.PreDiscountScore = rep.Score
			reports = append(reports, rep)
		}
		start = end
	}
	return reports
}

// chain collapses maximal collinear runs, per spec.md §4.4 step 3.
// hits must already be sorted by (target, diagonal, pos).
func chain(hits []hit, w int) []hit {
	var out []hit
	i := 0
	for i < len(hits) {
		j := i
		for j+1 < len(hits) &&
			hits[j+1].target == hits[i].target &&
			hits[j+1].diagonal == hits[i].diagonal &&
			hits[j+1].pos == hits[j].pos+1 {
			j++
		}
		out = append(out, hit{
			target:   hits[i].target,
			diagonal: hits[i].diagonal,
			pos:      hits[i].pos,
			length:   (hits[j].pos - hits[i].pos) + w,
		})
		i = j + 1
	}
	return out
}

// edgeCost is the DAG edge cost from spec.md §4.4 step 4: a gap +
// overlap penalty between two hits known to satisfy
// u.pos < v.pos.
func edgeCost(u, v hit) int {
	diagGap := u.diagonal - v.diagonal
	if diagGap < 0 {
		diagGap = -diagGap
	}
	overlap := (u.pos + u.length) - v.pos
	if overlap < 0 {
		overlap = -overlap
	}
	return diagGap + overlap + 1
}

// longestPath builds the per-target DAG (source, hits..., sink) and
// computes the maximum-score path, per spec.md §4.4 steps 4-5. hits
// must be sorted by query position.
func longestPath(queryID, target int, hits []hit, w, threshold int) (Report, bool) {
	n := len(hits)
	// node 0 = source, 1..n = hits, n+1 = sink.
	const negInf = -1 << 30
	score := make([]int, n+2)
	pred := make([]int, n+2)
	for i := range score {
		score[i] = negInf
		pred[i] = -1
	}
	score[0] = 0

	reward := func(node int) int {
		if node == 0 || node == n+1 {
			return 0
		}
		return hits[node-1].length
	}
	edge := func(u, v int) (int, bool) {
		if u == 0 {
			return 1, true // source -> hit
		}
		if v == n+1 {
			return 1, true // hit -> sink
		}
		if hits[u-1].pos < hits[v-1].pos {
			return edgeCost(hits[u-1], hits[v-1]), true
		}
		return 0, false
	}

	for v := 1; v <= n+1; v++ {
		for u := 0; u < v; u++ {
			if score[u] == negInf {
				continue
			}
			cost, ok := edge(u, v)
			if !ok {
				continue
			}
			s := score[u] - cost + reward(v)
			if s > score[v] {
				score[v] = s
				pred[v] = u
			}
		}
	}

	best, bestScore := 0, negInf
	for v := range score {
		if score[v] > bestScore {
			bestScore = score[v]
			best = v
		}
	}
	if bestScore < threshold {
		return Report{}, false
	}

	// Trace back from best to source, collecting the hit chain.
	var path []int
	for v := best; v > 0 && v <= n; v = pred[v] {
		path = append([]int{v}, path...)
	}
	if len(path) == 0 {
		return Report{}, false
	}

	first, last := hits[path[0]-1], hits[path[len(path)-1]-1]
	minDi, maxDi := first.diagonal, first.diagonal
	for _, idx := range path {
		d := hits[idx-1].diagonal
		if d < minDi {
			minDi = d
		}
		if d > maxDi {
			maxDi = d
		}
	}

	qStart := first.pos
	qEnd := last.pos + last.length
	tStart := qStart + first.diagonal
	tEnd := qEnd + last.diagonal

	return Report{
		Query:       queryID,
		Target:      target,
		Score:       bestScore,
		QueryStart:  qStart,
		QueryEnd:    qEnd,
		TargetStart: tStart,
		TargetEnd:   tEnd,
		MinDiagonal: minDi - diagonalSlack,
		MaxDiagonal: maxDi + diagonalSlack,
	}, true
}
