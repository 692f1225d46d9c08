package storetest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const quoted = `"(?:[^"\\]|\\.)*"`

var (
	aggregateRe  = regexp.MustCompile(`Aggregate\s*\{\s*([_A-Za-z][_0-9A-Za-z]*)\s*\{`)
	getRe        = regexp.MustCompile(`(?s)Get\s*\{\s*([_A-Za-z][_0-9A-Za-z]*)\s*(?:\((.*?)\))?\s*\{\n(.*?)_additional\s*\{([^}]*)\}`)
	limitRe      = regexp.MustCompile(`(?:^|[\s,(])limit:\s*(\d+)`)
	offsetRe     = regexp.MustCompile(`(?:^|[\s,(])offset:\s*(\d+)`)
	sortRe       = regexp.MustCompile(`sort:\s*\[\{path:\s*\[(` + quoted + `)\],\s*order:\s*(asc|desc)\}\]`)
	bm25Re       = regexp.MustCompile(`bm25:\s*\{query:\s*(` + quoted + `)(?:,\s*properties:\s*\[([^\]]*)\])?`)
	hybridRe     = regexp.MustCompile(`hybrid:\s*\{query:\s*(` + quoted + `)(?:,\s*properties:\s*\[([^\]]*)\])?`)
	nearTextRe   = regexp.MustCompile(`nearText:\s*\{concepts:\s*\[(` + quoted + `)`)
	nearVectorRe = regexp.MustCompile(`nearVector:\s*\{vector:\s*\[([^\]]*)\]`)
	quotedRe     = regexp.MustCompile(quoted)
)

type graphqlRequest struct {
	Query string `json:"query"`
}

type graphqlError struct {
	Message string `json:"message"`
}

// peekQuery reads the GraphQL document and restores the body.
func peekQuery(r *http.Request) string {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return ""
	}
	r.Body = io.NopCloser(bytes.NewReader(raw))
	var req graphqlRequest
	_ = json.Unmarshal(raw, &req)
	return req.Query
}

func (s *Server) graphql(w http.ResponseWriter, r *http.Request) {
	var req graphqlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusUnprocessableEntity, "query is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, req.Query)
	s.logger.Debug("graphql", zap.String("query", req.Query))

	if m := aggregateRe.FindStringSubmatch(req.Query); m != nil {
		s.aggregateLocked(w, m[1])
		return
	}
	if m := getRe.FindStringSubmatch(req.Query); m != nil {
		s.getLocked(w, m[1], m[2], m[3], m[4])
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"errors": []graphqlError{{Message: "unsupported query"}},
	})
}

func (s *Server) aggregateLocked(w http.ResponseWriter, class string) {
	if _, ok := s.classLocked(class); !ok {
		unknownClass(w, "Aggregate", class)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"Aggregate": map[string]any{
				class: []any{map[string]any{"meta": map[string]any{"count": len(s.objectsOfLocked(class))}}},
			},
		},
	})
}

func (s *Server) getLocked(w http.ResponseWriter, class, args, body, additional string) {
	ci, ok := s.classLocked(class)
	if !ok {
		unknownClass(w, "Get", class)
		return
	}
	known := make(map[string]bool, len(ci.Properties))
	for _, p := range ci.Properties {
		known[p.Name] = true
	}
	fields := fieldNames(body)
	for _, f := range fields {
		if !known[f] {
			writeJSON(w, http.StatusOK, map[string]any{
				"data":   map[string]any{"Get": map[string]any{class: nil}},
				"errors": []graphqlError{{Message: fmt.Sprintf("Cannot query field %q on type %q.", f, class)}},
			})
			return
		}
	}

	hits := s.matchLocked(class, args)
	if m := sortRe.FindStringSubmatch(args); m != nil {
		path, _ := strconv.Unquote(m[1])
		sortObjects(hits, path, m[2] == "desc")
	}
	if m := offsetRe.FindStringSubmatch(args); m != nil {
		n, _ := strconv.Atoi(m[1])
		hits = hits[min(n, len(hits)):]
	}
	if m := limitRe.FindStringSubmatch(args); m != nil {
		n, _ := strconv.Atoi(m[1])
		hits = hits[:min(n, len(hits))]
	}

	// Near searches rank by distance; like the real store, score stays empty.
	near := strings.Contains(args, "nearText") || strings.Contains(args, "nearVector")
	wantScore := strings.Contains(additional, "score") && !near
	wantDistance := strings.Contains(additional, "distance")
	rows := make([]map[string]any, 0, len(hits))
	for _, h := range hits {
		row := make(map[string]any, len(fields)+1)
		for _, f := range fields {
			row[f] = h.obj.properties[f]
		}
		side := map[string]any{"id": h.obj.id}
		if wantScore {
			side["score"] = strconv.FormatFloat(h.score, 'f', -1, 64)
		}
		if wantDistance {
			side["distance"] = 1 / (1 + h.score)
		}
		row["_additional"] = side
		rows = append(rows, row)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{"Get": map[string]any{class: rows}},
	})
}

type hit struct {
	obj   *storedObject
	score float64
}

// matchLocked applies the search directive in args, if any. Keyword search
// drops non-matching objects; hybrid and vector search rank everything.
func (s *Server) matchLocked(class, args string) []hit {
	objs := s.objectsOfLocked(class)

	var (
		text     string
		props    []string
		keepZero = true
		ranked   bool
	)
	switch {
	case bm25Re.MatchString(args):
		m := bm25Re.FindStringSubmatch(args)
		text, props, keepZero, ranked = unquote(m[1]), quotedList(m[2]), false, true
	case hybridRe.MatchString(args):
		m := hybridRe.FindStringSubmatch(args)
		text, props, ranked = unquote(m[1]), quotedList(m[2]), true
	case nearTextRe.MatchString(args):
		text, ranked = unquote(nearTextRe.FindStringSubmatch(args)[1]), true
	case nearVectorRe.MatchString(args):
		ranked = true
	}

	hits := make([]hit, 0, len(objs))
	for _, o := range objs {
		score := termScore(o.properties, props, text)
		if score == 0 && !keepZero {
			continue
		}
		hits = append(hits, hit{obj: o, score: score})
	}
	if ranked {
		sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })
	}
	return hits
}

// termScore counts case-insensitive occurrences of every query term in the
// string values of props (all properties when props is empty).
func termScore(values map[string]any, props []string, text string) float64 {
	terms := strings.Fields(strings.ToLower(text))
	if len(terms) == 0 {
		return 0
	}
	var score float64
	check := func(v any) {
		s, ok := v.(string)
		if !ok {
			return
		}
		s = strings.ToLower(s)
		for _, t := range terms {
			score += float64(strings.Count(s, t))
		}
	}
	visit := func(v any) {
		if list, ok := v.([]any); ok {
			for _, item := range list {
				check(item)
			}
			return
		}
		check(v)
	}
	if len(props) == 0 {
		for _, v := range values {
			visit(v)
		}
		return score
	}
	for _, p := range props {
		visit(values[p])
	}
	return score
}

func sortObjects(hits []hit, path string, desc bool) {
	sort.SliceStable(hits, func(i, j int) bool {
		a, aok := hits[i].obj.properties[path]
		b, bok := hits[j].obj.properties[path]
		if !aok || !bok {
			return aok && !bok
		}
		c := compare(a, b)
		if desc {
			return c > 0
		}
		return c < 0
	})
}

func compare(a, b any) int {
	fa, aok := a.(float64)
	fb, bok := b.(float64)
	if aok && bok {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// fieldNames reads the selection lines before _additional, skipping nested
// selections.
func fieldNames(body string) []string {
	var out []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, _, _ := strings.Cut(line, " ")
		out = append(out, name)
	}
	return out
}

func unknownClass(w http.ResponseWriter, kind, class string) {
	writeJSON(w, http.StatusOK, map[string]any{
		"data":   map[string]any{kind: nil},
		"errors": []graphqlError{{Message: fmt.Sprintf("Cannot query field %q on type \"%sObjectsObj\".", class, kind)}},
	})
}

func unquote(s string) string {
	out, err := strconv.Unquote(s)
	if err != nil {
		return s
	}
	return out
}

func quotedList(s string) []string {
	var out []string
	for _, q := range quotedRe.FindAllString(s, -1) {
		out = append(out, unquote(q))
	}
	return out
}
