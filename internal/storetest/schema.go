package storetest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"unicode"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/vecdesk/internal/normalize"
)

func (s *Server) listClasses(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	classes := append([]normalize.ClassInfo{}, s.classes...)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, normalize.SchemaResponse{Classes: classes})
}

func (s *Server) createClass(w http.ResponseWriter, r *http.Request) {
	var ci normalize.ClassInfo
	if err := json.NewDecoder(r.Body).Decode(&ci); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	first, _ := utf8.DecodeRuneInString(ci.Class)
	if ci.Class == "" || !unicode.IsUpper(first) {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("'%s' is not a valid class name", ci.Class))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.classLocked(ci.Class); ok {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("class name %q already exists", ci.Class))
		return
	}
	s.classes = append(s.classes, ci)
	s.logger.Debug("class created", zap.String("class", ci.Class), zap.Int("properties", len(ci.Properties)))
	writeJSON(w, http.StatusOK, ci)
}

func (s *Server) getClass(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	ci, ok := s.classLocked(chi.URLParam(r, "class"))
	s.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, ci)
}

func (s *Server) deleteClass(w http.ResponseWriter, r *http.Request) {
	class := chi.URLParam(r, "class")

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.classes[:0]
	for _, ci := range s.classes {
		if ci.Class != class {
			kept = append(kept, ci)
		}
	}
	s.classes = kept
	for id, o := range s.objects {
		if o.class == class {
			delete(s.objects, id)
		}
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) classLocked(name string) (normalize.ClassInfo, bool) {
	for _, ci := range s.classes {
		if ci.Class == name {
			return ci, true
		}
	}
	return normalize.ClassInfo{}, false
}
