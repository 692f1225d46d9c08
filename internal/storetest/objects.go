package storetest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type objectBody struct {
	Class      string         `json:"class"`
	Properties map[string]any `json:"properties"`
}

type objectEnvelope struct {
	ID               string         `json:"id"`
	Class            string         `json:"class"`
	Properties       map[string]any `json:"properties"`
	CreationTimeUnix int64          `json:"creationTimeUnix"`
}

func (s *Server) createObject(w http.ResponseWriter, r *http.Request) {
	var body objectBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.classLocked(body.Class); !ok {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("class %q not found in schema", body.Class))
		return
	}
	id := s.insertLocked(body.Class, body.Properties)
	writeJSON(w, http.StatusOK, envelope(s.objects[id]))
}

func (s *Server) getObject(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.objectLocked(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, envelope(o))
}

func (s *Server) patchObject(w http.ResponseWriter, r *http.Request) {
	var body objectBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.objectLocked(w, r)
	if !ok {
		return
	}
	if body.Class != "" && body.Class != o.class {
		writeError(w, http.StatusUnprocessableEntity, "class mismatch")
		return
	}
	for k, v := range body.Properties {
		o.properties[k] = v
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteObject(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.objectLocked(w, r)
	if !ok {
		return
	}
	delete(s.objects, o.id)
	w.WriteHeader(http.StatusNoContent)
}

// objectLocked resolves {id}, answering 400/404 itself when it cannot.
func (s *Server) objectLocked(w http.ResponseWriter, r *http.Request) (*storedObject, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("id %q is not a valid uuid", id))
		return nil, false
	}
	o, ok := s.objects[id]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return nil, false
	}
	return o, true
}

func (s *Server) insertLocked(class string, props map[string]any) string {
	s.sequence++
	cp := make(map[string]any, len(props))
	for k, v := range props {
		cp[k] = v
	}
	id := uuid.NewString()
	s.objects[id] = &storedObject{id: id, class: class, properties: cp, created: s.sequence}
	return id
}

// objectsOfLocked returns the objects of class in insertion order.
func (s *Server) objectsOfLocked(class string) []*storedObject {
	var out []*storedObject
	for _, o := range s.objects {
		if o.class == class {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].created < out[j].created })
	return out
}

func envelope(o *storedObject) objectEnvelope {
	return objectEnvelope{
		ID:               o.id,
		Class:            o.class,
		Properties:       o.properties,
		CreationTimeUnix: o.created,
	}
}
