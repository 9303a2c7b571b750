package handler

import "net/http"

// TagList is the body of GET /tags.
type TagList struct {
	Data []string `json:"data"`
}

// ListTags handles GET /tags.
// The optional ?prefix= query parameter filters tags by prefix.
func (s *Server) ListTags(w http.ResponseWriter, r *http.Request) {
	prefix, err := queryString(r, "prefix")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	tags, err := s.tags.List(r.Context(), derefString(prefix))
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, TagList{Data: tags})
}
