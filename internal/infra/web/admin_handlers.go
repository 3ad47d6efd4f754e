package web

import (
	"encoding/json"
	"net/http"

	"universidad-sunshine/internal/domain/ports/adapter"
	"universidad-sunshine/internal/usecase"

	"github.com/go-chi/chi/v5"
)

// actorEmail reads the authenticated account from the request context; the
// auth middleware guarantees it is present on admin routes.
func actorEmail(r *http.Request) string {
	if claims, ok := r.Context().Value(claimsKey).(*adapter.TokenClaims); ok {
		return claims.Email
	}
	return ""
}

// ----- Categories -----

func (s *Server) handleCategoriesAll(w http.ResponseWriter, r *http.Request) {
	cats, err := s.categoryUC.ListAll(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, "categories", cats)
}

func (s *Server) handleCategoryCreate(w http.ResponseWriter, r *http.Request) {
	var in usecase.CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	cat, err := s.categoryUC.Create(r.Context(), in, actorEmail(r))
	if err != nil {
		respondErr(w, err)
		return
	}
	respondCreated(w, "category created", cat)
}

func (s *Server) handleCategoryUpdate(w http.ResponseWriter, r *http.Request) {
	var in usecase.CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	cat, err := s.categoryUC.Update(r.Context(), chi.URLParam(r, "id"), in, actorEmail(r))
	if err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, "category updated", cat)
}

func (s *Server) handleCategoryDelete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("categoryId")
	if id == "" {
		respondBadRequest(w, "categoryId query parameter is required")
		return
	}
	if err := s.categoryUC.Delete(r.Context(), id); err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, "category deleted", nil)
}

// ----- Sections -----

func (s *Server) handleSectionsByCategory(w http.ResponseWriter, r *http.Request) {
	secs, err := s.sectionUC.ListByCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, "sections", secs)
}

func (s *Server) handleSectionCreate(w http.ResponseWriter, r *http.Request) {
	var in usecase.SectionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	sec, err := s.sectionUC.Create(r.Context(), in, actorEmail(r))
	if err != nil {
		respondErr(w, err)
		return
	}
	respondCreated(w, "section created", sec)
}

func (s *Server) handleSectionUpdate(w http.ResponseWriter, r *http.Request) {
	var in usecase.SectionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	sec, err := s.sectionUC.Update(r.Context(), chi.URLParam(r, "id"), in, actorEmail(r))
	if err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, "section updated", sec)
}

func (s *Server) handleSectionDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.sectionUC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, "section deleted", nil)
}

// ----- Content -----

func (s *Server) handleContentAll(w http.ResponseWriter, r *http.Request) {
	items, err := s.contentUC.ListAll(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, "content", items)
}

func (s *Server) handleContentGet(w http.ResponseWriter, r *http.Request) {
	item, err := s.contentUC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, "content item", item)
}

func (s *Server) handleContentCreate(w http.ResponseWriter, r *http.Request) {
	var in usecase.ContentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	item, err := s.contentUC.Create(r.Context(), in, actorEmail(r))
	if err != nil {
		respondErr(w, err)
		return
	}
	respondCreated(w, "content created", item)
}

func (s *Server) handleContentUpdate(w http.ResponseWriter, r *http.Request) {
	var in usecase.ContentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	item, err := s.contentUC.Update(r.Context(), chi.URLParam(r, "id"), in, actorEmail(r))
	if err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, "content updated", item)
}

func (s *Server) handleContentDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.contentUC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, "content deleted", nil)
}

// ----- Users -----

func (s *Server) handleUsersAll(w http.ResponseWriter, r *http.Request) {
	users, err := s.userUC.ListAll(r.Context())
	if err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, "users", users)
}

func (s *Server) handleUserCreate(w http.ResponseWriter, r *http.Request) {
	var in usecase.UserInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	u, err := s.userUC.Create(r.Context(), in)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondCreated(w, "user created", u)
}

func (s *Server) handleUserUpdate(w http.ResponseWriter, r *http.Request) {
	var in usecase.UserInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	u, err := s.userUC.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, "user updated", u)
}

func (s *Server) handleUserDelete(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if err := s.userUC.DeleteByEmail(r.Context(), email); err != nil {
		respondErr(w, err)
		return
	}
	respondOK(w, "user deleted", nil)
}
