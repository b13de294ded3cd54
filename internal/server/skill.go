package server

import (
	"net/http"

	"communityconnect/pkg/types"

	"github.com/alexedwards/flow"
)

type addSkillForm struct {
	SkillID     string `form:"skill_id"`
	Name        string `form:"name"`
	Description string `form:"description"`
}

func (s *Service) handleListSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := s.skills.Skills(r.Context())
	if err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"skills": skills})
}

func (s *Service) handleListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := s.roles.Roles(r.Context())
	if err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"roles": roles})
}

func (s *Service) handleMySkills(w http.ResponseWriter, r *http.Request) {
	identity, err := s.identityFromContext(r.Context())
	if err != nil {
		respondError(w, r, s.logger, types.ErrUnauthenticated)
		return
	}

	skills, err := s.skills.VolunteerSkills(r.Context(), identity)
	if err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"skills": skills})
}

// handleAddSkill accepts either an existing skill id or a free-text
// name for a skill to create on first use.
func (s *Service) handleAddSkill(w http.ResponseWriter, r *http.Request) {
	identity, err := s.identityFromContext(r.Context())
	if err != nil {
		respondError(w, r, s.logger, types.ErrUnauthenticated)
		return
	}

	var form addSkillForm
	if err := decodeForm(r, &form); err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	var skill *types.Skill
	if form.SkillID != "" {
		skill, err = s.skills.AddExistingSkill(r.Context(), identity, form.SkillID)
	} else {
		skill, err = s.skills.CreateSkillAndAttach(r.Context(), identity, form.Name, form.Description)
	}
	if err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	if wantsJSON(r) {
		respondJSON(w, http.StatusOK, skill)
		return
	}

	http.Redirect(w, r, "/me/skills", http.StatusSeeOther)
}

func (s *Service) handleRemoveSkill(w http.ResponseWriter, r *http.Request) {
	identity, err := s.identityFromContext(r.Context())
	if err != nil {
		respondError(w, r, s.logger, types.ErrUnauthenticated)
		return
	}

	if err := s.skills.RemoveSkill(r.Context(), identity, flow.Param(r.Context(), "id")); err != nil {
		respondError(w, r, s.logger, err)
		return
	}

	if wantsJSON(r) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "removed"})
		return
	}

	http.Redirect(w, r, "/me/skills", http.StatusSeeOther)
}
