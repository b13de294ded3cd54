package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"communityconnect/internal/service"
	"communityconnect/internal/storage"
	"communityconnect/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/securecookie"
	"github.com/sirupsen/logrus"
)

var (
	decoder  = form.NewDecoder()
	validate = validator.New()
)

type Service struct {
	logger *logrus.Logger
	config *types.Config

	auth     *service.AuthService
	profiles *service.ProfileService
	events   *service.EventService
	signups  *service.SignupService
	skills   *service.SkillService
	roles    service.RoleStore

	media  storage.MediaStore
	cookie *securecookie.SecureCookie

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	auth *service.AuthService,
	profiles *service.ProfileService,
	events *service.EventService,
	signups *service.SignupService,
	skills *service.SkillService,
	roles service.RoleStore,
	media storage.MediaStore,
) (*Service, error) {
	mux := flow.New()

	hashKey, err := base64.StdEncoding.DecodeString(config.CookieHashKey)
	if err != nil {
		return nil, fmt.Errorf("decode cookie hash key: %w", err)
	}

	blockKey, err := base64.StdEncoding.DecodeString(config.CookieBlockKey)
	if err != nil {
		return nil, fmt.Errorf("decode cookie block key: %w", err)
	}

	s := &Service{
		logger: logger,
		config: config,
		cookie: securecookie.New(hashKey, blockKey),

		auth:     auth,
		profiles: profiles,
		events:   events,
		signups:  signups,
		skills:   skills,
		roles:    roles,
		media:    media,

		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)

	r.HandleFunc("/register/volunteer", s.handleRegisterVolunteer, http.MethodPost)
	r.HandleFunc("/register/organisation", s.handleRegisterOrganisation, http.MethodPost)
	r.HandleFunc("/login", s.handleLogin, http.MethodPost)
	r.HandleFunc("/logout", s.handleLogout, http.MethodPost)

	// Public reads
	r.HandleFunc("/events", s.handleListEvents, http.MethodGet)
	r.HandleFunc("/events/:id", s.handleEventDetail, http.MethodGet)
	r.HandleFunc("/events/:id/skills.json", s.handleEventSkillsJSON, http.MethodGet)
	r.HandleFunc("/events/:id/detail.json", s.handleEventDetailJSON, http.MethodGet)
	r.HandleFunc("/skills", s.handleListSkills, http.MethodGet)
	r.HandleFunc("/roles", s.handleListRoles, http.MethodGet)
	r.HandleFunc("/volunteers", s.handleListVolunteers, http.MethodGet)
	r.HandleFunc("/organisations", s.handleListOrganisations, http.MethodGet)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)

		r.HandleFunc("/me", s.handleGetProfile, http.MethodGet)
		r.HandleFunc("/me", s.handlePostProfile, http.MethodPost)
		r.HandleFunc("/me/password", s.handleChangePassword, http.MethodPost)
		r.HandleFunc("/me/photo", s.handleUploadMedia, http.MethodPost)

		// Organisation-only surface
		r.Group(func(r *flow.Mux) {
			r.Use(s.RequireAccountType(types.AccountTypeOrganisation))

			r.HandleFunc("/events", s.handleCreateEvent, http.MethodPost)
			r.HandleFunc("/events/:id", s.handleUpdateEvent, http.MethodPost)
			r.HandleFunc("/events/:id/delete", s.handleDeleteEvent, http.MethodPost)
			r.HandleFunc("/events/:id/signups", s.handleEventSignups, http.MethodGet)
			r.HandleFunc("/me/events", s.handleMyEvents, http.MethodGet)
			r.HandleFunc("/signups/:id/status", s.handleSignupStatus, http.MethodPost)
		})

		// Volunteer-only surface
		r.Group(func(r *flow.Mux) {
			r.Use(s.RequireAccountType(types.AccountTypeVolunteer))

			r.HandleFunc("/events/:id/signup", s.handleSignup, http.MethodPost)
			r.HandleFunc("/signups/:id/retract", s.handleRetractSignup, http.MethodPost)
			r.HandleFunc("/me/signups", s.handleMySignups, http.MethodGet)
			r.HandleFunc("/me/skills", s.handleMySkills, http.MethodGet)
			r.HandleFunc("/me/skills", s.handleAddSkill, http.MethodPost)
			r.HandleFunc("/me/skills/:id/remove", s.handleRemoveSkill, http.MethodPost)
		})
	})
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
