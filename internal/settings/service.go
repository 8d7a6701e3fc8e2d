// Package settings persists the project, team and theme preferences and
// announces every save through the notification center.
package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/hashboard/internal/notify"
	"github.com/abhisek/hashboard/internal/store"
)

// Preference keys.
const (
	KeyProject = "project_settings"
	KeyEmail   = "user_email"
	KeyTheme   = "theme_preference"
)

// Service loads and saves settings.
type Service struct {
	repo     store.PreferenceRepo
	notifier notify.Emitter
	logger   *zap.Logger
}

// NewService creates a settings service. notifier and logger may be nil.
func NewService(repo store.PreferenceRepo, notifier notify.Emitter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, notifier: notifier, logger: logger}
}

// Load returns the saved settings, falling back to Defaults for anything
// never saved.
func (s *Service) Load(ctx context.Context) (Settings, error) {
	out := Defaults()

	doc, ok, err := s.loadDocument(ctx)
	if err != nil {
		return Settings{}, err
	}
	if ok {
		out.Project = doc.project()
		out.Configured = true
		out.Team.Members = NormalizeMembers(doc.TeamMembers)
	}

	email, ok, err := s.repo.Get(ctx, KeyEmail)
	if err != nil {
		return Settings{}, err
	}
	if ok {
		out.Team.UserEmail = email
	}

	theme, ok, err := s.repo.Get(ctx, KeyTheme)
	if err != nil {
		return Settings{}, err
	}
	if ok {
		if t, err := ParseTheme(theme); err == nil {
			out.Theme = t
		} else {
			s.logger.Warn("ignoring stored theme", zap.String("theme", theme))
		}
	}
	return out, nil
}

func (s *Service) loadDocument(ctx context.Context) (document, bool, error) {
	raw, ok, err := s.repo.Get(ctx, KeyProject)
	if err != nil || !ok {
		return document{}, false, err
	}
	var doc document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		s.logger.Warn("ignoring unreadable project settings", zap.Error(err))
		return document{}, false, nil
	}
	return doc, true, nil
}

// SaveProject stores the project configuration, keeping saved team members.
func (s *Service) SaveProject(ctx context.Context, p Project) error {
	p.Name = strings.TrimSpace(p.Name)

	doc, _, err := s.loadDocument(ctx)
	if err != nil {
		return err
	}
	if err := s.writeDocument(ctx, documentFrom(p, NormalizeMembers(doc.TeamMembers))); err != nil {
		return err
	}
	s.logger.Info("project settings saved", zap.String("project", p.Name))
	s.emit("Project settings saved successfully!")
	return nil
}

// SaveTeam stores the team members and the user's own email.
func (s *Service) SaveTeam(ctx context.Context, t Team) error {
	if err := ValidateEmail(t.UserEmail); err != nil {
		return err
	}
	members := NormalizeMembers(t.Members)

	doc, ok, err := s.loadDocument(ctx)
	if err != nil {
		return err
	}
	p := Defaults().Project
	if ok {
		p = doc.project()
	}
	if err := s.writeDocument(ctx, documentFrom(p, members)); err != nil {
		return err
	}

	if email := strings.TrimSpace(t.UserEmail); email != "" {
		if err := s.repo.Put(ctx, KeyEmail, email); err != nil {
			return err
		}
	}

	s.logger.Info("team settings saved", zap.Int("members", len(members)))
	s.emit("Team settings saved successfully!")
	return nil
}

// AddMember validates and appends one team member to the saved list.
func (s *Service) AddMember(ctx context.Context, email string) ([]string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: member email is empty", ErrInvalidSettings)
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	return s.updateMembers(ctx, func(m []string) []string { return AddMember(m, email) })
}

// RemoveMember drops one team member from the saved list.
func (s *Service) RemoveMember(ctx context.Context, email string) ([]string, error) {
	return s.updateMembers(ctx, func(m []string) []string { return RemoveMember(m, strings.TrimSpace(email)) })
}

func (s *Service) updateMembers(ctx context.Context, fn func([]string) []string) ([]string, error) {
	doc, ok, err := s.loadDocument(ctx)
	if err != nil {
		return nil, err
	}
	p := Defaults().Project
	if ok {
		p = doc.project()
	}
	members := NormalizeMembers(fn(NormalizeMembers(doc.TeamMembers)))
	if err := s.writeDocument(ctx, documentFrom(p, members)); err != nil {
		return nil, err
	}
	return members, nil
}

// SaveTheme stores the theme preference.
func (s *Service) SaveTheme(ctx context.Context, t Theme) error {
	if _, err := ParseTheme(string(t)); err != nil {
		return err
	}
	if err := s.repo.Put(ctx, KeyTheme, string(t)); err != nil {
		return err
	}
	s.logger.Info("theme saved", zap.String("theme", string(t)))
	s.emit(fmt.Sprintf("%s theme applied successfully!", t.Label()))
	return nil
}

// Reset removes every saved preference.
func (s *Service) Reset(ctx context.Context) error {
	for _, key := range []string{KeyProject, KeyEmail, KeyTheme} {
		if err := s.repo.Delete(ctx, key); err != nil {
			return err
		}
	}
	s.logger.Info("settings reset")
	return nil
}

func (s *Service) writeDocument(ctx context.Context, doc document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal project settings: %w", err)
	}
	if err := validateDocument(raw); err != nil {
		return err
	}
	return s.repo.Put(ctx, KeyProject, string(raw))
}

func (s *Service) emit(message string) {
	if s.notifier != nil {
		s.notifier.Emit(notify.KindSuccess, "", message)
	}
}
