package service

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/chetan-code/missioncontrol/internal/models"
)

const MinPasswordLen = 8

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{3,32}$`)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{models.ErrInvalidInput}, args...)...)
}

// normalizeEmail trims and lower-cases, then checks it is a bare address.
func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", invalid("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		return "", invalid("email %q is malformed", raw)
	}
	return email, nil
}

func normalizeUsername(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", invalid("username is required")
	}
	if !usernamePattern.MatchString(name) {
		return "", invalid("username must be 3-32 letters, digits, '_', '.' or '-'")
	}
	return name, nil
}

func validatePassword(pw string) error {
	if len([]rune(pw)) < MinPasswordLen {
		return invalid("password must be at least %d characters", MinPasswordLen)
	}
	return nil
}

// requireText trims s and rejects it when empty.
func requireText(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", invalid("%s is required", field)
	}
	return s, nil
}

// validateTaxonomy accepts nil or a reference with all three levels.
func validateTaxonomy(ref *models.TaxonomyRef) (*models.TaxonomyRef, error) {
	if ref == nil {
		return nil, nil
	}
	trimmed := models.TaxonomyRef{
		CategoryID: strings.TrimSpace(ref.CategoryID),
		TypeID:     strings.TrimSpace(ref.TypeID),
		ItemID:     strings.TrimSpace(ref.ItemID),
	}
	if trimmed.Empty() {
		return nil, nil
	}
	if !trimmed.Complete() {
		return nil, invalid("cti needs category_id, type_id and item_id together")
	}
	return &trimmed, nil
}

// optionalID trims an optional id; blank means absent.
func optionalID(id *string) *string {
	if id == nil {
		return nil
	}
	v := strings.TrimSpace(*id)
	if v == "" {
		return nil
	}
	return &v
}

// ParseStatuses splits a comma-joined status list. Empty input means all.
func ParseStatuses(raw string) ([]models.TaskStatus, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	seen := map[models.TaskStatus]bool{}
	var out []models.TaskStatus
	for _, part := range strings.Split(raw, ",") {
		s := models.TaskStatus(strings.TrimSpace(part))
		if s == "" {
			continue
		}
		if !s.Valid() {
			return nil, invalid("unknown status %q", s)
		}
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out, nil
}
