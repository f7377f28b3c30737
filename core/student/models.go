package student

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"
	"golang.org/x/crypto/bcrypt"

	"github.com/johnlouisuru/jstutorial-sub002/core"
)

// avatarPalette is the fixed set of avatar colors; a student's color is a pure
// function of their email so re-registration attempts with the same email
// always land on the same color.
var avatarPalette = []string{
	"#e57373", "#f06292", "#ba68c8", "#9575cd", "#7986cb", "#64b5f6",
	"#4fc3f7", "#4dd0e1", "#4db6ac", "#81c784", "#aed581", "#ffb74d",
	"#ff8a65", "#a1887f",
}

type Student struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	AvatarColor  string    `json:"avatar_color"`
	Score        int       `json:"score"`
	PasswordHash []byte    `json:"-"`
	LastActive   null.Time `json:"last_active"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
	DeletedAt    null.Time `json:"-"`
}

func (s *Student) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.PasswordHash = hash
	return nil
}

func (s *Student) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(s.PasswordHash, []byte(pwd))
}

// DeriveAvatarColor maps an email to a palette color via FNV-1a.
func DeriveAvatarColor(email string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(core.CleanString(email)))
	return avatarPalette[h.Sum32()%uint32(len(avatarPalette))]
}

// NewStudent contains information needed to register a new Student.
type NewStudent struct {
	Name     string `json:"full_name" validate:"required"`
	Username string `json:"username" validate:"required,min=3,alphanum_"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Validate cleans the payload and checks it against the store.
// Username and email matching is exact (case-sensitive) per the portal's
// registration rules; only whitespace is trimmed.
func (ns *NewStudent) Validate(ctx context.Context, validate *validator.Validate, svc *Service) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Username = core.CleanString(ns.Username)
	ns.Email = core.CleanString(ns.Email)

	if err := validate.Struct(ns); err != nil {
		return err
	}
	return svc.CheckUniqueness(ctx, ns.Username, ns.Email)
}
